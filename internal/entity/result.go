package entity

// GameResult is one archived finished game.
type GameResult struct {
	RoomID     string `json:"room_id"`
	RoomCode   string `json:"room_code"`
	WinnerID   string `json:"winner_id"`
	LoserID    string `json:"loser_id"`
	FinishedAt int64  `json:"finished_at"`
}
