package entity

import "time"

const (
	PhaseWaiting         = "waiting"
	PhasePoisonSelection = "poison-selection"
	PhasePlaying         = "playing"
	PhaseFinished        = "finished"
)

// MaxPlayers - a room never holds more than two players.
const MaxPlayers = 2

// Room is the authoritative snapshot of one game session. All state
// transitions go through the methods below; a method returns true when
// the snapshot changed and must be persisted. Requests that the rules
// treat as silently ignored (out-of-turn eats, repeat poison picks,
// already-eaten targets) return false and leave the room untouched.
type Room struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Players       []*Player `json:"players"`
	CurrentPlayer string    `json:"current_player"`
	Candies       []*Candy  `json:"candies"`
	Phase         string    `json:"game_phase"`
	Winner        string    `json:"winner,omitempty"`
	Loser         string    `json:"loser,omitempty"`
	LastUpdated   int64     `json:"last_updated"`
}

// NewRoom - builds a room in the waiting phase with the host as its only
// player. The host opens the game once a second player has joined.
func NewRoom(id, code string, host *Player, candies []*Candy) *Room {
	room := &Room{
		ID:            id,
		Code:          code,
		Players:       []*Player{host},
		CurrentPlayer: host.ID,
		Candies:       candies,
		Phase:         PhaseWaiting,
	}
	room.Touch()

	return room
}

func (that *Room) IsWaiting() bool {
	return that.Phase == PhaseWaiting
}

func (that *Room) IsPoisonSelection() bool {
	return that.Phase == PhasePoisonSelection
}

func (that *Room) IsPlaying() bool {
	return that.Phase == PhasePlaying
}

func (that *Room) IsFinished() bool {
	return that.Phase == PhaseFinished
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= MaxPlayers
}

// Player - returns the member with the given id, or nil.
func (that *Room) Player(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}

	return nil
}

// Opponent - returns the other member of the room, or nil while waiting.
func (that *Room) Opponent(id string) *Player {
	for _, player := range that.Players {
		if player.ID != id {
			return player
		}
	}

	return nil
}

// Host - returns the player that created the room. Exactly one player
// has IsHost set and it is never transferred.
func (that *Room) Host() *Player {
	for _, player := range that.Players {
		if player.IsHost {
			return player
		}
	}

	return nil
}

func (that *Room) HasPlayer(id string) bool {
	return that.Player(id) != nil
}

// Candy - returns the candy with the given id, or nil.
func (that *Room) Candy(id string) *Candy {
	for _, candy := range that.Candies {
		if candy.ID == id {
			return candy
		}
	}

	return nil
}

// AddGuest - seats the second player and opens poison selection.
// Callers must have rejected full rooms beforehand.
func (that *Room) AddGuest(guest *Player) {
	that.Players = append(that.Players, guest)
	that.Phase = PhasePoisonSelection
	that.Touch()
}

// SelectPoison - records a player's secret poison candy. The pick is
// ignored when the room is not in poison selection, the player already
// picked, the candy does not exist, or the opponent already claimed the
// same candy. Once both players have picked, the game starts with the
// host on turn.
func (that *Room) SelectPoison(playerID, candyID string) bool {
	if !that.IsPoisonSelection() {
		return false
	}

	player := that.Player(playerID)
	if player == nil || player.HasSelectedPoison {
		return false
	}

	if that.Candy(candyID) == nil {
		return false
	}

	if opponent := that.Opponent(playerID); opponent != nil && opponent.PoisonCandyID == candyID {
		return false
	}

	player.PoisonCandyID = candyID
	player.HasSelectedPoison = true

	if that.allPoisonsSelected() {
		that.Phase = PhasePlaying
	}

	that.Touch()

	return true
}

func (that *Room) allPoisonsSelected() bool {
	for _, player := range that.Players {
		if !player.HasSelectedPoison {
			return false
		}
	}

	return true
}

// EatCandy - resolves one turn. Only the player on turn may eat, and
// only a candy that is still on the board. Eating an opponent's poison
// ends the game with the acting player as loser; otherwise the turn
// passes to the other player.
func (that *Room) EatCandy(playerID, candyID string) bool {
	if !that.IsPlaying() || that.CurrentPlayer != playerID {
		return false
	}

	candy := that.Candy(candyID)
	if candy == nil || candy.Eaten {
		return false
	}

	candy.Eaten = true

	if owner := that.poisonOwner(candyID); owner != nil {
		that.Phase = PhaseFinished
		that.Loser = playerID
		that.Winner = owner.ID
		that.Touch()

		return true
	}

	if opponent := that.Opponent(playerID); opponent != nil {
		that.CurrentPlayer = opponent.ID
	}

	that.Touch()

	return true
}

func (that *Room) poisonOwner(candyID string) *Player {
	for _, player := range that.Players {
		if player.PoisonCandyID == candyID {
			return player
		}
	}

	return nil
}

// RemovePlayer - drops a member from the player list.
func (that *Room) RemovePlayer(id string) {
	players := make([]*Player, 0, len(that.Players))
	for _, player := range that.Players {
		if player.ID != id {
			players = append(players, player)
		}
	}

	that.Players = players
	that.Touch()
}

// ResetForNewGuest - regresses the room to the waiting phase after the
// guest left mid-game: fresh candies, poison picks cleared, host back on
// turn. Leaving stale candies behind would hand the next guest a board
// the host has already memorized.
func (that *Room) ResetForNewGuest(candies []*Candy) {
	that.Candies = candies
	that.Phase = PhaseWaiting
	that.Winner = ""
	that.Loser = ""

	for _, player := range that.Players {
		player.PoisonCandyID = ""
		player.HasSelectedPoison = false
	}

	if host := that.Host(); host != nil {
		that.CurrentPlayer = host.ID
	}

	that.Touch()
}

// Touch - stamps the snapshot with the current time in Unix milliseconds.
func (that *Room) Touch() {
	that.LastUpdated = time.Now().UnixMilli()
}
