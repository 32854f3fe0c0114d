package entity

// Candy is a single piece on the board. Position is expressed in the
// board's logical coordinate space; the client maps it to pixels.
type Candy struct {
	ID    string  `json:"id"`
	Color string  `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Eaten bool    `json:"eaten"`
}
