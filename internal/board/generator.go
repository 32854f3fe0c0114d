package board

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/rocketscienceinc/candyboard-backend/internal/entity"
)

const (
	// CandyCount - every board carries exactly this many candies.
	CandyCount = 15

	// Width and Height - the logical coordinate space of the board.
	// The client maps these units to device pixels on its own.
	Width  = 300.0
	Height = 400.0

	CandyRadius = 25.0

	// minSeparation keeps candies visually apart; 2.5 radii leaves room
	// for a fingertip between neighbours.
	minSeparation = CandyRadius * 2.5

	// maxAttempts bounds the rejection sampling per candy. When the
	// board gets crowded the last sampled position is accepted as-is,
	// so overlap is possible but rare.
	maxAttempts = 50
)

// palette holds one distinct color per candy index, so colors within a
// room never repeat.
var palette = [CandyCount]string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7",
	"#DDA0DD", "#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
	"#F8C471", "#82E0AA", "#F1948A", "#AED6F1", "#D7BDE2",
}

// Generator deals fresh candy boards. It is deterministic for a given
// random source and has no side effects beyond its return value.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate - places CandyCount candies at random positions inside the
// board bounds, inset by the candy radius, keeping at least
// minSeparation between any two of them on a best-effort basis.
func (that *Generator) Generate() []*entity.Candy {
	candies := make([]*entity.Candy, 0, CandyCount)

	for i := 0; i < CandyCount; i++ {
		var x, y float64

		for attempt := 0; attempt < maxAttempts; attempt++ {
			x = that.rng.Float64()*(Width-CandyRadius*2) + CandyRadius
			y = that.rng.Float64()*(Height-CandyRadius*2) + CandyRadius

			if separated(candies, x, y) {
				break
			}
		}

		candies = append(candies, &entity.Candy{
			ID:    fmt.Sprintf("candy-%d", i),
			Color: palette[i],
			X:     x,
			Y:     y,
		})
	}

	return candies
}

func separated(candies []*entity.Candy, x, y float64) bool {
	for _, candy := range candies {
		if math.Hypot(candy.X-x, candy.Y-y) < minSeparation {
			return false
		}
	}

	return true
}
