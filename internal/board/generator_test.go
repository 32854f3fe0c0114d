package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	t.Run("Deals exactly 15 candies within bounds", func(t *testing.T) {
		// Given: a generator with a fixed seed
		generator := NewGenerator(rand.New(rand.NewSource(1)))

		// When: a board is generated
		candies := generator.Generate()

		// Then: 15 uneaten candies, each inset by the candy radius
		require.Len(t, candies, CandyCount)
		for _, candy := range candies {
			assert.False(t, candy.Eaten)
			assert.GreaterOrEqual(t, candy.X, CandyRadius)
			assert.LessOrEqual(t, candy.X, Width-CandyRadius)
			assert.GreaterOrEqual(t, candy.Y, CandyRadius)
			assert.LessOrEqual(t, candy.Y, Height-CandyRadius)
		}
	})

	t.Run("Colors are unique and drawn from the palette", func(t *testing.T) {
		generator := NewGenerator(rand.New(rand.NewSource(2)))

		candies := generator.Generate()

		seen := make(map[string]bool, len(candies))
		for i, candy := range candies {
			assert.Equal(t, palette[i], candy.Color)
			assert.False(t, seen[candy.Color], "color %s repeated", candy.Color)
			seen[candy.Color] = true
		}
	})

	t.Run("Candy ids are stable per index", func(t *testing.T) {
		generator := NewGenerator(rand.New(rand.NewSource(3)))

		candies := generator.Generate()

		assert.Equal(t, "candy-0", candies[0].ID)
		assert.Equal(t, "candy-14", candies[14].ID)
	})

	t.Run("Same seed deals the same board", func(t *testing.T) {
		// Given: two generators with the same seed
		first := NewGenerator(rand.New(rand.NewSource(42))).Generate()
		second := NewGenerator(rand.New(rand.NewSource(42))).Generate()

		// Then: the boards are identical
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i], second[i])
		}
	})
}
