package zapper

import (
	"math"
	"math/rand/v2"
	"time"
)

// Seed is the layout of one bacterium before it enters the store.
type Seed struct {
	ID       int
	Position Position
	Tint     Tint
}

// NewRand returns the generator a session draws from. A zero seed is
// replaced by the current time.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Spawn lays out a batch of bacteria on the disk circumference. The count
// is uniform in [MinCount, MaxCount]; colors come from a shuffle of the
// first max(count, PaletteMinimum) palette entries so no two bacteria share
// one.
func Spawn(cfg Config, rng *rand.Rand) []Seed {
	count := rng.IntN(cfg.MaxCount-cfg.MinCount+1) + cfg.MinCount

	window := min(max(count, cfg.PaletteMinimum), len(cfg.Palette))
	colors := make([]Tint, window)
	copy(colors, cfg.Palette[:window])
	for i := len(colors) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		colors[i], colors[j] = colors[j], colors[i]
	}

	seeds := make([]Seed, count)
	for i := range seeds {
		angle := rng.Float64() * 2 * math.Pi
		seeds[i] = Seed{
			ID: i,
			Position: Position{
				X: cfg.DiskRadius * math.Cos(angle),
				Y: cfg.DiskRadius * math.Sin(angle),
			},
			Tint: colors[i],
		}
	}
	return seeds
}
