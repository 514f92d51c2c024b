package zapper

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exactConfig uses binary fractions so radius arithmetic has no rounding.
func exactConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialRadius = 0.125
	cfg.ThresholdRadius = 0.375
	cfg.MaxRadius = 0.5
	cfg.GrowthSpeed = 0.25
	return cfg
}

func layout(points ...Position) []Seed {
	palette := DefaultPalette()
	seeds := make([]Seed, len(points))
	for i, p := range points {
		seeds[i] = Seed{ID: i, Position: p, Tint: palette[i]}
	}
	return seeds
}

// pixel maps an NDC point onto an 800x800 canvas.
func pixel(x, y float64) Click {
	return Click{X: (x + 1) * 400, Y: (1 - y) * 400, CanvasWidth: 800, CanvasHeight: 800}
}

type recorder struct {
	events []Event
}

func (r *recorder) Notify(e Event) { r.events = append(r.events, e) }

func (r *recorder) kinds(skipTicks bool) []EventKind {
	var kinds []EventKind
	for _, e := range r.events {
		if skipTicks && e.Kind == EventTick {
			continue
		}
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func newTestSession(t *testing.T, cfg Config, points ...Position) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	s, err := NewSessionWith(cfg, layout(points...), rec)
	require.NoError(t, err)
	return s, rec
}

func bacterium(t *testing.T, s *Session, id int) BacteriumView {
	t.Helper()
	b, ok := s.Bacterium(id)
	require.True(t, ok, "bacterium %d", id)
	return b
}

func TestClickNDC(t *testing.T) {
	tests := []struct {
		click Click
		x, y  float64
		ok    bool
	}{
		{Click{X: 400, Y: 400, CanvasWidth: 800, CanvasHeight: 800}, 0, 0, true},
		{Click{X: 0, Y: 0, CanvasWidth: 800, CanvasHeight: 800}, -1, 1, true},
		{Click{X: 800, Y: 600, CanvasWidth: 800, CanvasHeight: 600}, 1, -1, true},
		{Click{X: 10, Y: 10, CanvasWidth: 0, CanvasHeight: 600}, 0, 0, false},
		{Click{X: 10, Y: 10, CanvasWidth: 600, CanvasHeight: 0}, 0, 0, false},
	}

	for _, tt := range tests {
		x, y, ok := tt.click.NDC()
		assert.Equal(t, tt.ok, ok)
		assert.InDelta(t, tt.x, x, 1e-12)
		assert.InDelta(t, tt.y, y, 1e-12)
	}
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCount = 20

	_, err := NewSession(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewSessionWith(DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewSessionSpawns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99

	s, err := NewSession(cfg)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, 0.8, snap.DiskRadius)
	assert.NotEmpty(t, snap.Bacteria)
	for _, sp := range snap.Bacteria {
		assert.Equal(t, cfg.InitialRadius, sp.Radius)
		assert.False(t, sp.Warned)
	}
	assert.Equal(t, ScoreBoard{}, snap.Score)

	again, err := NewSession(cfg)
	require.NoError(t, err)
	assert.Equal(t, snap, again.Snapshot())
}

func TestCrossingTime(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		s, rec := newTestSession(t, exactConfig(), Position{0.5, 0})

		// (0.375 - 0.125) / 0.25 = 1s
		for i := 0; i < 3; i++ {
			s.Tick(250)
		}
		b := bacterium(t, s, 0)
		assert.False(t, b.ReachedThreshold)
		assert.Equal(t, 0.3125, b.Radius)

		s.Tick(250)
		b = bacterium(t, s, 0)
		assert.True(t, b.ReachedThreshold)
		assert.Equal(t, 0.375, b.Radius)

		score := s.Score()
		assert.Equal(t, 26.0, score.PassiveScore)
		assert.Zero(t, score.PlayerScore)
		assert.False(t, score.Over)
		assert.Equal(t, []EventKind{EventThreshold}, rec.kinds(true))
		assert.Equal(t, 0, rec.events[len(rec.events)-2].Bacterium)
	})

	t.Run("defaults", func(t *testing.T) {
		s, _ := newTestSession(t, DefaultConfig(), Position{0.8, 0})

		// (0.09 - 0.03) / 0.02 = 3s
		s.Tick(2990)
		assert.False(t, bacterium(t, s, 0).ReachedThreshold)
		s.Tick(20)
		assert.True(t, bacterium(t, s, 0).ReachedThreshold)
	})

	t.Run("bonus once", func(t *testing.T) {
		s, rec := newTestSession(t, exactConfig(), Position{0.5, 0})

		s.Tick(1000)
		s.Tick(1000)
		s.Tick(1000)

		assert.Equal(t, 3+25.0, s.Score().PassiveScore)
		assert.Equal(t, []EventKind{EventThreshold}, rec.kinds(true))
	})
}

func TestRadiusClampsAtMax(t *testing.T) {
	s, _ := newTestSession(t, exactConfig(), Position{0.5, 0})

	s.Tick(1e6)

	b := bacterium(t, s, 0)
	assert.Equal(t, 0.5, b.Radius)
	assert.Equal(t, 0.5, b.MaxRadius)
	assert.False(t, s.Over())
	assert.Equal(t, 1000+25.0, s.Score().PassiveScore)
}

func TestNegativeTickIsZero(t *testing.T) {
	s, _ := newTestSession(t, exactConfig(), Position{0.5, 0})

	s.Tick(-500)

	assert.Equal(t, 0.125, bacterium(t, s, 0).Radius)
	assert.Zero(t, s.Score().PassiveScore)
	stats := s.Stats()
	assert.Equal(t, 1, stats.Ticks)
	assert.Zero(t, stats.Elapsed)
}

func TestNaNTickIsZero(t *testing.T) {
	s, rec := newTestSession(t, exactConfig(), Position{0.5, 0})

	s.Tick(math.NaN())
	s.Tick(1000)

	b := bacterium(t, s, 0)
	assert.Equal(t, 0.375, b.Radius)
	assert.True(t, b.ReachedThreshold)
	assert.Equal(t, []EventKind{EventThreshold}, rec.kinds(true))
	assert.False(t, math.IsNaN(s.Score().PassiveScore))
	assert.Equal(t, time.Second, s.Stats().Elapsed)
}

func TestClickAtCenterKills(t *testing.T) {
	s, rec := newTestSession(t, exactConfig(), Position{0.5, 0}, Position{-0.5, 0})

	s.Click(pixel(0.5, 0))

	assert.False(t, bacterium(t, s, 0).Active)
	assert.True(t, bacterium(t, s, 1).Active)
	assert.Equal(t, 10.0, s.Score().PlayerScore)
	assert.False(t, s.Over())

	snap := s.Snapshot()
	require.Len(t, snap.Bacteria, 1)
	assert.Equal(t, 1, snap.Bacteria[0].ID)

	require.Len(t, rec.events, 1)
	assert.Equal(t, EventKill, rec.events[0].Kind)
	assert.Equal(t, 0, rec.events[0].Bacterium)
	assert.Equal(t, 10.0, rec.events[0].Score.PlayerScore)
}

func TestClickOnEdge(t *testing.T) {
	s, _ := newTestSession(t, exactConfig(), Position{0.5, 0})

	// 651px is 0.6275 in NDC, just past the 0.125 radius.
	s.Click(Click{X: 651, Y: 400, CanvasWidth: 800, CanvasHeight: 800})
	assert.True(t, bacterium(t, s, 0).Active)

	// 650px is exactly one radius away.
	s.Click(Click{X: 650, Y: 400, CanvasWidth: 800, CanvasHeight: 800})
	assert.False(t, bacterium(t, s, 0).Active)
}

func TestClickOutsideIsNoop(t *testing.T) {
	s, rec := newTestSession(t, exactConfig(), Position{0.5, 0}, Position{-0.5, 0})
	before := s.Snapshot()

	s.Click(pixel(0, 0))

	assert.Equal(t, before, s.Snapshot())
	assert.Empty(t, rec.events)
	assert.Equal(t, Tally{Clicks: 1, Misses: 1}, s.Stats().Tally)
}

func TestZeroCanvasClickIsNoop(t *testing.T) {
	s, rec := newTestSession(t, exactConfig(), Position{0.5, 0})

	s.Click(Click{X: 600, Y: 400})

	assert.True(t, bacterium(t, s, 0).Active)
	assert.Empty(t, rec.events)
	assert.Equal(t, Tally{}, s.Stats().Tally)
}

func TestFirstMatchWins(t *testing.T) {
	s, _ := newTestSession(t, exactConfig(), Position{0.5, 0}, Position{0.55, 0})

	// The click sits on the centre of the second bacterium but inside the
	// first, which comes earlier in store order.
	s.Click(pixel(0.55, 0))
	assert.False(t, bacterium(t, s, 0).Active)
	assert.True(t, bacterium(t, s, 1).Active)

	s.Click(pixel(0.55, 0))
	assert.False(t, bacterium(t, s, 1).Active)
}

func TestTwoCrossingsLose(t *testing.T) {
	s, rec := newTestSession(t, exactConfig(), Position{0.5, 0}, Position{-0.5, 0}, Position{0, 0.5})

	s.Tick(1000)

	score := s.Score()
	assert.True(t, score.Over)
	assert.Equal(t, OutcomeLose, score.Outcome)
	assert.Equal(t, "You lose!", score.Outcome.Label())
	assert.Equal(t, 50.0, score.PassiveScore)

	assert.True(t, bacterium(t, s, 0).ReachedThreshold)
	assert.True(t, bacterium(t, s, 1).ReachedThreshold)
	third := bacterium(t, s, 2)
	assert.False(t, third.ReachedThreshold)
	assert.Equal(t, 0.125, third.Radius)

	assert.Equal(t, []EventKind{EventThreshold, EventThreshold, EventOutcome, EventTick}, rec.kinds(false))

	// Nothing moves once the game is over.
	snap := s.Snapshot()
	stats := s.Stats()
	s.Tick(1000)
	s.Click(pixel(0, 0.5))
	assert.Equal(t, snap, s.Snapshot())
	assert.Equal(t, stats, s.Stats())
	assert.True(t, bacterium(t, s, 2).Active)
	assert.Len(t, rec.events, 4)
}

func TestAllKilledWins(t *testing.T) {
	s, rec := newTestSession(t, exactConfig(), Position{0.5, 0}, Position{-0.5, 0}, Position{0, 0.5})

	s.Click(pixel(0.5, 0))
	s.Click(pixel(-0.5, 0))
	s.Tick(1000)
	assert.True(t, bacterium(t, s, 2).ReachedThreshold)
	assert.False(t, s.Over())

	s.Click(pixel(0, 0.5))

	score := s.Score()
	assert.True(t, score.Over)
	assert.Equal(t, OutcomeWin, score.Outcome)
	assert.Equal(t, "You win!", score.Outcome.Label())
	assert.Equal(t, 30.0, score.PlayerScore)
	assert.Equal(t, 26.0, score.PassiveScore)
	assert.Empty(t, s.Snapshot().Bacteria)

	assert.Equal(t, []EventKind{EventKill, EventKill, EventThreshold, EventKill, EventOutcome}, rec.kinds(true))

	s.Tick(5000)
	assert.Equal(t, score, s.Score())
	assert.Equal(t, Tally{Clicks: 3, Hits: 3}, s.Stats().Tally)
}

func TestBacteriumLookup(t *testing.T) {
	s, _ := newTestSession(t, exactConfig(), Position{0.5, 0})

	b, ok := s.Bacterium(0)
	require.True(t, ok)
	assert.Equal(t, "Red", b.Name)
	assert.Equal(t, Position{0.5, 0}, *b.Position)

	_, ok = s.Bacterium(7)
	assert.False(t, ok)
	assert.Len(t, s.All(), 1)
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		cfg := DefaultConfig()
		cfg.Seed = seed
		s, err := NewSession(cfg)
		require.NoError(t, err)

		rng := NewRand(seed + 1000)
		prev := map[int]BacteriumView{}
		for _, b := range s.All() {
			prev[b.Bacterium.ID] = copyView(b)
		}
		prevScore := s.Score()

		for step := 0; step < 2000 && !s.Over(); step++ {
			if rng.IntN(4) == 0 {
				snap := s.Snapshot()
				if len(snap.Bacteria) > 0 && rng.IntN(2) == 0 {
					sp := snap.Bacteria[rng.IntN(len(snap.Bacteria))]
					s.Click(pixel(sp.X, sp.Y))
				} else {
					s.Click(Click{X: rng.Float64() * 800, Y: rng.Float64() * 800, CanvasWidth: 800, CanvasHeight: 800})
				}
			} else {
				s.Tick(rng.Float64() * 200)
			}

			score := s.Score()
			assert.GreaterOrEqual(t, score.PlayerScore, prevScore.PlayerScore)
			assert.GreaterOrEqual(t, score.PassiveScore, prevScore.PassiveScore)
			assert.Equal(t, float64(s.Stats().Hits)*cfg.KillBonus, score.PlayerScore)

			for _, b := range s.All() {
				was := prev[b.Bacterium.ID]
				assert.GreaterOrEqual(t, b.Radius, was.Radius)
				assert.LessOrEqual(t, b.Radius, cfg.MaxRadius)
				if was.ReachedThreshold {
					assert.True(t, b.ReachedThreshold)
				}
				if !was.Active {
					assert.False(t, b.Active)
				}
				if b.ReachedThreshold && !was.ReachedThreshold {
					assert.GreaterOrEqual(t, b.Radius, cfg.ThresholdRadius)
				}
				prev[b.Bacterium.ID] = copyView(b)
			}
			prevScore = score
		}

		require.True(t, s.Over(), "seed %d never finished", seed)
		final := s.Snapshot()
		s.Tick(1000)
		s.Click(pixel(0, 0))
		assert.Equal(t, final, s.Snapshot())
	}
}

// copyView detaches a view from storage so later mutations do not show.
func copyView(b BacteriumView) BacteriumView {
	growth := *b.Growth
	vitality := *b.Vitality
	b.Growth = &growth
	b.Vitality = &vitality
	return b
}

func TestRun(t *testing.T) {
	s, rec := newTestSession(t, exactConfig(), Position{0.5, 0})

	ctx, cancel := context.WithCancel(context.Background())
	clicks := make(chan Click)
	done := make(chan struct{})

	go func() {
		s.Run(ctx, 5*time.Millisecond, clicks)
		close(done)
	}()

	clicks <- pixel(0.5, 0)
	close(clicks)
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	assert.True(t, s.Over())
	assert.Equal(t, OutcomeWin, s.Score().Outcome)
	assert.Contains(t, rec.kinds(false), EventOutcome)
}
