package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/zapper/zapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotTargetsLargest(t *testing.T) {
	bot := NewBot(100, 0, 1)
	snap := zapper.Snapshot{Bacteria: []zapper.Sprite{
		{ID: 0, X: 0.8, Y: 0, Radius: 0.03},
		{ID: 1, X: 0, Y: 0.8, Radius: 0.05},
	}}

	_, ok := bot.Step(snap, 50)
	assert.False(t, ok)

	c, ok := bot.Step(snap, 50)
	require.True(t, ok)
	x, y, _ := c.NDC()
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0.8, y, 1e-9)

	_, ok = bot.Step(zapper.Snapshot{}, 500)
	assert.False(t, ok)
}

func TestBotMisses(t *testing.T) {
	bot := NewBot(0, 1, 1)
	snap := zapper.Snapshot{Bacteria: []zapper.Sprite{{X: 0.8, Radius: 0.03}}}

	c, ok := bot.Step(snap, 16)
	require.True(t, ok)
	x, y, _ := c.NDC()
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
}

func TestPlayFastBotWins(t *testing.T) {
	cfg := zapper.DefaultConfig()
	for seed := uint64(1); seed <= 10; seed++ {
		cfg.Seed = seed
		result, err := Play(cfg, NewBot(100, 0, seed), 1000.0/60, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Finished)
		assert.Equal(t, zapper.OutcomeWin, result.Score.Outcome, "seed %d", seed)
		assert.Equal(t, result.Stats.Hits, result.Stats.Clicks)
		assert.NotEmpty(t, result.Timings)
	}
}

func TestPlayIdleBotLoses(t *testing.T) {
	cfg := zapper.DefaultConfig()
	cfg.Seed = 4
	cfg.MinCount = 2

	result, err := Play(cfg, NewBot(time.Hour.Seconds()*1000, 0, 4), 1000.0/60, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, zapper.OutcomeLose, result.Score.Outcome)
	assert.Zero(t, result.Stats.Clicks)
}

func TestReport(t *testing.T) {
	report := &Report{Games: 2, Seed: 1, ReactionMs: 100, FrameMs: 16}
	report.Add(GameResult{
		Finished: true,
		Score:    zapper.ScoreBoard{Over: true, Outcome: zapper.OutcomeWin, PlayerScore: 30, PassiveScore: 4},
		Stats:    zapper.Stats{Elapsed: 4 * time.Second, Tally: zapper.Tally{Clicks: 4, Hits: 3, Misses: 1}},
		Updates:  []time.Duration{time.Millisecond, 3 * time.Millisecond},
		Timings:  []SystemTiming{{Name: "frame/GrowthSystem", Runs: 10, Total: 10 * time.Microsecond, Max: 2 * time.Microsecond}},
	})
	report.Add(GameResult{
		Finished: true,
		Score:    zapper.ScoreBoard{Over: true, Outcome: zapper.OutcomeLose, PlayerScore: 10, PassiveScore: 60},
		Stats:    zapper.Stats{Elapsed: 6 * time.Second, Tally: zapper.Tally{Clicks: 1, Hits: 1}},
		Timings:  []SystemTiming{{Name: "frame/GrowthSystem", Runs: 10, Total: 30 * time.Microsecond, Max: 5 * time.Microsecond}},
	})
	report.Finalize()

	assert.Equal(t, 1, report.Wins)
	assert.Equal(t, 1, report.Losses)
	assert.Equal(t, 0.5, report.WinRate())
	assert.Equal(t, 20.0, report.MeanPlayer)
	assert.Equal(t, 32.0, report.MeanPassive)
	assert.Equal(t, 5*time.Second, report.MeanDuration)
	assert.Equal(t, 0.8, report.Accuracy)
	assert.Equal(t, 2*time.Millisecond, report.UpdateTime.Avg)
	require.Len(t, report.Systems, 1)
	assert.Equal(t, int64(20), report.Systems[0].Runs)
	assert.Equal(t, 5*time.Microsecond, report.Systems[0].Max)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "**Win Rate:** 50.0%")
	assert.Contains(t, out, "**Accuracy:** 80.0%")
	assert.Contains(t, out, "frame/GrowthSystem: 20 runs, avg 2µs, max 5µs")
}
