package main

import (
	"time"

	"github.com/plus3/zapper/ecs"
	"github.com/plus3/zapper/zapper"
)

// GameResult is the end state of one simulated game.
type GameResult struct {
	Seed     uint64
	Score    zapper.ScoreBoard
	Stats    zapper.Stats
	Updates  []time.Duration
	Timings  []SystemTiming
	Finished bool
}

type SystemTiming struct {
	Name  string
	Runs  int64
	Total time.Duration
	Max   time.Duration
}

// Play runs one game at a fixed frame rate until it ends or limit game
// time has passed.
func Play(cfg zapper.Config, bot *Bot, frameMs float64, limit time.Duration) (GameResult, error) {
	session, err := zapper.NewSession(cfg)
	if err != nil {
		return GameResult{}, err
	}

	result := GameResult{Seed: cfg.Seed}
	for !session.Over() && session.Stats().Elapsed < limit {
		start := time.Now()
		if c, ok := bot.Step(session.Snapshot(), frameMs); ok {
			session.Click(c)
		}
		session.Tick(frameMs)
		result.Updates = append(result.Updates, time.Since(start))
	}

	result.Score = session.Score()
	result.Finished = result.Score.Over
	result.Stats = session.Stats()

	frame, input := session.Schedulers()
	result.Timings = append(timingsOf("frame", frame), timingsOf("input", input)...)
	return result, nil
}

func timingsOf(prefix string, s *ecs.Scheduler) []SystemTiming {
	stats := s.GetStats()
	timings := make([]SystemTiming, 0, len(stats.Systems))
	for _, sys := range stats.Systems {
		timings = append(timings, SystemTiming{
			Name:  prefix + "/" + sys.Name,
			Runs:  sys.ExecutionCount,
			Total: sys.TotalDuration,
			Max:   sys.MaxDuration,
		})
	}
	return timings
}
