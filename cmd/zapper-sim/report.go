package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/zapper/zapper"
)

type Report struct {
	// Configuration
	Games      int
	Seed       uint64
	ReactionMs float64
	MissRate   float64
	FrameMs    float64

	// Results
	Wins, Losses, Unfinished int
	MeanPlayer               float64
	MeanPassive              float64
	MeanDuration             time.Duration
	Accuracy                 float64
	TotalTime                time.Duration
	UpdateTime               Stats
	Systems                  []SystemTiming
	MemStatsStart            runtime.MemStats
	MemStatsEnd              runtime.MemStats

	clicks int
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Add folds one game into the report. Call Finalize once all games are in.
func (r *Report) Add(g GameResult) {
	switch {
	case !g.Finished:
		r.Unfinished++
	case g.Score.Outcome == zapper.OutcomeWin:
		r.Wins++
	default:
		r.Losses++
	}

	r.MeanPlayer += g.Score.PlayerScore
	r.MeanPassive += g.Score.PassiveScore
	r.MeanDuration += g.Stats.Elapsed
	r.Accuracy += float64(g.Stats.Hits)
	r.UpdateTime.Samples = append(r.UpdateTime.Samples, g.Updates...)

	for _, t := range g.Timings {
		merged := false
		for i := range r.Systems {
			if r.Systems[i].Name == t.Name {
				r.Systems[i].Runs += t.Runs
				r.Systems[i].Total += t.Total
				r.Systems[i].Max = max(r.Systems[i].Max, t.Max)
				merged = true
				break
			}
		}
		if !merged {
			r.Systems = append(r.Systems, t)
		}
	}

	r.clicks += g.Stats.Clicks
}

func (r *Report) Finalize() {
	if r.Games > 0 {
		n := float64(r.Games)
		r.MeanPlayer /= n
		r.MeanPassive /= n
		r.MeanDuration /= time.Duration(r.Games)
	}
	if r.clicks > 0 {
		r.Accuracy /= float64(r.clicks)
	} else {
		r.Accuracy = 0
	}
	r.UpdateTime.Finalize()
}

func (r *Report) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Bug Zapper Simulation Report

## Configuration
- **Games:** {{.Games}} (seeds from {{.Seed}})
- **Bot Reaction:** {{.ReactionMs}} ms
- **Bot Miss Rate:** {{pct .MissRate}}
- **Frame:** {{.FrameMs}} ms

## Outcomes
- **Wins:** {{.Wins}}
- **Losses:** {{.Losses}}
- **Unfinished:** {{.Unfinished}}
- **Win Rate:** {{pct .WinRate}}
- **Mean Player Score:** {{printf "%.1f" .MeanPlayer}}
- **Mean Bacteria Score:** {{printf "%.1f" .MeanPassive}}
- **Mean Game Length:** {{.MeanDuration}}
- **Accuracy:** {{pct .Accuracy}}

## Performance
- **Total Time:** {{.TotalTime}}
- **Frame Update:** avg {{.UpdateTime.Avg}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}
{{range .Systems}}- {{.Name}}: {{.Runs}} runs, avg {{avg .Total .Runs}}, max {{.Max}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end)
`

	fm := template.FuncMap{
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v*100)
		},
		"avg": func(total time.Duration, runs int64) time.Duration {
			if runs == 0 {
				return 0
			}
			return total / time.Duration(runs)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
