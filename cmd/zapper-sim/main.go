package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/zapper/zapper"
)

func main() {
	games := flag.Int("games", 200, "Number of games to simulate.")
	seed := flag.Uint64("seed", 1, "Seed of the first game; game i uses seed+i.")
	configPath := flag.String("config", "", "Optional YAML rules file.")
	reaction := flag.Float64("reaction", 400, "Bot reaction time in milliseconds of game time.")
	missRate := flag.Float64("miss-rate", 0.1, "Probability that a bot click misses.")
	frame := flag.Float64("frame", 1000.0/60, "Simulated frame length in milliseconds.")
	limit := flag.Duration("limit", 10*time.Minute, "Game time after which a game counts as unfinished.")
	verbose := flag.Bool("v", false, "Log session events.")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := zapper.DefaultConfig()
	if *configPath != "" {
		loaded, err := zapper.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "zapper-sim: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *seed == 0 {
		// Seed 0 would mean "random" to the session.
		*seed = 1
	}

	report := &Report{
		Games:      *games,
		Seed:       *seed,
		ReactionMs: *reaction,
		MissRate:   *missRate,
		FrameMs:    *frame,
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	for i := 0; i < *games; i++ {
		cfg.Seed = *seed + uint64(i)
		bot := NewBot(*reaction, *missRate, cfg.Seed^0xb07)
		result, err := Play(cfg, bot, *frame, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "zapper-sim: %v\n", err)
			os.Exit(1)
		}
		report.Add(result)
	}

	report.TotalTime = time.Since(start)
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	if err := report.Generate(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "zapper-sim: failed to generate report: %v\n", err)
		os.Exit(1)
	}
}
