package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/plus3/zapper/audio"
	desktop "github.com/plus3/zapper/frontend/ebiten"
	"github.com/plus3/zapper/frontend/terminal"
	"github.com/plus3/zapper/zapper"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run returns the process exit code so deferred cleanup happens
// before main exits.
func run(args []string, stderr io.Writer) int {
	// A missing .env is fine; the flags have their own defaults.
	_ = godotenv.Load()

	flags := flag.NewFlagSet("zapper", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", os.Getenv("ZAPPER_CONFIG"), "YAML rules file (env ZAPPER_CONFIG).")
	seed := flags.Uint64("seed", envSeed(), "Layout seed, 0 for random (env ZAPPER_SEED).")
	frontend := flags.String("frontend", "desktop", "Frontend to run: desktop or terminal.")
	debug := flags.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName+".")
	debugUI := flags.Bool("debug-ui", false, "Show the ImGui inspection windows (desktop only).")
	mute := flags.Bool("mute", false, "Disable sound cues.")
	fps := flags.Int("fps", 60, "Simulation ticks per second.")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	// Config errors are fatal and must reach the terminal, so they are
	// reported before logging is redirected.
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "zapper: %v\n", err)
		return 1
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *fps <= 0 {
		fmt.Fprintf(stderr, "zapper: -fps must be positive, got %d\n", *fps)
		return 2
	}

	if logFile := setupLogging(*debug); logFile != nil {
		defer logFile.Close()
	}
	log.Printf("[Main] frontend=%s seed=%d", *frontend, cfg.Seed)

	var listener zapper.Listener
	if !*mute {
		cues := audio.NewCues(-0.5)
		if err := cues.Open(); err != nil {
			log.Printf("[Audio] disabled: %v", err)
		} else {
			defer cues.Close()
			listener = cues
		}
	}

	switch *frontend {
	case "desktop":
		err = desktop.Run(desktop.Options{Config: cfg, Listener: listener, DebugUI: *debugUI, TPS: *fps})
	case "terminal":
		err = terminal.Run(terminal.Options{Config: cfg, Listener: listener, Interval: time.Second / time.Duration(*fps)})
	default:
		err = fmt.Errorf("unknown frontend %q", *frontend)
	}
	if err != nil {
		log.Printf("[Main] %v", err)
		fmt.Fprintf(stderr, "zapper: %v\n", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (zapper.Config, error) {
	if path == "" {
		cfg := zapper.DefaultConfig()
		return cfg, cfg.Validate()
	}
	return zapper.LoadConfig(path)
}

func envSeed() uint64 {
	raw := os.Getenv("ZAPPER_SEED")
	if raw == "" {
		return 0
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zapper: ignoring ZAPPER_SEED=%q: %v\n", raw, err)
		return 0
	}
	return seed
}
