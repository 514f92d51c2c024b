package debugui

import "github.com/plus3/zapper/ecs"

// Target is what the overlay inspects.
type Target struct {
	Storage    *ecs.Storage
	Schedulers []NamedScheduler
}

type NamedScheduler struct {
	Name      string
	Scheduler *ecs.Scheduler
}

// EntityBrowser lists every entity of the target with its component values.
type EntityBrowser struct {
	filterText string
	perPage    int
	page       int
}

// PerformancePanel shows storage counts, frame times and system timings.
type PerformancePanel struct {
	history []float32
	index   int
}
