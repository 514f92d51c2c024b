package zapper

import (
	"image/color"

	"github.com/plus3/zapper/ecs"
)

// Bacterium carries the diagnostic id assigned at spawn.
type Bacterium struct {
	ID int
}

// Position is the fixed centre of a bacterium in normalised device
// coordinates.
type Position struct {
	X, Y float64
}

// Growth tracks the current radius. Radius never decreases and never
// exceeds MaxRadius.
type Growth struct {
	Radius    float64
	MaxRadius float64
}

// Tint is the palette entry a bacterium was drawn with.
type Tint struct {
	Name string     `yaml:"name"`
	RGBA color.RGBA `yaml:"rgba"`
}

// Vitality holds the two one-way flags of a bacterium: Active only goes
// from true to false and ReachedThreshold only from false to true.
type Vitality struct {
	Active           bool
	ReachedThreshold bool
}

// Census counts flags across all bacteria so the outcome check does not
// need to walk the store.
type Census struct {
	Active  int
	Reached int
}

func newRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Bacterium](registry)
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Growth](registry)
	ecs.RegisterComponent[Tint](registry)
	ecs.RegisterComponent[Vitality](registry)
	return registry
}
