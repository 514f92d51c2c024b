package main

import (
	"math/rand/v2"

	"github.com/plus3/zapper/zapper"
)

const canvas = 800

// Bot aims at the largest active bacterium once every ReactionMs of game
// time. With probability MissRate the shot lands at the disk centre instead.
type Bot struct {
	ReactionMs float64
	MissRate   float64

	rng     *rand.Rand
	waiting float64
}

func NewBot(reactionMs, missRate float64, seed uint64) *Bot {
	return &Bot{ReactionMs: reactionMs, MissRate: missRate, rng: zapper.NewRand(seed)}
}

// Step advances the bot's clock and returns the click it makes, if any.
func (b *Bot) Step(snap zapper.Snapshot, elapsedMs float64) (zapper.Click, bool) {
	b.waiting += elapsedMs
	if b.waiting < b.ReactionMs || len(snap.Bacteria) == 0 {
		return zapper.Click{}, false
	}
	b.waiting = 0

	if b.rng.Float64() < b.MissRate {
		return pixel(0, 0), true
	}

	best := snap.Bacteria[0]
	for _, s := range snap.Bacteria[1:] {
		if s.Radius > best.Radius {
			best = s
		}
	}
	return pixel(best.X, best.Y), true
}

func pixel(x, y float64) zapper.Click {
	return zapper.Click{
		X:            (x + 1) * canvas / 2,
		Y:            (1 - y) * canvas / 2,
		CanvasWidth:  canvas,
		CanvasHeight: canvas,
	}
}
