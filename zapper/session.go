package zapper

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/zapper/ecs"
)

// Session is one game from spawn to outcome. It is not safe for concurrent
// use: Tick, Click and Snapshot must be called from the same goroutine, or
// through Run.
type Session struct {
	cfg     Config
	storage *ecs.Storage

	frame *ecs.Scheduler
	input *ecs.Scheduler

	board   *ecs.Singleton[ScoreBoard]
	pointer *ecs.Singleton[PointerQueue]
	journal *ecs.Singleton[Journal]
	tally   *ecs.Singleton[Tally]

	bacteria *ecs.View[BacteriumView]
	index    *intmap.Map[int, ecs.EntityId]

	listeners []Listener

	elapsed time.Duration
	ticks   int
}

// BacteriumView is the read shape of a stored bacterium.
type BacteriumView struct {
	ecs.EntityId
	*Bacterium
	*Position
	*Growth
	*Tint
	*Vitality
}

// NewSession validates cfg, spawns the bacteria batch and returns a
// session ready for its first tick.
func NewSession(cfg Config, listeners ...Listener) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newSession(cfg, Spawn(cfg, NewRand(cfg.Seed)), listeners), nil
}

// NewSessionWith builds a session around a fixed layout instead of a
// random one. Seeds are stored in the given order, which is also the
// hit-test order.
func NewSessionWith(cfg Config, seeds []Seed, listeners ...Listener) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: at least one bacterium is required", ErrInvalidConfig)
	}
	return newSession(cfg, seeds, listeners), nil
}

func newSession(cfg Config, seeds []Seed, listeners []Listener) *Session {
	storage := ecs.NewStorage(newRegistry())

	s := &Session{
		cfg:       cfg,
		storage:   storage,
		index:     intmap.New[int, ecs.EntityId](len(seeds)),
		listeners: listeners,
	}

	for _, seed := range seeds {
		id := storage.Spawn(
			Bacterium{ID: seed.ID},
			seed.Position,
			Growth{Radius: cfg.InitialRadius, MaxRadius: cfg.MaxRadius},
			seed.Tint,
			Vitality{Active: true},
		)
		s.index.Put(seed.ID, id)
	}

	ecs.NewSingleton(storage, cfg)
	ecs.NewSingleton(storage, Census{Active: len(seeds)})
	s.board = ecs.NewSingleton[ScoreBoard](storage)
	s.pointer = ecs.NewSingleton[PointerQueue](storage)
	s.journal = ecs.NewSingleton[Journal](storage)
	s.tally = ecs.NewSingleton[Tally](storage)
	s.bacteria = ecs.NewView[BacteriumView](storage)

	s.frame = ecs.NewScheduler(storage)
	s.frame.Register(&GrowthSystem{})
	s.frame.Register(&PassiveScoreSystem{})
	s.frame.Register(&OutcomeSystem{})

	s.input = ecs.NewScheduler(storage)
	s.input.Register(&HitTestSystem{})
	s.input.Register(&OutcomeSystem{})

	log.Printf("[Session] spawned %d bacteria", len(seeds))
	return s
}

// Config returns the rules the session was built with.
func (s *Session) Config() Config {
	return s.cfg
}

// Tick advances the simulation by elapsedMs milliseconds. Negative values
// count as zero. A tick after the game is over does nothing.
func (s *Session) Tick(elapsedMs float64) {
	if s.board.Get().Over {
		return
	}
	// Also catches NaN, which max passes through.
	if !(elapsedMs > 0) {
		elapsedMs = 0
	}

	s.frame.Once(elapsedMs / 1000)
	s.elapsed += time.Duration(elapsedMs * float64(time.Millisecond))
	s.ticks++

	s.journal.Get().record(EventTick, -1, s.board.Get())
	s.publish()
}

// Click resolves a pointer press immediately, including any outcome it
// causes.
func (s *Session) Click(c Click) {
	s.pointer.Get().push(c)
	s.input.Once(0)
	s.publish()
}

func (s *Session) publish() {
	for _, event := range s.journal.Get().drain() {
		switch event.Kind {
		case EventOutcome:
			log.Printf("[Session] %s after %v (player %.0f, passive %.0f)",
				event.Score.Outcome, s.elapsed, event.Score.PlayerScore, event.Score.PassiveScore)
		case EventThreshold:
			log.Printf("[Session] bacterium %d reached the threshold", event.Bacterium)
		}
		for _, l := range s.listeners {
			l.Notify(event)
		}
	}
}

// Score returns a copy of the scoreboard.
func (s *Session) Score() ScoreBoard {
	return *s.board.Get()
}

// Over reports whether the game has ended.
func (s *Session) Over() bool {
	return s.board.Get().Over
}

// Bacterium looks up a bacterium by its diagnostic id.
func (s *Session) Bacterium(id int) (BacteriumView, bool) {
	entity, ok := s.index.Get(id)
	if !ok {
		return BacteriumView{}, false
	}
	view := s.bacteria.Get(entity)
	if view == nil {
		return BacteriumView{}, false
	}
	return *view, true
}

// Storage exposes the underlying store for debugging tools.
func (s *Session) Storage() *ecs.Storage {
	return s.storage
}

// Schedulers returns the frame and input schedulers, for their stats.
func (s *Session) Schedulers() (frame, input *ecs.Scheduler) {
	return s.frame, s.input
}

// Sprite is one active bacterium as the renderer sees it.
type Sprite struct {
	ID     int
	X, Y   float64
	Radius float64
	Color  color.RGBA
	Name   string
	Warned bool // past the threshold
}

// Snapshot is the state a renderer needs for one frame.
type Snapshot struct {
	DiskRadius float64
	Bacteria   []Sprite
	Score      ScoreBoard
}

// Snapshot copies the active bacteria in store order.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{DiskRadius: s.cfg.DiskRadius, Score: *s.board.Get()}
	for b := range s.bacteria.Values() {
		if !b.Active {
			continue
		}
		snap.Bacteria = append(snap.Bacteria, Sprite{
			ID:     b.Bacterium.ID,
			X:      b.X,
			Y:      b.Y,
			Radius: b.Radius,
			Color:  b.RGBA,
			Name:   b.Name,
			Warned: b.ReachedThreshold,
		})
	}
	return snap
}

// All copies every bacterium, active or not, in store order.
func (s *Session) All() []BacteriumView {
	var out []BacteriumView
	for b := range s.bacteria.Values() {
		out = append(out, b)
	}
	return out
}

// Stats summarises a session.
type Stats struct {
	Elapsed time.Duration
	Ticks   int
	Tally
}

func (s *Session) Stats() Stats {
	return Stats{Elapsed: s.elapsed, Ticks: s.ticks, Tally: *s.tally.Get()}
}

// Run drives the session from one goroutine: clicks are handled as they
// arrive and the clock ticks every interval with the measured wall time.
// It returns when ctx is cancelled. A nil clicks channel is allowed.
func (s *Session) Run(ctx context.Context, interval time.Duration, clicks <-chan Click) {
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-clicks:
			if !ok {
				clicks = nil
				continue
			}
			s.Click(c)
		case now := <-ticker.C:
			s.Tick(float64(now.Sub(last)) / float64(time.Millisecond))
			last = now
		}
	}
}
