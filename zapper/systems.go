package zapper

import (
	"math"

	"github.com/plus3/zapper/ecs"
)

type grower struct {
	*Bacterium
	*Growth
	*Vitality
}

type target struct {
	*Bacterium
	*Position
	*Growth
	*Vitality
}

// GrowthSystem advances every active bacterium and handles threshold
// crossings.
type GrowthSystem struct {
	Bacteria ecs.Query[grower]
	Rules    ecs.Singleton[Config]
	Board    ecs.Singleton[ScoreBoard]
	Census   ecs.Singleton[Census]
	Journal  ecs.Singleton[Journal]
}

func (s *GrowthSystem) Execute(frame *ecs.UpdateFrame) {
	board := s.Board.Get()
	if board.Over {
		return
	}
	rules := s.Rules.Get()
	census := s.Census.Get()
	journal := s.Journal.Get()
	step := rules.GrowthSpeed * frame.DeltaTime

	for b := range s.Bacteria.Values() {
		if !b.Active {
			continue
		}
		b.Radius = min(b.Radius+step, b.MaxRadius)

		if b.ReachedThreshold || b.Radius < rules.ThresholdRadius {
			continue
		}
		b.ReachedThreshold = true
		census.Reached++
		board.PassiveScore += rules.ThresholdBonus
		journal.record(EventThreshold, b.ID, board)

		if settle(board, census, rules.LossLimit, journal) {
			return
		}
	}
}

// PassiveScoreSystem accrues the opponent's time-based score.
type PassiveScoreSystem struct {
	Rules ecs.Singleton[Config]
	Board ecs.Singleton[ScoreBoard]
}

func (s *PassiveScoreSystem) Execute(frame *ecs.UpdateFrame) {
	board := s.Board.Get()
	if board.Over {
		return
	}
	board.PassiveScore += s.Rules.Get().PassiveRate * frame.DeltaTime
}

// HitTestSystem resolves queued clicks against active bacteria in spawn
// order. The first bacterium under the pointer is hit even if a later one
// is centred closer.
type HitTestSystem struct {
	Bacteria ecs.Query[target]
	Pointer  ecs.Singleton[PointerQueue]
	Rules    ecs.Singleton[Config]
	Board    ecs.Singleton[ScoreBoard]
	Census   ecs.Singleton[Census]
	Journal  ecs.Singleton[Journal]
	Tally    ecs.Singleton[Tally]
}

func (s *HitTestSystem) Execute(frame *ecs.UpdateFrame) {
	board := s.Board.Get()
	rules := s.Rules.Get()
	census := s.Census.Get()
	journal := s.Journal.Get()
	tally := s.Tally.Get()

	for _, click := range s.Pointer.Get().drain() {
		if board.Over {
			continue
		}
		x, y, ok := click.NDC()
		if !ok {
			continue
		}
		tally.Clicks++

		hit := s.first(x, y)
		if hit == nil {
			tally.Misses++
			continue
		}

		tally.Hits++
		hit.Active = false
		census.Active--
		board.PlayerScore += rules.KillBonus
		journal.record(EventKill, hit.ID, board)
		settle(board, census, rules.LossLimit, journal)
	}
}

func (s *HitTestSystem) first(x, y float64) *target {
	for b := range s.Bacteria.Values() {
		if !b.Active {
			continue
		}
		if math.Hypot(x-b.X, y-b.Y) <= b.Radius {
			return &b
		}
	}
	return nil
}

// OutcomeSystem is the end-of-frame terminal check.
type OutcomeSystem struct {
	Rules   ecs.Singleton[Config]
	Board   ecs.Singleton[ScoreBoard]
	Census  ecs.Singleton[Census]
	Journal ecs.Singleton[Journal]
}

func (s *OutcomeSystem) Execute(frame *ecs.UpdateFrame) {
	settle(s.Board.Get(), s.Census.Get(), s.Rules.Get().LossLimit, s.Journal.Get())
}
