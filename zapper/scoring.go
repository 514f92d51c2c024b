package zapper

// Outcome is the terminal state of a session.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	default:
		return "none"
	}
}

// Label is the text shown to the player once the game is over.
func (o Outcome) Label() string {
	switch o {
	case OutcomeWin:
		return "You win!"
	case OutcomeLose:
		return "You lose!"
	default:
		return ""
	}
}

// Evaluate derives the outcome from the flag counts. Losing takes
// precedence: a board that has both lost enough bacteria to the threshold
// and has none left active is a loss.
func Evaluate(reached, active, lossLimit int) Outcome {
	if reached >= lossLimit {
		return OutcomeLose
	}
	if active == 0 {
		return OutcomeWin
	}
	return OutcomeNone
}

// ScoreBoard is the scoring state of a session.
type ScoreBoard struct {
	PlayerScore  float64
	PassiveScore float64
	Over         bool
	Outcome      Outcome
}

// settle runs the terminal check and reports whether it ended the game.
// Once Over is set it never changes again.
func settle(board *ScoreBoard, census *Census, lossLimit int, journal *Journal) bool {
	if board.Over {
		return false
	}
	outcome := Evaluate(census.Reached, census.Active, lossLimit)
	if outcome == OutcomeNone {
		return false
	}
	board.Over = true
	board.Outcome = outcome
	journal.record(EventOutcome, -1, board)
	return true
}
