package zapper

// EventKind identifies what changed on the scoreboard.
type EventKind int

const (
	EventTick EventKind = iota
	EventKill
	EventThreshold
	EventOutcome
)

func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventKill:
		return "kill"
	case EventThreshold:
		return "threshold"
	case EventOutcome:
		return "outcome"
	default:
		return "unknown"
	}
}

// Event is published after every scoring change. Bacterium is the
// diagnostic id for kills and threshold crossings and -1 otherwise.
type Event struct {
	Kind      EventKind
	Bacterium int
	Score     ScoreBoard
}

// Listener receives session events on the goroutine that drives the
// session.
type Listener interface {
	Notify(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) Notify(e Event) { f(e) }

// Journal buffers events raised by systems until the session publishes
// them.
type Journal struct {
	events []Event
}

func (j *Journal) record(kind EventKind, bacterium int, board *ScoreBoard) {
	j.events = append(j.events, Event{Kind: kind, Bacterium: bacterium, Score: *board})
}

func (j *Journal) drain() []Event {
	events := j.events
	j.events = nil
	return events
}
