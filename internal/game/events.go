package game

// EventKind identifies what happened.
type EventKind int

const (
	EventStateChanged EventKind = iota
	EventLevelChanged
	EventStarCollected
	EventGameOver
	EventVictory
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "StateChanged"
	case EventLevelChanged:
		return "LevelChanged"
	case EventStarCollected:
		return "StarCollected"
	case EventGameOver:
		return "GameOver"
	case EventVictory:
		return "Victory"
	default:
		return "Unknown"
	}
}

// Event is emitted by the Machine after the mutation it describes is complete.
// Level is always the current level; the other fields depend on Kind.
type Event struct {
	Kind  EventKind
	Level int

	// StateChanged
	State    State
	Previous State
	Restart  bool // set when RestartLevel caused the change

	// StarCollected, GameOver, Victory
	Collected int
	Target    int

	// Victory
	Stars      int
	Percentage float32
}

// Resumed reports whether a StateChanged event is a return from pause
// rather than a fresh start or restart.
func (e Event) Resumed() bool {
	return e.Kind == EventStateChanged && e.State == StatePlaying && e.Previous == StatePaused && !e.Restart
}

// Listener receives machine events.
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// HandleEvent calls f(e).
func (f ListenerFunc) HandleEvent(e Event) {
	f(e)
}

// Subscription identifies a registered listener.
type Subscription int

type subscriber struct {
	id       Subscription
	listener Listener
}

// Bus delivers events synchronously to listeners in subscription order.
// It is not safe for concurrent use; the whole core runs on one goroutine.
type Bus struct {
	subs   []subscriber
	nextID Subscription
}

// Subscribe registers l and returns a handle for Unsubscribe.
func (b *Bus) Subscribe(l Listener) Subscription {
	b.nextID++
	b.subs = append(b.subs, subscriber{id: b.nextID, listener: l})
	return b.nextID
}

// Unsubscribe removes a listener. Unknown handles are ignored.
func (b *Bus) Unsubscribe(id Subscription) {
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	return len(b.subs)
}

// Emit delivers e to every listener registered when Emit was called.
// Listeners may subscribe, unsubscribe or emit from inside HandleEvent.
func (b *Bus) Emit(e Event) {
	subs := b.subs
	for _, s := range subs {
		s.listener.HandleEvent(e)
	}
}
