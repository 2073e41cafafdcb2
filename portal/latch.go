package portal

// LatchState is where a body is in its crossing cycle.
type LatchState uint8

const (
	Idle       LatchState = iota // free to cross
	InCrossing                   // transform applied, still inside a trigger
	Cooling                      // left the trigger, waiting out the cooldown
)

func (s LatchState) String() string {
	switch s {
	case Idle:
		return "idle"
	case InCrossing:
		return "crossing"
	case Cooling:
		return "cooling"
	default:
		return "unknown"
	}
}

// Latch guards a body against more than one teleport per overlap.
// It is held from the moment a crossing starts until the cooldown after
// the last trigger exit expires.
type Latch struct {
	state LatchState
	timer TimerID
	from  Slot
}

// State returns the current state.
func (l *Latch) State() LatchState {
	return l.state
}

// Held reports whether a new crossing would be refused.
func (l *Latch) Held() bool {
	return l.state != Idle
}

// EntrySlot returns the slot of the portal that started the current crossing.
func (l *Latch) EntrySlot() Slot {
	return l.from
}

func (l *Latch) acquire(from Slot) bool {
	if l.state != Idle {
		return false
	}
	l.state = InCrossing
	l.from = from
	return true
}

// cool moves a held latch into its cooldown and returns the timer it
// replaced, if any.
func (l *Latch) cool(id TimerID) (previous TimerID) {
	previous = l.timer
	l.state = Cooling
	l.timer = id
	return previous
}

func (l *Latch) release() {
	l.state = Idle
	l.timer = 0
}
