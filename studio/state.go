package studio

// StateType represents the current state of a synthesis session.
type StateType int

const (
	// StateIdle indicates no generation has happened yet.
	StateIdle StateType = iota
	// StateGenerating indicates a synthesis request is in flight.
	StateGenerating
	// StateReady indicates the last generation succeeded and its artifact
	// is current.
	StateReady
	// StateFailed indicates the last generation failed.
	StateFailed
)

// String returns the string representation of the state.
func (s StateType) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CanSubmit returns true if a new generation may be started from this state.
// Ready and Failed are stable display states; they only reset when the next
// generation begins.
func (s StateType) CanSubmit() bool {
	return s != StateGenerating
}

// StateMachine manages state transitions for a synthesis session.
type StateMachine struct {
	current     StateType
	transitions map[StateType][]StateType
}

// NewStateMachine creates a new state machine with valid transitions.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		current: StateIdle,
		transitions: map[StateType][]StateType{
			StateIdle:       {StateGenerating},
			StateGenerating: {StateReady, StateFailed},
			StateReady:      {StateGenerating},
			StateFailed:     {StateGenerating},
		},
	}
}

// Transition attempts to transition to the specified state and reports
// whether the transition was valid.
func (sm *StateMachine) Transition(to StateType) bool {
	valid, ok := sm.transitions[sm.current]
	if !ok {
		return false
	}
	for _, state := range valid {
		if state == to {
			sm.current = to
			return true
		}
	}
	return false
}

// Current returns the current state.
func (sm *StateMachine) Current() StateType {
	return sm.current
}
