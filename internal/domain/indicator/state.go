package indicator

// State is the commanded state of the indicator.
type State uint8

const (
	// Unknown is the state before the first command is written.
	Unknown State = iota
	// Off means the LED was last commanded off.
	Off
	// On means the LED was last commanded on.
	On
)

// String returns a lowercase name used in logs and metric labels.
func (s State) String() string {
	switch s {
	case Off:
		return "off"
	case On:
		return "on"
	default:
		return "unknown"
	}
}

// Decide maps a sample to a target state.
//
// A zero sample always means Off, a sample at or above threshold means On.
// Samples strictly between zero and threshold produce no decision (ok is false)
// and the caller must leave the indicator as it is.
func Decide(sample, threshold uint64) (target State, ok bool) {
	switch {
	case sample == 0:
		return Off, true
	case sample >= threshold:
		return On, true
	default:
		return Unknown, false
	}
}

// Next applies Decide to the current state and returns the resulting state.
func Next(current State, sample, threshold uint64) State {
	if target, ok := Decide(sample, threshold); ok {
		return target
	}

	return current
}
