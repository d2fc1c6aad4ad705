package core

// Status is the tri-state result shared by the behavior tree and state
// machine engines. StatusRunning means "call me again next tick before
// trying anything else at this level"; it is the only status that keeps a
// node's local progress alive across ticks.
type Status int

const (
	// StatusSuccess indicates the behavior completed successfully.
	StatusSuccess Status = iota
	// StatusFailure indicates the behavior completed unsuccessfully.
	StatusFailure
	// StatusRunning indicates the behavior needs more ticks to complete.
	StatusRunning
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	case StatusRunning:
		return "RUNNING"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the status ends a behavior's current run.
func (s Status) Terminal() bool { return s != StatusRunning }
