package feed

// Phase is the lifecycle phase of one load slot.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseFailed
)

// LoadState is the observable state of one of the three independent load
// slots (initial, append, refresh). It is a closed set of variants:
// idle, loading, or failed with a message.
type LoadState struct {
	Phase   Phase
	Message string
}

// Idle returns the idle state.
func Idle() LoadState {
	return LoadState{Phase: PhaseIdle}
}

// Loading returns the loading state.
func Loading() LoadState {
	return LoadState{Phase: PhaseLoading}
}

// Failed returns the failed state carrying the failure's message.
func Failed(message string) LoadState {
	return LoadState{Phase: PhaseFailed, Message: message}
}

// IsLoading reports whether the slot has a request in flight.
func (s LoadState) IsLoading() bool {
	return s.Phase == PhaseLoading
}

// IsFailed reports whether the slot's last request failed.
func (s LoadState) IsFailed() bool {
	return s.Phase == PhaseFailed
}

func (s LoadState) String() string {
	switch s.Phase {
	case PhaseLoading:
		return "loading"
	case PhaseFailed:
		return "error: " + s.Message
	}
	return "idle"
}
