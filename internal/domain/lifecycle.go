package domain

// Lifecycle is the externally visible quiz state.
type Lifecycle int

const (
	LifecycleLoading Lifecycle = iota
	LifecycleReady
	LifecycleError
	LifecycleCompleted
)

func (l Lifecycle) String() string {
	switch l {
	case LifecycleLoading:
		return "LOADING"
	case LifecycleReady:
		return "READY"
	case LifecycleError:
		return "ERROR"
	case LifecycleCompleted:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the lifecycle by name in JSON bodies.
func (l Lifecycle) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
