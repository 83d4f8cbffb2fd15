package trace

// SkipMode selects which leading frames a stack capture excludes.
type SkipMode int

const (
	// SkipNone keeps every frame from the most recent activation.
	SkipNone SkipMode = iota

	// SkipFirst omits exactly one leading frame.
	SkipFirst

	// SkipUntilSeen omits every leading frame up to and including the
	// frame whose function matches the caller passed to the capture.
	SkipUntilSeen
)

func (m SkipMode) String() string {
	switch m {
	case SkipNone:
		return "none"
	case SkipFirst:
		return "skip_first"
	case SkipUntilSeen:
		return "skip_until_seen"
	default:
		return "unknown"
	}
}
