package trace

import "github.com/deepnoodle-ai/lore/object"

// StackProvider is implemented by the execution engine. It returns the
// live call stack as frames ordered innermost-first.
type StackProvider interface {
	StackFrames() []Frame
}

// StackProviderFunc adapts a function to the StackProvider interface.
type StackProviderFunc func() []Frame

func (f StackProviderFunc) StackFrames() []Frame {
	return f()
}

// Capturer walks the live call stack under a skip policy, producing ordered
// frame records. A capture is synchronous, bounded by the actual stack
// depth (and the optional frame limit), and never partially fails.
type Capturer struct {
	provider StackProvider
	limit    int
}

// NewCapturer creates a capturer over the given stack provider. A limit of
// zero or less means no limit on captured frames.
func NewCapturer(provider StackProvider, limit int) *Capturer {
	return &Capturer{provider: provider, limit: limit}
}

// CaptureDetailed captures the full stack for programmatic introspection,
// with no skip filtering.
func (c *Capturer) CaptureDetailed() []Frame {
	return c.truncate(c.frames())
}

// CaptureSimple captures the stack under the given skip mode. The caller
// function is consulted only for SkipUntilSeen: leading frames are dropped
// until the caller's frame is reached, and that frame is dropped too.
func (c *Capturer) CaptureSimple(mode SkipMode, caller *object.Function) []Frame {
	frames := c.frames()
	switch mode {
	case SkipNone:
	case SkipFirst:
		if len(frames) > 0 {
			frames = frames[1:]
		}
	case SkipUntilSeen:
		frames = skipUntilSeen(frames, caller)
	}
	return c.truncate(frames)
}

func (c *Capturer) frames() []Frame {
	if c.provider == nil {
		return nil
	}
	return c.provider.StackFrames()
}

func (c *Capturer) truncate(frames []Frame) []Frame {
	if c.limit > 0 && len(frames) > c.limit {
		return frames[:c.limit]
	}
	return frames
}

func skipUntilSeen(frames []Frame, caller *object.Function) []Frame {
	if caller == nil {
		return nil
	}
	for i, frame := range frames {
		if frame.Function == caller {
			return frames[i+1:]
		}
	}
	// The caller never appeared on the stack; everything is skipped.
	return nil
}
