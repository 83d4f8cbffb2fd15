package lore

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/lore/object"
	"github.com/deepnoodle-ai/lore/trace"
)

// Option describes a function used to configure a Runtime.
type Option func(*Runtime)

// WithOutput sets the stream the default reporter writes to. By default,
// diagnostics go to stderr.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.out = w
	}
}

// WithLogger sets the logger used for the runtime's own debug events, such
// as discarded listener faults. Logging is disabled by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithStackProvider connects the execution engine's live stack walk.
// Without a provider, captures produce empty traces.
func WithStackProvider(provider trace.StackProvider) Option {
	return func(r *Runtime) {
		r.provider = provider
	}
}

// WithStackFormatter sets the hook that renders captured frames into the
// stack text stored on error objects.
func WithStackFormatter(formatter trace.Formatter) Option {
	return func(r *Runtime) {
		r.formatter = formatter
	}
}

// WithTextConverter overrides the user-level text conversion used for
// message coercion and argument normalization.
func WithTextConverter(conv object.TextConverter) Option {
	return func(r *Runtime) {
		r.converter = conv
	}
}

// WithTraceLimit bounds the number of frames retained by a stack capture.
// A limit of zero or less means unbounded.
func WithTraceLimit(limit int) Option {
	return func(r *Runtime) {
		r.traceLimit = limit
	}
}
