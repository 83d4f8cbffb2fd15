// Package lore implements the diagnostics subsystem of the Lore runtime:
// error object construction, symbolic stack capture,
// parameterized message formatting, and fault-isolated delivery of
// diagnostics to embedder-registered listeners.
//
// A Runtime instance owns the per-instance diagnostic state: the listener
// registry, the ambient pending-failure slot, and the hooks through which
// the execution engine and the embedder plug in.
package lore

import (
	"io"
	"os"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/lore/object"
	"github.com/deepnoodle-ai/lore/trace"
)

// DefaultTraceLimit bounds how many frames a stack capture retains unless
// configured otherwise.
const DefaultTraceLimit = 64

// Runtime holds the diagnostic state of one runtime instance. All
// operations are single-threaded and synchronous; the only suspension
// points are re-entrant calls into listener or conversion code.
type Runtime struct {
	id         uuid.UUID
	logger     zerolog.Logger
	out        io.Writer
	provider   trace.StackProvider
	capturer   *trace.Capturer
	formatter  trace.Formatter
	converter  object.TextConverter
	traceLimit int

	listeners []listenerEntry

	// pending is the ambient failure slot; deferred holds a failure
	// scheduled during a re-entrant callback, discarded by reporting.
	pending  object.Object
	deferred object.Object

	// suppressReporting is set while an isolated conversion runs, so that
	// diagnostics it triggers are not reported recursively.
	suppressReporting bool

	faults error
}

// NewRuntime creates a runtime with the given options applied.
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		id:         uuid.Must(uuid.NewV4()),
		logger:     zerolog.Nop(),
		out:        os.Stderr,
		formatter:  &trace.TextFormatter{},
		traceLimit: DefaultTraceLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.converter == nil {
		r.converter = r.userToText
	}
	r.logger = r.logger.With().Str("runtime_id", r.id.String()).Logger()
	r.capturer = trace.NewCapturer(r.provider, r.traceLimit)
	return r
}

// ID returns the unique id of this runtime instance.
func (r *Runtime) ID() uuid.UUID {
	return r.id
}

// SetPendingFailure installs a failure in the ambient pending-failure slot.
func (r *Runtime) SetPendingFailure(failure object.Object) {
	r.pending = failure
}

// PendingFailure returns the ambient pending failure, if any.
func (r *Runtime) PendingFailure() (object.Object, bool) {
	return r.pending, r.pending != nil
}

// ClearPendingFailure empties the ambient pending-failure slot.
func (r *Runtime) ClearPendingFailure() {
	r.pending = nil
}

// DeferFailure schedules a failure for delivery after the current
// re-entrant callback returns. Reporting discards deferred failures so
// they never leak to the caller of ReportMessage.
func (r *Runtime) DeferFailure(failure object.Object) {
	r.deferred = failure
}

// TakeDeferredFailure removes and returns the deferred failure, if any.
func (r *Runtime) TakeDeferredFailure() (object.Object, bool) {
	failure := r.deferred
	r.deferred = nil
	return failure, failure != nil
}

func (r *Runtime) discardDeferred() {
	if r.deferred == nil {
		return
	}
	r.logger.Debug().Str("failure", r.deferred.Inspect()).
		Msg("discarding failure deferred during diagnostic reporting")
	r.deferred = nil
}

// failureScope saves the pending-failure slot and restores it on release.
// Used with defer, it guarantees restoration on every exit path around
// re-entrant callbacks, at any re-entrancy depth.
type failureScope struct {
	rt    *Runtime
	saved object.Object
}

func (r *Runtime) acquireFailureScope() *failureScope {
	return &failureScope{rt: r, saved: r.pending}
}

func (s *failureScope) release() {
	s.rt.pending = s.saved
}

// userToText is the default user-level text conversion: strings convert
// verbatim, plain objects go through their toString callable if one is
// bound on the prototype chain, and everything else uses the restricted
// conversion. Invoking user code means this conversion can fail and can
// re-enter the runtime.
func (r *Runtime) userToText(obj object.Object) (*object.String, error) {
	if str, ok := obj.(*object.String); ok {
		return str, nil
	}
	po, ok := obj.(*object.PlainObject)
	if !ok {
		return object.RestrictedToText(obj)
	}
	value, found := po.Get("toString")
	if !found {
		return object.RestrictedToText(obj)
	}
	fn, ok := value.(*object.Function)
	if !ok || !fn.Callable() {
		return object.RestrictedToText(obj)
	}
	result, err := fn.Call(po)
	if err != nil {
		return nil, err
	}
	str, ok := result.(*object.String)
	if !ok {
		return nil, object.ErrNotConvertible
	}
	return str, nil
}
