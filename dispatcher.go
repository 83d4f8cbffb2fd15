package lore

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/deepnoodle-ai/lore/msg"
	"github.com/deepnoodle-ai/lore/object"
)

// exceptionFallback substitutes for a message argument whose isolated
// conversion failed.
const exceptionFallback = "exception"

// Listener is an embedder callback invoked once per reported diagnostic.
// The data argument is the opaque value supplied at registration, or the
// snapshotted ambient failure when none was supplied.
type Listener func(m *msg.Message, data object.Object)

// ListenerHandle identifies a listener registration.
type ListenerHandle int

type listenerEntry struct {
	callback Listener
	data     object.Object
	removed  bool
}

// AddListener registers a listener with optional opaque data. Listeners are
// invoked in registration order. A listener registered while a dispatch is
// in progress is not invoked for the message being dispatched.
func (r *Runtime) AddListener(callback Listener, data object.Object) ListenerHandle {
	r.listeners = append(r.listeners, listenerEntry{callback: callback, data: data})
	return ListenerHandle(len(r.listeners) - 1)
}

// RemoveListener tombstones the registration in place. Slots are never
// reindexed, so other handles stay valid.
func (r *Runtime) RemoveListener(handle ListenerHandle) {
	if handle >= 0 && int(handle) < len(r.listeners) {
		r.listeners[handle].removed = true
	}
}

// ListenerCount returns the number of live registrations.
func (r *Runtime) ListenerCount() int {
	count := 0
	for _, entry := range r.listeners {
		if !entry.removed {
			count++
		}
	}
	return count
}

// ReportMessage delivers a diagnostic to the registered listeners, or to
// the default reporter when none are registered. Reporting is a best-effort
// side channel: failures inside listeners or conversions are isolated and
// discarded, and the ambient pending-failure slot is restored on every exit
// path, so reporting never alters program behavior.
func (r *Runtime) ReportMessage(loc *msg.Location, m *msg.Message) {
	if r.suppressReporting {
		return
	}

	// Snapshot the ambient failure as context for listeners, then report
	// from a clean slate.
	failureCtx := object.Object(object.Nil)
	if r.pending != nil {
		failureCtx = r.pending
	}
	scope := r.acquireFailureScope()
	defer scope.release()
	r.ClearPendingFailure()

	r.normalizeArgument(m)

	// Membership snapshot: entries appended during dispatch are ignored,
	// tombstoned slots are skipped.
	count := len(r.listeners)
	if r.ListenerCount() == 0 {
		r.defaultReport(loc, m)
		r.discardDeferred()
		return
	}
	for i := 0; i < count; i++ {
		if r.listeners[i].removed {
			continue
		}
		r.dispatchTo(i, m, failureCtx)
		r.discardDeferred()
	}
}

// MessageText renders a message's final text using the restricted
// conversion for its argument.
func (r *Runtime) MessageText(m *msg.Message) (string, error) {
	return m.Text(object.RestrictedToText)
}

// DispatchFaults returns the failures discarded at dispatch boundaries
// since the last call to ClearDispatchFaults. Useful for debugging
// misbehaving listeners; reporting itself never surfaces these.
func (r *Runtime) DispatchFaults() error {
	return r.faults
}

func (r *Runtime) ClearDispatchFaults() {
	r.faults = nil
}

// normalizeArgument turns an object-valued message argument into text
// before it is exposed to listeners. Internally generated error objects use
// the restricted conversion; other objects get one isolated attempt at a
// user-level conversion.
func (r *Runtime) normalizeArgument(m *msg.Message) {
	switch arg := m.Argument().(type) {
	case *ErrorObject:
		text, err := object.RestrictedToText(arg)
		if err != nil {
			text = object.NewString(exceptionFallback)
		}
		m.NormalizeArgument(text)
	case *object.PlainObject, *object.Function:
		m.NormalizeArgument(r.convertIsolated(arg))
	}
}

// convertIsolated runs the user-level conversion with reporting suppressed
// and every failure swallowed, substituting the fallback text.
func (r *Runtime) convertIsolated(arg object.Object) (result *object.String) {
	result = object.NewString(exceptionFallback)
	prev := r.suppressReporting
	r.suppressReporting = true
	scope := r.acquireFailureScope()
	defer func() {
		scope.release()
		r.suppressReporting = prev
		if p := recover(); p != nil {
			r.logger.Debug().Interface("panic", p).Msg("argument conversion fault discarded")
		}
	}()
	str, err := r.converter(arg)
	if err == nil && str != nil {
		result = str
	}
	return
}

// dispatchTo invokes one listener inside its own fault-isolation boundary.
// A failure inside the listener never propagates and never blocks delivery
// to the remaining listeners.
func (r *Runtime) dispatchTo(index int, m *msg.Message, failureCtx object.Object) {
	defer func() {
		if p := recover(); p != nil {
			fault := fmt.Errorf("listener %d: %v", index, p)
			r.faults = multierror.Append(r.faults, fault)
			r.logger.Debug().Int("listener", index).Interface("panic", p).
				Msg("diagnostic listener fault discarded")
		}
		// A failure raised inside the listener stays inside the listener.
		r.ClearPendingFailure()
	}()
	entry := r.listeners[index]
	data := entry.data
	if data == nil {
		data = failureCtx
	}
	entry.callback(m, data)
}

// defaultReport writes one line per message to the diagnostic output
// stream: "<name>:<line>: <text>" for located messages, "<text>" otherwise.
func (r *Runtime) defaultReport(loc *msg.Location, m *msg.Message) {
	text, err := r.MessageText(m)
	if err != nil {
		// Unknown template ids are runtime defects; nothing sane can be
		// printed for them.
		r.logger.Error().Err(err).Msg("diagnostic message formatting failed")
		return
	}
	if loc != nil && loc.Script != nil {
		name := loc.Script.Name()
		if name == "" {
			name = "<unknown>"
		}
		fmt.Fprintf(r.out, "%s:%d: %s\n", name, loc.LineNumber(), text)
		return
	}
	fmt.Fprintf(r.out, "%s\n", text)
}
