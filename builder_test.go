package lore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/lore/object"
	"github.com/deepnoodle-ai/lore/trace"
)

func stackProviderOf(frames ...trace.Frame) trace.StackProvider {
	return trace.StackProviderFunc(func() []trace.Frame {
		return frames
	})
}

func TestConstructErrorWithoutMessage(t *testing.T) {
	r := NewRuntime()
	target := object.NewFunction("Error", nil)

	for _, message := range []object.Object{nil, object.Nil} {
		errObj, err := r.ConstructError(target, object.Nil, message, trace.SkipNone, false)
		require.NoError(t, err)
		_, ok := errObj.Message()
		assert.False(t, ok)
		_, ok = errObj.OwnProperty("message")
		assert.False(t, ok)
	}
}

func TestConstructErrorInstallsMessage(t *testing.T) {
	r := NewRuntime()
	target := object.NewFunction("Error", nil)

	errObj, err := r.ConstructError(target, object.Nil, object.NewString("boom"), trace.SkipNone, false)
	require.NoError(t, err)

	message, ok := errObj.Message()
	require.True(t, ok)
	assert.Equal(t, "boom", message)

	prop, ok := errObj.OwnProperty("message")
	require.True(t, ok)
	assert.True(t, prop.Attrs.Writable)
	assert.False(t, prop.Attrs.Enumerable)
	assert.True(t, prop.Attrs.Configurable)
}

func TestConstructErrorCoercesObjectMessage(t *testing.T) {
	r := NewRuntime()
	target := object.NewFunction("Error", nil)

	message := object.NewPlainObject(nil)
	message.Define("toString", object.NewBuiltinFunction("toString",
		func(receiver object.Object, args ...object.Object) (object.Object, error) {
			return object.NewString("stringified"), nil
		}), object.DefaultAttrs())

	errObj, err := r.ConstructError(target, object.Nil, message, trace.SkipNone, false)
	require.NoError(t, err)
	text, ok := errObj.Message()
	require.True(t, ok)
	assert.Equal(t, "stringified", text)
}

func TestConstructErrorCoercionFailureIsAtomic(t *testing.T) {
	r := NewRuntime()
	target := object.NewFunction("Error", nil)

	message := object.NewPlainObject(nil)
	message.Define("toString", object.NewBuiltinFunction("toString",
		func(receiver object.Object, args ...object.Object) (object.Object, error) {
			return nil, object.ErrNotConvertible
		}), object.DefaultAttrs())

	errObj, err := r.ConstructError(target, object.Nil, message, trace.SkipNone, false)
	require.Error(t, err)
	assert.Nil(t, errObj)
}

func TestConstructErrorPrototypeLineage(t *testing.T) {
	r := NewRuntime()
	errorProto := object.NewPlainObject(nil)
	target := object.NewFunction("Error", nil)
	target.SetPrototype(errorProto)

	subProto := object.NewPlainObject(errorProto)
	newTarget := object.NewFunction("SubError", nil)
	newTarget.SetPrototype(subProto)

	// New-target wins when it is a proper receiver.
	errObj, err := r.ConstructError(target, newTarget, nil, trace.SkipNone, true)
	require.NoError(t, err)
	assert.Equal(t, subProto, errObj.Prototype())

	// Otherwise the target's lineage is used.
	errObj, err = r.ConstructError(target, object.Nil, nil, trace.SkipNone, true)
	require.NoError(t, err)
	assert.Equal(t, errorProto, errObj.Prototype())
}

func TestConstructErrorSkipRefinement(t *testing.T) {
	target := object.NewFunction("Error", nil)
	subCtor := object.NewFunction("SubError", nil)
	user := object.NewFunction("main", nil)

	provider := stackProviderOf(
		trace.NewScriptFrame(target, nil, 0),
		trace.NewScriptFrame(subCtor, nil, 0),
		trace.NewScriptFrame(user, nil, 0),
	)
	r := NewRuntime(WithStackProvider(provider))

	// SkipFirst with a function new-target refines to skip everything up to
	// and including the new-target's own frame.
	errObj, err := r.ConstructError(target, subCtor, nil, trace.SkipFirst, true)
	require.NoError(t, err)
	frames := errObj.StackFrames()
	require.Len(t, frames, 1)
	assert.Equal(t, user, frames[0].Function)

	// Without a function new-target, SkipFirst drops exactly one frame.
	errObj, err = r.ConstructError(target, object.Nil, nil, trace.SkipFirst, true)
	require.NoError(t, err)
	frames = errObj.StackFrames()
	require.Len(t, frames, 2)
	assert.Equal(t, subCtor, frames[0].Function)
}

func TestConstructErrorDetailedTrace(t *testing.T) {
	fn := object.NewFunction("f", nil)
	r := NewRuntime(WithStackProvider(stackProviderOf(trace.NewScriptFrame(fn, nil, 0))))
	target := object.NewFunction("Error", nil)

	errObj, err := r.ConstructError(target, object.Nil, nil, trace.SkipNone, false)
	require.NoError(t, err)
	assert.Len(t, errObj.DetailedFrames(), 1)

	errObj, err = r.ConstructError(target, object.Nil, nil, trace.SkipNone, true)
	require.NoError(t, err)
	assert.Nil(t, errObj.DetailedFrames())
}

func TestConstructErrorCaptureFailure(t *testing.T) {
	panicking := trace.StackProviderFunc(func() []trace.Frame {
		panic("stack walk failed")
	})
	r := NewRuntime(WithStackProvider(panicking))
	target := object.NewFunction("Error", nil)

	errObj, err := r.ConstructError(target, object.Nil, object.NewString("boom"), trace.SkipNone, false)
	require.Error(t, err)
	assert.Nil(t, errObj)
	var capErr *CaptureError
	require.ErrorAs(t, err, &capErr)
	assert.True(t, capErr.IsFatal())
}

type countingFormatter struct {
	calls int
	text  string
}

func (f *countingFormatter) FormatStackTrace(errObj object.Object, frames []trace.Frame) (string, error) {
	f.calls++
	return f.text, nil
}

func TestErrorObjectStackIsLazyAndCached(t *testing.T) {
	fn := object.NewFunction("f", nil)
	formatter := &countingFormatter{text: "rendered"}
	r := NewRuntime(
		WithStackProvider(stackProviderOf(trace.NewScriptFrame(fn, nil, 0))),
		WithStackFormatter(formatter),
	)
	target := object.NewFunction("Error", nil)

	errObj, err := r.ConstructError(target, object.Nil, nil, trace.SkipNone, true)
	require.NoError(t, err)
	assert.Equal(t, 0, formatter.calls)

	text, err := errObj.Stack()
	require.NoError(t, err)
	assert.Equal(t, "rendered", text)

	_, err = errObj.Stack()
	require.NoError(t, err)
	assert.Equal(t, 1, formatter.calls)
}

func TestErrorObjectInspect(t *testing.T) {
	r := NewRuntime()
	target := object.NewFunction("Error", nil)

	errObj, err := r.ConstructError(target, object.Nil, object.NewString("boom"), trace.SkipNone, true)
	require.NoError(t, err)
	assert.Equal(t, "Error: boom", errObj.Inspect())

	errObj, err = r.ConstructError(target, object.Nil, nil, trace.SkipNone, true)
	require.NoError(t, err)
	assert.Equal(t, "Error", errObj.Inspect())
	assert.Equal(t, object.ERROR, errObj.Type())
}
