package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/lore/object"
)

// stackOf builds a provider for the call chain A -> B -> C captured at C,
// returning frames innermost-first: [C, B, A].
func stackOf(fns ...*object.Function) StackProvider {
	return StackProviderFunc(func() []Frame {
		frames := make([]Frame, 0, len(fns))
		for _, fn := range fns {
			frames = append(frames, NewScriptFrame(fn, nil, 0))
		}
		return frames
	})
}

func frameNames(frames []Frame) []string {
	names := make([]string, 0, len(frames))
	for _, f := range frames {
		names = append(names, f.Function.Name())
	}
	return names
}

func TestCaptureSkipModes(t *testing.T) {
	script := object.NewScript("main.lore", "a()\nb()\nc()\n", object.ScriptKindNormal)
	fnA := object.NewFunction("A", script)
	fnB := object.NewFunction("B", script)
	fnC := object.NewFunction("C", script)
	capturer := NewCapturer(stackOf(fnC, fnB, fnA), 0)

	tests := []struct {
		name     string
		mode     SkipMode
		caller   *object.Function
		expected []string
	}{
		{name: "none keeps all frames", mode: SkipNone, expected: []string{"C", "B", "A"}},
		{name: "skip first omits one frame", mode: SkipFirst, expected: []string{"B", "A"}},
		{
			// The seen function's own frame is excluded: a subclass
			// constructor hides exactly its own activation.
			name:     "skip until seen excludes the seen frame",
			mode:     SkipUntilSeen,
			caller:   fnB,
			expected: []string{"A"},
		},
		{name: "skip until seen innermost", mode: SkipUntilSeen, caller: fnC, expected: []string{"B", "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := capturer.CaptureSimple(tt.mode, tt.caller)
			assert.Equal(t, tt.expected, frameNames(frames))
		})
	}
}

func TestCaptureSkipUntilSeenCallerAbsent(t *testing.T) {
	fnA := object.NewFunction("A", nil)
	fnX := object.NewFunction("X", nil)
	capturer := NewCapturer(stackOf(fnA), 0)

	assert.Empty(t, capturer.CaptureSimple(SkipUntilSeen, fnX))
	assert.Empty(t, capturer.CaptureSimple(SkipUntilSeen, nil))
}

func TestCaptureSkipFirstOnEmptyStack(t *testing.T) {
	capturer := NewCapturer(stackOf(), 0)
	assert.Empty(t, capturer.CaptureSimple(SkipFirst, nil))
}

func TestCaptureDetailedIgnoresSkip(t *testing.T) {
	fnA := object.NewFunction("A", nil)
	fnB := object.NewFunction("B", nil)
	capturer := NewCapturer(stackOf(fnB, fnA), 0)

	frames := capturer.CaptureDetailed()
	require.Len(t, frames, 2)
	assert.Equal(t, []string{"B", "A"}, frameNames(frames))
}

func TestCaptureLimit(t *testing.T) {
	fnA := object.NewFunction("A", nil)
	fnB := object.NewFunction("B", nil)
	fnC := object.NewFunction("C", nil)
	capturer := NewCapturer(stackOf(fnC, fnB, fnA), 2)

	assert.Equal(t, []string{"C", "B"}, frameNames(capturer.CaptureDetailed()))
	assert.Equal(t, []string{"B", "A"}, frameNames(capturer.CaptureSimple(SkipFirst, nil)))
}

func TestCaptureWithoutProvider(t *testing.T) {
	capturer := NewCapturer(nil, 0)
	assert.Empty(t, capturer.CaptureDetailed())
	assert.Empty(t, capturer.CaptureSimple(SkipNone, nil))
}

func TestSkipModeString(t *testing.T) {
	assert.Equal(t, "none", SkipNone.String())
	assert.Equal(t, "skip_first", SkipFirst.String())
	assert.Equal(t, "skip_until_seen", SkipUntilSeen.String())
	assert.Equal(t, "unknown", SkipMode(99).String())
}
