package object

import "sort"

// ScriptKind describes how a script's source entered the runtime.
type ScriptKind int

const (
	// ScriptKindNormal is an ordinary script compiled from source.
	ScriptKindNormal ScriptKind = iota
	// ScriptKindEval is a script compiled from a textual eval call.
	ScriptKindEval
	// ScriptKindNative is an internal script backing built-in functions.
	ScriptKindNative
)

// Script holds compilation-unit metadata: the script name, its source text,
// and how it was compiled. Positions within a script are byte offsets into
// the source; the script resolves them to 1-based line and column numbers.
type Script struct {
	name        string
	source      string
	kind        ScriptKind
	lineOffsets []int // byte offset of the start of each line
}

func NewScript(name, source string, kind ScriptKind) *Script {
	offsets := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &Script{name: name, source: source, kind: kind, lineOffsets: offsets}
}

func (s *Script) Name() string {
	return s.name
}

func (s *Script) Source() string {
	return s.source
}

func (s *Script) Kind() ScriptKind {
	return s.kind
}

// LineNumber returns the 1-based line number containing the given source
// offset, or -1 if the offset does not fall within the source.
func (s *Script) LineNumber(offset int) int {
	if offset < 0 || offset > len(s.source) {
		return -1
	}
	return s.lineIndex(offset) + 1
}

// ColumnNumber returns the 1-based column number of the given source offset,
// or -1 if the offset does not fall within the source.
func (s *Script) ColumnNumber(offset int) int {
	if offset < 0 || offset > len(s.source) {
		return -1
	}
	line := s.lineIndex(offset)
	return offset - s.lineOffsets[line] + 1
}

func (s *Script) lineIndex(offset int) int {
	// First line whose start is beyond the offset, minus one.
	i := sort.Search(len(s.lineOffsets), func(i int) bool {
		return s.lineOffsets[i] > offset
	})
	return i - 1
}
