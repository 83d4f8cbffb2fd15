package msg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/lore/object"
)

func TestTemplateStringKnownIDs(t *testing.T) {
	for _, id := range TemplateIDs() {
		tmpl, err := TemplateString(id)
		require.NoError(t, err, "id %s", id)
		require.NotEmpty(t, tmpl)
	}
}

func TestTemplateStringUnknownID(t *testing.T) {
	_, err := TemplateString(TemplateID(9999))
	require.Error(t, err)
	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, TemplateID(9999), confErr.ID)
	assert.True(t, confErr.IsFatal())
}

func TestFormatNeverFailsForValidIDs(t *testing.T) {
	for _, id := range TemplateIDs() {
		_, err := Format(id, "a", "b", "c")
		require.NoError(t, err, "id %s", id)
	}
}

func TestFormatSubstitutesInOrder(t *testing.T) {
	// Three placeholders, three distinct markers, each appearing once in
	// declared order.
	out, err := Format(IndexOutOfRange, "AAA", "BBB", "CCC")
	require.NoError(t, err)
	assert.Equal(t, "index AAA is out of range for BBB of length CCC", out)
	assert.Equal(t, 1, strings.Count(out, "AAA"))
	assert.Equal(t, 1, strings.Count(out, "BBB"))
	assert.Equal(t, 1, strings.Count(out, "CCC"))
	assert.True(t, strings.Index(out, "AAA") < strings.Index(out, "BBB"))
	assert.True(t, strings.Index(out, "BBB") < strings.Index(out, "CCC"))
}

func TestFormatPercentLiteral(t *testing.T) {
	out, err := Format(PrecisionOutOfRange, "150")
	require.NoError(t, err)
	assert.Equal(t, "precision 150 must be between 0% and 100%", out)
}

func TestFormatMissingArgumentsRenderEmpty(t *testing.T) {
	out, err := Format(NotDefined)
	require.NoError(t, err)
	assert.Equal(t, " is not defined", out)
}

func TestFormatTooManyArguments(t *testing.T) {
	_, err := Format(NotDefined, "a", "b", "c", "d")
	require.Error(t, err)
}

func TestFormatZeroPlaceholderTemplate(t *testing.T) {
	out, err := Format(DivisionByZero)
	require.NoError(t, err)
	assert.Equal(t, "division by zero", out)
}

func TestFormatValueTextualArgument(t *testing.T) {
	out, err := FormatValue(NotDefined, object.NewString("someVar"), nil)
	require.NoError(t, err)
	assert.Equal(t, "someVar is not defined", out)
}

func TestFormatValueRestrictedConversion(t *testing.T) {
	out, err := FormatValue(NotDefined, object.NewInt(42), nil)
	require.NoError(t, err)
	assert.Equal(t, "42 is not defined", out)
}

func TestFormatValueConversionFailure(t *testing.T) {
	failing := object.TextConverter(func(obj object.Object) (*object.String, error) {
		return nil, object.ErrNotConvertible
	})
	out, err := FormatValue(NotDefined, object.NewInt(42), failing)
	require.NoError(t, err)
	assert.Equal(t, "<error> is not defined", out)
}

func TestFormatValueNilArgument(t *testing.T) {
	out, err := FormatValue(NotDefined, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, " is not defined", out)
}

func TestFormatValueUnknownID(t *testing.T) {
	_, err := FormatValue(TemplateID(12345), object.NewString("x"), nil)
	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
}

func TestTemplateIDString(t *testing.T) {
	assert.Equal(t, "NotDefined", NotDefined.String())
	assert.Equal(t, "TemplateID(9999)", TemplateID(9999).String())
}

func TestLookupName(t *testing.T) {
	id, ok := LookupName("DivisionByZero")
	require.True(t, ok)
	assert.Equal(t, DivisionByZero, id)
	_, ok = LookupName("Nope")
	assert.False(t, ok)
}
