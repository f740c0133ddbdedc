package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseIdentifier_NumericID tests all-digit content parsing as an ID
func TestParseIdentifier_NumericID(t *testing.T) {
	id := ParseIdentifier("123456")

	assert.Equal(t, IdentifierID, id.Kind)
	assert.Equal(t, TransactionID(123456), id.ID)
}

// TestParseIdentifier_TrimsWhitespace tests surrounding whitespace removal
func TestParseIdentifier_TrimsWhitespace(t *testing.T) {
	id := ParseIdentifier("  42\n")

	assert.Equal(t, IdentifierID, id.Kind)
	assert.Equal(t, TransactionID(42), id.ID)
}

// TestParseIdentifier_Email tests email content parsing
func TestParseIdentifier_Email(t *testing.T) {
	id := ParseIdentifier("Jane.Doe@Example.COM")

	assert.Equal(t, IdentifierEmail, id.Kind)
	assert.Equal(t, "jane.doe@example.com", id.Email)
}

// TestParseIdentifier_Blank tests blank content yielding an absent identifier
func TestParseIdentifier_Blank(t *testing.T) {
	assert.True(t, ParseIdentifier("").IsAbsent())
	assert.True(t, ParseIdentifier("   \n\t").IsAbsent())
}

// TestParseIdentifier_Unparseable tests garbage content yielding absent, not error
func TestParseIdentifier_Unparseable(t *testing.T) {
	assert.True(t, ParseIdentifier("not an id").IsAbsent())
	assert.True(t, ParseIdentifier("@nodomain").IsAbsent())
	assert.True(t, ParseIdentifier("two@@ats.com").IsAbsent())
	assert.True(t, ParseIdentifier("trailing@dot.").IsAbsent())
	assert.True(t, ParseIdentifier("-17").IsAbsent())
}

// TestIdentifier_Key tests the normalised cache key
func TestIdentifier_Key(t *testing.T) {
	assert.Equal(t, "987", ParseIdentifier("987").Key())
	assert.Equal(t, "a@b.io", ParseIdentifier("A@B.io").Key())
	assert.Equal(t, "", Identifier{Kind: IdentifierNone}.Key())
}

// TestIdentifier_String tests the log rendering
func TestIdentifier_String(t *testing.T) {
	assert.Equal(t, "id:55", ParseIdentifier("55").String())
	assert.Equal(t, "email:x@y.org", ParseIdentifier("x@y.org").String())
	assert.Equal(t, "(absent)", Identifier{}.String())
}
