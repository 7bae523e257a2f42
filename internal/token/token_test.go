package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenString(t *testing.T) {
	cases := []struct {
		name string
		tok  Token
		want string
	}{
		{"eof", MakeEOF(Location{Line: 3, Col: 0}), "(eof 3:0)"},
		{"identifier", MakeIdentifier("foo", Location{Line: 1, Col: 4}), "(id foo 1:4)"},
		{"integer", MakeInteger(42, Location{Line: 2, Col: 1}), "(int 42 2:1)"},
		{"keyword", MakeKeyword(Fn, Location{Line: 1, Col: 0}), "(keyword fn 1:0)"},
		{"operator", MakeOperator(Plus, Location{Line: 5, Col: 2}), "(op + 5:2)"},
		{"invalid", MakeInvalid(Location{Line: 1, Col: 1}), "(invalid 1:1)"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tok.String())
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	kw, ok := LookupKeyword("fn")
	assert.True(t, ok)
	assert.Equal(t, Fn, kw)

	_, ok = LookupKeyword("notakeyword")
	assert.False(t, ok)
}

func TestTokenPredicates(t *testing.T) {
	tok := MakeKeyword(If, Location{})
	assert.True(t, tok.IsKeyword())
	assert.True(t, tok.IsKeywordOf(If))
	assert.False(t, tok.IsKeywordOf(Else))
	assert.False(t, tok.IsIdentifier())
}
