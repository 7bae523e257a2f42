package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasyharan/dravid/internal/cfg"
	"github.com/vasyharan/dravid/internal/ir"
)

func testGlobal() *GlobalContext {
	return &GlobalContext{NewBuilder: func(string) ir.Builder { return nil }}
}

func TestContextGoodStartsTrue(t *testing.T) {
	ctx := NewContext(testGlobal(), "unit")
	assert.True(t, ctx.Good())

	ctx.ReportError(Unknown("boom", ""))
	assert.False(t, ctx.Good())
	require.Len(t, ctx.Errors(), 1)
}

func TestContextNodesAndBlocksAccumulate(t *testing.T) {
	ctx := NewContext(testGlobal(), "unit")
	assert.Empty(t, ctx.Nodes())

	ctx.PushBlock(&cfg.BasicBlock{})
	ctx.PushBlock(&cfg.BasicBlock{})
	assert.Len(t, ctx.Blocks(), 2)
}

func TestScopeStackPushPopTop(t *testing.T) {
	var s scopeStack
	assert.Nil(t, s.Top())

	outer := s.Push()
	outer.Bind("x", 1)

	inner := s.Push()
	assert.NotSame(t, outer, inner)
	_, ok := inner.Lookup("x")
	assert.False(t, ok, "inner scope does not inherit outer bindings")

	s.Pop()
	assert.Same(t, outer, s.Top())
	v, ok := s.Top().Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestErrorStringFormat(t *testing.T) {
	err := Unknown("Unknown variable name x", "")
	assert.Equal(t, "INVALID: Unknown variable name x\n", err.String())
}
