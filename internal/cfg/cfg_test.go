package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasyharan/dravid/internal/ast"
)

type fakeSink struct {
	blocks []*BasicBlock
}

func (s *fakeSink) PushBlock(b *BasicBlock) { s.blocks = append(s.blocks, b) }

func TestBuildStraightLineFunction(t *testing.T) {
	fn := &ast.Function{
		Prototype: &ast.Prototype{Name: "square", Params: []*ast.Parameter{{Name: "x"}}},
		Body: []ast.Expression{
			&ast.BinaryExpression{Op: '*', Left: &ast.Identifier{Name: "x"}, Right: &ast.Identifier{Name: "x"}},
		},
	}

	sink := &fakeSink{}
	Build([]ast.Expression{fn}, sink)

	require.Len(t, sink.blocks, 1)
	assert.Len(t, sink.blocks[0].Exprs, 1)
	assert.Empty(t, sink.blocks[0].Successors)
}

// An If opens four blocks (entry, then, else, merge) with exactly the edges
// entry->then, entry->else, then->merge, else->merge. Nothing follows the If
// here, so the merge block stays empty and is not pushed: the sink sees
// three blocks.
func TestBuildIfWiresSuccessors(t *testing.T) {
	fn := &ast.Function{
		Prototype: &ast.Prototype{Name: "pick"},
		Body: []ast.Expression{
			&ast.If{
				Cond: &ast.Integer{Value: 1},
				Then: []ast.Expression{&ast.Integer{Value: 1}},
				Else: []ast.Expression{&ast.Integer{Value: 0}},
			},
		},
	}

	sink := &fakeSink{}
	Build([]ast.Expression{fn}, sink)

	require.Len(t, sink.blocks, 3)
	entry, thenBlock, elseBlock := sink.blocks[0], sink.blocks[1], sink.blocks[2]

	require.Len(t, entry.Successors, 2)
	assert.Same(t, thenBlock, entry.Successors[0])
	assert.Same(t, elseBlock, entry.Successors[1])

	require.Len(t, thenBlock.Successors, 1)
	require.Len(t, elseBlock.Successors, 1)
	assert.Same(t, thenBlock.Successors[0], elseBlock.Successors[0])
}

func TestBuildIgnoresNonFunctionRoots(t *testing.T) {
	sink := &fakeSink{}
	Build([]ast.Expression{&ast.Integer{Value: 1}}, sink)
	assert.Empty(t, sink.blocks)
}
