package codegen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasyharan/dravid/internal/ast"
	"github.com/vasyharan/dravid/internal/compiler"
	"github.com/vasyharan/dravid/internal/ir"
)

// fakeValue/fakeFunction/fakeBlock back a fake Builder that evaluates
// expressions over plain int64s instead of driving a real IR library — the
// Builder interface exists precisely so the generator can be exercised
// without a concrete backend.
type fakeValue struct{ v int64 }

type fakeFunction struct {
	name   string
	params []string
	args   []int64
	ret    *int64
	erased bool
}

type fakeBlock struct{ name string }

type fakeBuilder struct {
	fns     map[string]*fakeFunction
	current *fakeFunction
}

func newFakeBuilder() *fakeBuilder {
	return &fakeBuilder{fns: make(map[string]*fakeFunction)}
}

func (b *fakeBuilder) ConstantInt(v int64) ir.Value { return fakeValue{v} }

func (b *fakeBuilder) Add(lhs, rhs ir.Value, name string) ir.Value {
	return fakeValue{lhs.(fakeValue).v + rhs.(fakeValue).v}
}
func (b *fakeBuilder) Sub(lhs, rhs ir.Value, name string) ir.Value {
	return fakeValue{lhs.(fakeValue).v - rhs.(fakeValue).v}
}
func (b *fakeBuilder) Mul(lhs, rhs ir.Value, name string) ir.Value {
	return fakeValue{lhs.(fakeValue).v * rhs.(fakeValue).v}
}
func (b *fakeBuilder) SDiv(lhs, rhs ir.Value, name string) ir.Value {
	return fakeValue{lhs.(fakeValue).v / rhs.(fakeValue).v}
}
func (b *fakeBuilder) ICmpEQ(lhs, rhs ir.Value, name string) ir.Value {
	eq := int64(0)
	if lhs.(fakeValue).v == rhs.(fakeValue).v {
		eq = 1
	}
	return fakeValue{eq}
}

func (b *fakeBuilder) DeclareFunction(name string, paramNames []string) (ir.Function, error) {
	if fn, ok := b.fns[name]; ok {
		if len(fn.params) != len(paramNames) {
			return nil, fmt.Errorf("redefinition of function %q with different number of args", name)
		}
		return fn, nil
	}
	fn := &fakeFunction{name: name, params: paramNames}
	b.fns[name] = fn
	return fn, nil
}

func (b *fakeBuilder) LookupFunction(name string) (ir.Function, bool) {
	fn, ok := b.fns[name]
	return fn, ok
}

func (b *fakeBuilder) ParamCount(fn ir.Function) int { return len(fn.(*fakeFunction).params) }

func (b *fakeBuilder) Param(fn ir.Function, i int) ir.Value {
	f := fn.(*fakeFunction)
	if i < len(f.args) {
		return fakeValue{f.args[i]}
	}
	return fakeValue{0}
}

func (b *fakeBuilder) IsDefined(fn ir.Function) bool { return fn.(*fakeFunction).ret != nil }

func (b *fakeBuilder) CreateEntryBlock(fn ir.Function) ir.Block {
	b.current = fn.(*fakeFunction)
	return fakeBlock{"entry"}
}

func (b *fakeBuilder) CreateBlock(fn ir.Function, name string) ir.Block { return fakeBlock{name} }

func (b *fakeBuilder) SetInsertPoint(blk ir.Block) {}

func (b *fakeBuilder) InsertBlock() ir.Block { return fakeBlock{"current"} }

func (b *fakeBuilder) CurrentFunction() ir.Function { return b.current }

func (b *fakeBuilder) CondBr(cond ir.Value, then, els ir.Block) {}

func (b *fakeBuilder) Br(target ir.Block) {}

func (b *fakeBuilder) Call(fn ir.Function, args []ir.Value, name string) ir.Value {
	f := fn.(*fakeFunction)
	if f.ret != nil {
		return fakeValue{*f.ret}
	}
	return fakeValue{0}
}

func (b *fakeBuilder) Ret(v ir.Value) {
	ret := v.(fakeValue).v
	b.current.ret = &ret
}

func (b *fakeBuilder) Phi(incoming []ir.Incoming, name string) ir.Value {
	// The fake backend has no branch semantics, so a φ simply takes its
	// last incoming value — enough to exercise the generator's shape.
	return incoming[len(incoming)-1].Value
}

func (b *fakeBuilder) VerifyFunction(fn ir.Function) error { return nil }

func (b *fakeBuilder) RunLocalOptimizations(fn ir.Function) {}

func (b *fakeBuilder) EraseFunction(fn ir.Function) {
	fn.(*fakeFunction).erased = true
	delete(b.fns, fn.(*fakeFunction).name)
}

func (b *fakeBuilder) EmitTextual() ([]byte, error) { return []byte("fake-module"), nil }

func newTestContext(t *testing.T) *compiler.Context {
	t.Helper()
	global := &compiler.GlobalContext{
		NewBuilder: func(string) ir.Builder { return newFakeBuilder() },
	}
	return compiler.NewContext(global, "test")
}

func TestGenerateSimpleFunction(t *testing.T) {
	ctx := newTestContext(t)
	fn := &ast.Function{
		Prototype: &ast.Prototype{Name: "square", Params: []*ast.Parameter{{Constant: true, Name: "x"}}},
		Body: []ast.Expression{
			&ast.BinaryExpression{Op: '*', Left: &ast.Identifier{Name: "x"}, Right: &ast.Identifier{Name: "x"}},
		},
	}
	ctx.PushNode(fn)

	Generate(ctx)

	require.True(t, ctx.Good())
	fb := ctx.Builder().(*fakeBuilder)
	squared, ok := fb.LookupFunction("square")
	require.True(t, ok)
	assert.NotNil(t, squared.(*fakeFunction).ret)
}

func TestGenerateReportsUnknownIdentifier(t *testing.T) {
	ctx := newTestContext(t)
	fn := &ast.Function{
		Prototype: &ast.Prototype{Name: "broken"},
		Body:      []ast.Expression{&ast.Identifier{Name: "nope"}},
	}
	ctx.PushNode(fn)

	Generate(ctx)

	require.False(t, ctx.Good())
	assert.Contains(t, ctx.Errors()[0].Message, "Unknown variable name nope")
}

func TestGenerateReportsUnknownFunction(t *testing.T) {
	ctx := newTestContext(t)
	fn := &ast.Function{
		Prototype: &ast.Prototype{Name: "caller"},
		Body:      []ast.Expression{&ast.Call{Name: "missing"}},
	}
	ctx.PushNode(fn)

	Generate(ctx)

	require.False(t, ctx.Good())
	assert.Contains(t, ctx.Errors()[0].Message, "Unknown function referenced: missing")
}

func TestGenerateReportsArityMismatch(t *testing.T) {
	ctx := newTestContext(t)
	callee := &ast.Function{
		Prototype: &ast.Prototype{Name: "one", Params: []*ast.Parameter{{Constant: true, Name: "a"}}},
		Body:      []ast.Expression{&ast.Identifier{Name: "a"}},
	}
	caller := &ast.Function{
		Prototype: &ast.Prototype{Name: "main"},
		Body:      []ast.Expression{&ast.Call{Name: "one", Args: []ast.Expression{&ast.Integer{Value: 1}, &ast.Integer{Value: 2}}}},
	}
	ctx.PushNode(callee)
	ctx.PushNode(caller)

	Generate(ctx)

	require.False(t, ctx.Good())
	found := false
	for _, e := range ctx.Errors() {
		if e.Message == "Incorrect number of arguments passed to one: expected 1, got 2" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGenerateReportsRedefinition(t *testing.T) {
	ctx := newTestContext(t)
	fn1 := &ast.Function{
		Prototype: &ast.Prototype{Name: "dup"},
		Body:      []ast.Expression{&ast.Integer{Value: 1}},
	}
	fn2 := &ast.Function{
		Prototype: &ast.Prototype{Name: "dup"},
		Body:      []ast.Expression{&ast.Integer{Value: 2}},
	}
	ctx.PushNode(fn1)
	ctx.PushNode(fn2)

	Generate(ctx)

	require.False(t, ctx.Good())
	assert.Contains(t, ctx.Errors()[0].Message, "Redefinition of function dup")
}

func TestGenerateIfProducesPhi(t *testing.T) {
	ctx := newTestContext(t)
	fn := &ast.Function{
		Prototype: &ast.Prototype{Name: "pick", Params: []*ast.Parameter{{Constant: true, Name: "c"}}},
		Body: []ast.Expression{
			&ast.If{
				Cond: &ast.Identifier{Name: "c"},
				Then: []ast.Expression{&ast.Integer{Value: 1}},
				Else: []ast.Expression{&ast.Integer{Value: 0}},
			},
		},
	}
	ctx.PushNode(fn)

	Generate(ctx)

	require.True(t, ctx.Good())
}
