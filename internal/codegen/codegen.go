// Package codegen implements the IR generator: a second AST visitor that
// emits IR into the module behind a compiler.Context's Builder. Per spec
// §9's own critique of the value-stack design, each node-handling function
// here returns its result directly (ir.Value, error) instead of pushing
// onto a shared stack — the "drain all but last" discipline becomes a
// plain loop over body statements.
package codegen

import (
	"fmt"

	"github.com/vasyharan/dravid/internal/ast"
	"github.com/vasyharan/dravid/internal/compiler"
	"github.com/vasyharan/dravid/internal/ir"
)

// Generate lowers every top-level Function in ctx.Nodes() into ctx's IR
// module. It does not stop at the first lowering failure: each function is
// attempted independently so the driver can report every error in one
// pass, matching the "best-effort IR module" policy in spec §7.
func Generate(ctx *compiler.Context) {
	g := &generator{ctx: ctx}
	for _, node := range ctx.Nodes() {
		fn, ok := node.(*ast.Function)
		if !ok {
			continue
		}
		g.genFunction(fn)
	}
}

type generator struct {
	ctx *compiler.Context
}

func (g *generator) builder() ir.Builder { return g.ctx.Builder() }

// genExpr dispatches on the closed AST family via a type switch — the
// single-dispatch style spec §9 recommends in place of accept/visit
// double dispatch.
func (g *generator) genExpr(e ast.Expression) (ir.Value, error) {
	switch n := e.(type) {
	case *ast.Integer:
		return g.genInteger(n)
	case *ast.Identifier:
		return g.genIdentifier(n)
	case *ast.BinaryExpression:
		return g.genBinary(n)
	case *ast.Call:
		return g.genCall(n)
	case *ast.Prototype:
		return g.genPrototype(n)
	case *ast.Function:
		return g.genFunction(n)
	case *ast.If:
		return g.genIf(n)
	case *ast.Value:
		return g.genValue(n)
	case *ast.Parameter:
		// Parameters are bound by genFunction before the body is
		// visited; visiting one directly (it never appears in a body)
		// has no IR effect.
		return nil, nil
	case *ast.Assignment:
		g.ctx.ReportError(compiler.Unknown("NOT IMPLEMENTED: assignment", ""))
		return nil, nil
	case *ast.TupleAssignment:
		g.ctx.ReportError(compiler.Unknown("NOT IMPLEMENTED: tuple assignment", ""))
		return nil, nil
	default:
		return nil, fmt.Errorf("codegen: unhandled node %T", e)
	}
}

func (g *generator) genInteger(n *ast.Integer) (ir.Value, error) {
	return g.builder().ConstantInt(n.Value), nil
}

func (g *generator) genIdentifier(n *ast.Identifier) (ir.Value, error) {
	scope := g.ctx.TopScope()
	if scope != nil {
		if v, ok := scope.Lookup(n.Name); ok {
			return v, nil
		}
	}
	g.ctx.ReportError(compiler.Unknown("Unknown variable name "+n.Name, ""))
	return nil, nil
}

func (g *generator) genBinary(n *ast.BinaryExpression) (ir.Value, error) {
	left, err := g.genExpr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := g.genExpr(n.Right)
	if err != nil {
		return nil, err
	}
	if left == nil || right == nil {
		return nil, nil
	}

	b := g.builder()
	switch n.Op {
	case '+':
		return b.Add(left, right, "addtmp"), nil
	case '-':
		return b.Sub(left, right, "subtmp"), nil
	case '*':
		return b.Mul(left, right, "multmp"), nil
	case '/':
		return b.SDiv(left, right, "divtmp"), nil
	default:
		return nil, fmt.Errorf("codegen: invalid binary operator %q", n.Op)
	}
}

func (g *generator) genCall(n *ast.Call) (ir.Value, error) {
	b := g.builder()

	callee, ok := b.LookupFunction(n.Name)
	if !ok {
		g.ctx.ReportError(compiler.Unknown("Unknown function referenced: "+n.Name, ""))
		return nil, nil
	}

	if b.ParamCount(callee) != len(n.Args) {
		g.ctx.ReportError(compiler.Unknown(
			fmt.Sprintf("Incorrect number of arguments passed to %s: expected %d, got %d",
				n.Name, b.ParamCount(callee), len(n.Args)), ""))
		return nil, nil
	}

	args := make([]ir.Value, 0, len(n.Args))
	for _, argExpr := range n.Args {
		argVal, err := g.genExpr(argExpr)
		if err != nil {
			return nil, err
		}
		if argVal == nil {
			return nil, nil
		}
		args = append(args, argVal)
	}

	return b.Call(callee, args, "calltmp"), nil
}

func (g *generator) genPrototype(n *ast.Prototype) (ir.Value, error) {
	b := g.builder()
	paramNames := make([]string, len(n.Params))
	for i, p := range n.Params {
		paramNames[i] = p.Name
	}

	fn, err := b.DeclareFunction(n.Name, paramNames)
	if err != nil {
		g.ctx.ReportError(compiler.Unknown(err.Error(), ""))
		return nil, nil
	}
	return fn.(ir.Value), nil
}

func (g *generator) genFunction(n *ast.Function) (ir.Value, error) {
	b := g.builder()

	fnVal, ok := b.LookupFunction(n.Prototype.Name)
	var fn ir.Function
	if !ok {
		protoVal, err := g.genPrototype(n.Prototype)
		if err != nil {
			return nil, err
		}
		if protoVal == nil {
			return nil, nil
		}
		fn = protoVal.(ir.Function)
	} else {
		fn = fnVal.(ir.Function)
	}

	if b.IsDefined(fn) {
		g.ctx.ReportError(compiler.Unknown("Redefinition of function "+n.Prototype.Name, ""))
		return nil, nil
	}

	b.CreateEntryBlock(fn)

	scope := g.ctx.PushScope()
	defer g.ctx.PopScope()

	for i, param := range n.Prototype.Params {
		scope.Bind(param.Name, b.Param(fn, i))
	}

	var last ir.Value
	for _, stmt := range n.Body {
		v, err := g.genExpr(stmt)
		if err != nil {
			b.EraseFunction(fn)
			return nil, err
		}
		if v == nil {
			b.EraseFunction(fn)
			return nil, nil
		}
		last = v
	}

	b.Ret(last)

	if err := b.VerifyFunction(fn); err != nil {
		g.ctx.ReportError(compiler.Unknown(err.Error(), ""))
	}
	b.RunLocalOptimizations(fn)

	return fn.(ir.Value), nil
}

func (g *generator) genIf(n *ast.If) (ir.Value, error) {
	b := g.builder()

	cond, err := g.genExpr(n.Cond)
	if err != nil {
		return nil, err
	}
	if cond == nil {
		return nil, nil
	}

	// Truthiness is equality with the literal 1 (spec §4.5 and the
	// scenario in §8 both specify this verbatim, despite §9 flagging it
	// as unusual — see DESIGN.md).
	one := b.ConstantInt(1)
	test := b.ICmpEQ(cond, one, "ifcond")

	parent := g.currentFunction()
	thenBlock := b.CreateBlock(parent, "then")
	elseBlock := b.CreateBlock(parent, "else")
	mergeBlock := b.CreateBlock(parent, "merge")

	b.CondBr(test, thenBlock, elseBlock)

	b.SetInsertPoint(thenBlock)
	thenVal, err := g.genBody(n.Then)
	if err != nil {
		return nil, err
	}
	if thenVal == nil {
		return nil, nil
	}
	b.Br(mergeBlock)
	thenEnd := b.InsertBlock()

	b.SetInsertPoint(elseBlock)
	elseVal, err := g.genBody(n.Else)
	if err != nil {
		return nil, err
	}
	if elseVal == nil {
		return nil, nil
	}
	b.Br(mergeBlock)
	elseEnd := b.InsertBlock()

	b.SetInsertPoint(mergeBlock)
	phi := b.Phi([]ir.Incoming{
		{Value: thenVal, Block: thenEnd},
		{Value: elseVal, Block: elseEnd},
	}, "iftmp")

	return phi, nil
}

// genBody visits a statement sequence and returns the last value produced,
// or nil if any statement failed to lower (or the sequence is empty — an
// empty arm has no value to offer the enclosing φ, a known crash case
// flagged in spec §9).
func (g *generator) genBody(body []ast.Expression) (ir.Value, error) {
	var last ir.Value
	for _, stmt := range body {
		v, err := g.genExpr(stmt)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		last = v
	}
	return last, nil
}

func (g *generator) genValue(n *ast.Value) (ir.Value, error) {
	v, err := g.genExpr(n.Initializer)
	if err != nil || v == nil {
		return v, err
	}

	if n.Constant {
		if scope := g.ctx.TopScope(); scope != nil {
			scope.Bind(n.Name, v)
		}
	}
	return v, nil
}

// currentFunction recovers the function being generated from the
// builder's current insert point, the way the teacher's codegen.go reads
// cg.Builder.GetInsertBlock().Parent() inside IfExprAST.CodeGen. The
// generator only ever has one function open at a time (the grammar has no
// nested functions), so this is unambiguous.
func (g *generator) currentFunction() ir.Function {
	return g.builder().CurrentFunction()
}
