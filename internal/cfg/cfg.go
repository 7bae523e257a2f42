// Package cfg partitions a function's AST body into basic blocks at
// control-flow boundaries (function entry, if arms) and wires the
// successor edges between them.
//
// The original distillation of this pass emitted blocks but never wired
// successor edges (spec.md §9, "Open questions / known gaps"). This
// implementation resolves that: each BasicBlock records its Successors
// explicitly as the builder cuts new blocks, instead of leaving the block
// list as an unconnected sequence for a future pass to interpret.
package cfg

import "github.com/vasyharan/dravid/internal/ast"

// BasicBlock is a maximal straight-line sequence of AST expressions with
// explicit successor edges.
type BasicBlock struct {
	Exprs      []ast.Expression
	Successors []*BasicBlock
}

func newBlock() *BasicBlock { return &BasicBlock{} }

func (b *BasicBlock) empty() bool { return len(b.Exprs) == 0 }

func (b *BasicBlock) emplace(e ast.Expression) { b.Exprs = append(b.Exprs, e) }

// Sink receives the finished blocks produced by Build, in visit order. The
// compilation context implements Sink so the CFG builder need not import
// it (which would create an import cycle: compiler -> cfg -> compiler).
type Sink interface {
	PushBlock(*BasicBlock)
}

// builder visits a function body once, partitioning it into blocks.
type builder struct {
	sink  Sink
	block *BasicBlock
}

// Build partitions every top-level Function in roots into basic blocks and
// reports each finished block to sink, in visit order.
func Build(roots []ast.Expression, sink Sink) {
	b := &builder{}
	b.sink = sink
	for _, root := range roots {
		if fn, ok := root.(*ast.Function); ok {
			b.visitFunction(fn)
		}
	}
}

// openBlock starts a fresh current block, discarding any reference to the
// previous one (the caller is responsible for having closed it first).
func (b *builder) openBlock() *BasicBlock {
	bb := newBlock()
	b.block = bb
	return bb
}

// closeBlock pushes the current block to the sink, unless it is empty —
// empty blocks are collapsed rather than pushed, per spec.
func (b *builder) closeBlock() {
	if b.block != nil && !b.block.empty() {
		b.sink.PushBlock(b.block)
	}
}

func (b *builder) visitFunction(fn *ast.Function) {
	b.openBlock()
	for _, expr := range fn.Body {
		b.visit(expr)
	}
	b.closeBlock() // function-exit fence
}

func (b *builder) visitIf(n *ast.If) {
	b.visit(n.Cond)
	entry := b.block
	b.closeBlock()

	thenBlock := b.openBlock()
	entry.Successors = append(entry.Successors, thenBlock)
	for _, expr := range n.Then {
		b.visit(expr)
	}
	thenExit := b.block
	b.closeBlock()

	elseBlock := b.openBlock()
	entry.Successors = append(entry.Successors, elseBlock)
	for _, expr := range n.Else {
		b.visit(expr)
	}
	elseExit := b.block
	b.closeBlock()

	mergeBlock := b.openBlock()
	thenExit.Successors = append(thenExit.Successors, mergeBlock)
	elseExit.Successors = append(elseExit.Successors, mergeBlock)
}

// visit appends linear expressions to the current block and recurses into
// the one construct that introduces control-flow boundaries within a body
// (If; Function is only ever a top-level root, handled by Build).
func (b *builder) visit(e ast.Expression) {
	switch n := e.(type) {
	case *ast.If:
		b.visitIf(n)
	default:
		b.block.emplace(e)
	}
}
