// Package compiler aggregates the mutable state threaded through the
// pipeline: accumulated errors, AST roots, the CFG's basic block list, the
// scoped symbol table, and the IR builder the generator emits into. It is
// owned by the driver and passed by reference into each stage.
package compiler

import (
	"github.com/vasyharan/dravid/internal/ast"
	"github.com/vasyharan/dravid/internal/cfg"
	"github.com/vasyharan/dravid/internal/ir"
)

// GlobalContext is process-wide state shared across every per-file
// Context — currently just the IR builder's backing module family. Spec
// §9 warns against a singleton for the IR library's global state; threading
// it through GlobalContext is how this implementation avoids one.
type GlobalContext struct {
	NewBuilder func(moduleName string) ir.Builder
}

// NewGlobalContext creates a GlobalContext backed by the LLVM builder.
func NewGlobalContext() *GlobalContext {
	return &GlobalContext{NewBuilder: ir.NewLLVMBuilder}
}

// Context aggregates per-compilation-unit state: the source name, the
// accumulated errors, the parsed top-level nodes, the CFG's block list,
// the scope stack, and the IR builder.
type Context struct {
	global *GlobalContext
	name   string

	errors []*Error
	nodes  []ast.Expression
	blocks []*cfg.BasicBlock

	scopes  scopeStack
	builder ir.Builder
}

// NewContext creates a Context for compiling a single named source unit
// against global, with a fresh IR module named after it.
func NewContext(global *GlobalContext, name string) *Context {
	return &Context{
		global:  global,
		name:    name,
		builder: global.NewBuilder(name),
	}
}

// Name returns the source unit's name (used as the IR module name and in
// diagnostics).
func (c *Context) Name() string { return c.name }

// ReportError appends err to the accumulated error list.
func (c *Context) ReportError(err *Error) { c.errors = append(c.errors, err) }

// Errors returns every error accumulated so far, in emission order.
func (c *Context) Errors() []*Error { return c.errors }

// Good reports whether no error has been recorded yet. Later stages may
// still run when Good is false (for diagnostic purposes) but their output
// must not be trusted.
func (c *Context) Good() bool { return len(c.errors) == 0 }

// PushNode records a parsed top-level declaration.
func (c *Context) PushNode(node ast.Expression) { c.nodes = append(c.nodes, node) }

// Nodes returns every top-level node parsed so far, in declaration order.
func (c *Context) Nodes() []ast.Expression { return c.nodes }

// PushBlock implements cfg.Sink, recording a finished basic block.
func (c *Context) PushBlock(b *cfg.BasicBlock) { c.blocks = append(c.blocks, b) }

// Blocks returns every basic block built so far, in visit order.
func (c *Context) Blocks() []*cfg.BasicBlock { return c.blocks }

// PushScope opens a new symbol-table frame and returns it.
func (c *Context) PushScope() *Scope { return c.scopes.Push() }

// PopScope closes the topmost symbol-table frame.
func (c *Context) PopScope() { c.scopes.Pop() }

// TopScope returns the current lookup target.
func (c *Context) TopScope() *Scope { return c.scopes.Top() }

// Builder returns the IR builder the generator emits into.
func (c *Context) Builder() ir.Builder { return c.builder }
