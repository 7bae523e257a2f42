// Package ast defines the abstract syntax tree produced by the parser: a
// closed family of immutable expression nodes. Consumers (the CFG builder,
// the IR generator, the pretty printer) dispatch on node kind with a type
// switch rather than a visitor's accept/visit double dispatch — the AST is
// a closed sum type, so there is nothing a virtual dispatch buys here.
package ast

import "github.com/vasyharan/dravid/internal/token"

// Expression is the sealed interface implemented by every AST node. The
// unexported method prevents other packages from adding variants, keeping
// the family closed the way spec requires.
type Expression interface {
	exprNode()
	// Loc reports the source location the node was parsed from, for
	// diagnostics that need to point back at source text.
	Loc() token.Location
}

// Integer is a constant 64-bit signed integer literal.
type Integer struct {
	Value    int64
	Location token.Location
}

func (*Integer) exprNode()            {}
func (n *Integer) Loc() token.Location { return n.Location }

// Identifier is a reference to a bound name.
type Identifier struct {
	Name     string
	Location token.Location
}

func (*Identifier) exprNode()            {}
func (n *Identifier) Loc() token.Location { return n.Location }

// BinaryExpression applies a single arithmetic operator to two operands.
// Op is one of '+', '-', '*', '/'.
type BinaryExpression struct {
	Op       byte
	Left     Expression
	Right    Expression
	Location token.Location
}

func (*BinaryExpression) exprNode()            {}
func (n *BinaryExpression) Loc() token.Location { return n.Location }

// Call invokes a named function with a sequence of argument expressions.
type Call struct {
	Name     string
	Args     []Expression
	Location token.Location
}

func (*Call) exprNode()            {}
func (n *Call) Loc() token.Location { return n.Location }

// Parameter is a function formal. Constant is always true for parameters
// produced by the current grammar (mutable `var` parameters are not
// parsed), but the field is carried so a future grammar extension does not
// require a new node type.
type Parameter struct {
	Constant bool
	Name     string
	Location token.Location
}

func (*Parameter) exprNode()            {}
func (n *Parameter) Loc() token.Location { return n.Location }

// Prototype names a function and its formal parameters. The parser does not
// check that parameter names are distinct: a repeated name yields one
// Parameter per occurrence.
type Prototype struct {
	Name     string
	Params   []*Parameter
	Location token.Location
}

func (*Prototype) exprNode()            {}
func (n *Prototype) Loc() token.Location { return n.Location }

// Function is a top-level function definition. Body is non-empty; its
// final expression is the function's return value.
type Function struct {
	Prototype *Prototype
	Body      []Expression
	Location  token.Location
}

func (*Function) exprNode()            {}
func (n *Function) Loc() token.Location { return n.Location }

// If is a conditional expression. Then/Else are block bodies; Else is
// empty for a plain `if` with no `else`/`elif`. An `elif` chain is
// represented as a nested If as the sole element of Else.
type If struct {
	Cond     Expression
	Then     []Expression
	Else     []Expression
	Location token.Location
}

func (*If) exprNode()            {}
func (n *If) Loc() token.Location { return n.Location }

// Value is a local binding introduced by `val` (or, in a future grammar
// extension, `var`). Constant is true for every Value the current parser
// produces, since `decl` only accepts the `val` keyword.
type Value struct {
	Constant    bool
	Name        string
	Initializer Expression
	Location    token.Location
}

func (*Value) exprNode()            {}
func (n *Value) Loc() token.Location { return n.Location }

// Assignment stores Right into the binding named by Left. No parser
// production constructs it, and the IR generator reports it as not
// implemented instead of lowering it.
type Assignment struct {
	Left     Expression
	Right    Expression
	Location token.Location
}

func (*Assignment) exprNode()            {}
func (n *Assignment) Loc() token.Location { return n.Location }

// TupleAssignment declares multiple names with a matching count of
// initializers. Parsed but never lowered by the IR generator.
type TupleAssignment struct {
	Left     []Expression
	Right    []Expression
	Location token.Location
}

func (*TupleAssignment) exprNode()            {}
func (n *TupleAssignment) Loc() token.Location { return n.Location }
