package ast

import (
	"fmt"
	"strings"
)

// Print renders an Expression in the canonical S-expression form the
// snapshot collaborator expects (spec §6). A Function keeps its prototype on
// the header's line and puts its body list on an indented line below; a
// binary expression puts each operand on its own indented line; every other
// node prints on a single line.
func Print(e Expression) string {
	var sb strings.Builder
	print(&sb, e, 0)
	return sb.String()
}

func indent(sb *strings.Builder, n int) {
	sb.WriteString(strings.Repeat(" ", n))
}

func print(sb *strings.Builder, e Expression, col int) {
	switch n := e.(type) {
	case *Integer:
		fmt.Fprintf(sb, "(int %d)", n.Value)
	case *Identifier:
		fmt.Fprintf(sb, "(id %s)", n.Name)
	case *BinaryExpression:
		sb.WriteByte('(')
		sb.WriteByte(n.Op)
		sb.WriteByte('\n')
		indent(sb, col+1)
		print(sb, n.Left, col+1)
		sb.WriteByte('\n')
		indent(sb, col+1)
		print(sb, n.Right, col+1)
		sb.WriteByte(')')
	case *Call:
		fmt.Fprintf(sb, "(call %s", n.Name)
		for _, arg := range n.Args {
			sb.WriteByte(' ')
			print(sb, arg, col)
		}
		sb.WriteByte(')')
	case *Parameter:
		kw := "var"
		if n.Constant {
			kw = "val"
		}
		fmt.Fprintf(sb, "(param %s %s)", kw, n.Name)
	case *Prototype:
		// Prototype's own parameter list is bare names — (proto NAME
		// (PARAM1 PARAM2 ...)) — not a Parameter's (param val|var NAME)
		// form, which only applies when a Parameter is printed on its own.
		fmt.Fprintf(sb, "(proto %s (", n.Name)
		for i, p := range n.Params {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.Name)
		}
		sb.WriteString("))")
	case *Function:
		sb.WriteString("(fn ")
		print(sb, n.Prototype, col+4)
		sb.WriteString("\n")
		indent(sb, col+4)
		sb.WriteByte('(')
		for i, b := range n.Body {
			if i > 0 {
				sb.WriteByte('\n')
				indent(sb, col+5)
			}
			print(sb, b, col+5)
		}
		sb.WriteString("))")
	case *If:
		sb.WriteString("(if ")
		print(sb, n.Cond, col)
		sb.WriteString(" (")
		for i, b := range n.Then {
			if i > 0 {
				sb.WriteByte(' ')
			}
			print(sb, b, col)
		}
		sb.WriteString(") (")
		for i, b := range n.Else {
			if i > 0 {
				sb.WriteByte(' ')
			}
			print(sb, b, col)
		}
		sb.WriteString("))")
	case *Value:
		kw := "var"
		if n.Constant {
			kw = "val"
		}
		fmt.Fprintf(sb, "(%s %s ", kw, n.Name)
		print(sb, n.Initializer, col)
		sb.WriteByte(')')
	case *Assignment:
		sb.WriteString("(asgn ")
		print(sb, n.Left, col)
		sb.WriteByte(' ')
		print(sb, n.Right, col)
		sb.WriteByte(')')
	case *TupleAssignment:
		sb.WriteString("(tasgn (")
		for i, l := range n.Left {
			if i > 0 {
				sb.WriteByte(' ')
			}
			print(sb, l, col)
		}
		sb.WriteString(") (")
		for i, r := range n.Right {
			if i > 0 {
				sb.WriteByte(' ')
			}
			print(sb, r, col)
		}
		sb.WriteString("))")
	default:
		sb.WriteString("(nil)")
	}
}
