// Package driver implements the driver contract from spec §6: construct a
// global IR context, construct a per-file compilation context, run the
// lexer/parser, read back the AST and block lists for rendering, run the
// generator only if the context is still good, then read back the error
// list. It is the thing cmd/dravid and any other embedder calls; it is not
// itself part of the CORE pipeline spec.md describes.
package driver

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vasyharan/dravid/internal/ast"
	"github.com/vasyharan/dravid/internal/cfg"
	"github.com/vasyharan/dravid/internal/codegen"
	"github.com/vasyharan/dravid/internal/compiler"
	"github.com/vasyharan/dravid/internal/lexer"
	"github.com/vasyharan/dravid/internal/parser"
)

// Result collects everything a caller needs to render spec §6's textual
// forms after a single file's compilation.
type Result struct {
	Name   string
	Nodes  []ast.Expression
	Blocks []*cfg.BasicBlock
	Errors []*compiler.Error
	IR     []byte // nil when the context was not good, or serialization failed
}

// Good reports whether the compilation produced no errors.
func (r *Result) Good() bool { return len(r.Errors) == 0 }

// Compile runs the full pipeline over src (named name, for diagnostics and
// as the IR module's name) against the shared global context. It logs
// each stage as it starts and the outcome, grounded on the pack's
// go.uber.org/zap-based structured logging.
func Compile(global *compiler.GlobalContext, name string, src io.Reader, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("unit", name))

	ctx := compiler.NewContext(global, name)
	lex := lexer.New(src)

	log.Debug("parsing")
	parser.Parse(lex, ctx)

	result := &Result{
		Name:   name,
		Nodes:  ctx.Nodes(),
		Errors: ctx.Errors(),
	}

	if !ctx.Good() {
		log.Warn("parse completed with errors", zap.Int("errors", len(ctx.Errors())))
		result.Blocks = ctx.Blocks()
		result.Errors = ctx.Errors()
		return result, nil
	}

	log.Debug("building control-flow graph")
	cfg.Build(ctx.Nodes(), ctx)
	result.Blocks = ctx.Blocks()

	log.Debug("generating IR")
	codegen.Generate(ctx)
	result.Errors = ctx.Errors()

	if !ctx.Good() {
		log.Warn("IR generation completed with errors", zap.Int("errors", len(ctx.Errors())))
		return result, nil
	}

	text, err := ctx.Builder().EmitTextual()
	if err != nil {
		return result, errors.Wrapf(err, "emitting IR for %s", name)
	}
	result.IR = text

	log.Info("compiled", zap.Int("functions", countFunctions(ctx.Nodes())))
	return result, nil
}

func countFunctions(nodes []ast.Expression) int {
	n := 0
	for _, node := range nodes {
		if _, ok := node.(*ast.Function); ok {
			n++
		}
	}
	return n
}
