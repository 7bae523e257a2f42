package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vasyharan/dravid/internal/ast"
	"github.com/vasyharan/dravid/internal/compiler"
	"github.com/vasyharan/dravid/internal/driver"
	"github.com/vasyharan/dravid/internal/lexer"
)

type buildFlags struct {
	emit    string
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dravid",
		Short: "dravid compiles source files to LLVM IR",
	}
	cmd.AddCommand(newBuildCmd())
	return cmd
}

func newBuildCmd() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build <file> [file...]",
		Short: "Parse, analyze, and lower the given source files to LLVM IR",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.emit, "emit", "ir", "what to print per file: tokens|ast|ir")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

func runBuild(flags *buildFlags, paths []string) error {
	switch flags.emit {
	case "tokens", "ast", "ir":
	default:
		return errors.Errorf("unknown --emit value %q: want tokens, ast, or ir", flags.emit)
	}

	log, err := newLogger(flags.verbose)
	if err != nil {
		return errors.Wrap(err, "initializing logger")
	}
	defer log.Sync() //nolint:errcheck

	global := compiler.NewGlobalContext()
	failed := false

	for _, path := range paths {
		if err := buildOne(global, path, flags, log); err != nil {
			log.Error("build failed", zap.String("path", path), zap.Error(err))
			failed = true
		}
	}

	if failed {
		return errors.New("one or more units failed to compile")
	}
	return nil
}

func buildOne(global *compiler.GlobalContext, path string, flags *buildFlags, log *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	result, err := driver.Compile(global, path, f, log)
	if err != nil {
		return errors.Wrapf(err, "compiling %s", path)
	}

	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, e.String())
	}
	if !result.Good() {
		return errors.Errorf("%s: %d error(s)", path, len(result.Errors))
	}

	switch flags.emit {
	case "tokens":
		// Token emission re-lexes the file independently of the parse,
		// matching spec §6's textual-forms contract for --emit=tokens.
		return emitTokens(path)
	case "ast":
		for _, node := range result.Nodes {
			fmt.Println(ast.Print(node))
		}
	case "ir":
		os.Stdout.Write(result.IR)
	}
	return nil
}

func emitTokens(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	lex := lexer.New(f)
	for {
		tok := lex.Lex()
		fmt.Println(tok.String())
		if tok.IsEOF() || tok.IsInvalid() {
			return nil
		}
	}
}
