// Package main tokenizes or parses Monkey source from a file or stdin, or runs
// a golden suite against the parser.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/monkey-parser/internal/ast"
	"github.com/DjordjeVuckovic/monkey-parser/internal/lexer"
	"github.com/DjordjeVuckovic/monkey-parser/internal/parser"
	"github.com/DjordjeVuckovic/monkey-parser/internal/suite"
)

func main() {
	cfg := parseFlags()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetLogLoggerLevel(level)

	if err := cfg.validate(); err != nil {
		slog.Error("Invalid flags", "error", err)
		os.Exit(2)
	}

	if cfg.Mode == outputSuite {
		os.Exit(runSuite(cfg.SuitePath, os.Stdout))
	}

	source, err := readSource(cfg.FilePath)
	if err != nil {
		slog.Error("Failed to read source", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, source, os.Stdout, os.Stderr); err != nil {
		slog.Error("Parse failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg cliConfig, source string, stdout, stderr io.Writer) error {
	if cfg.Mode == outputTokens {
		for _, tok := range lexer.Tokenize(source) {
			fmt.Fprintf(stdout, "%-10s %q\n", tok.Type, tok.Literal)
		}
		return nil
	}

	p := parser.New(lexer.New(source), parser.WithMode(cfg.parserMode()))
	program := p.ParseProgram()
	for _, msg := range p.Errors() {
		fmt.Fprintf(stderr, "parser error: %s\n", msg)
	}
	if err := p.Err(); err != nil {
		return err
	}

	switch cfg.Mode {
	case outputJSON:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ast.Dump(program))
	default:
		_, err := fmt.Fprintln(stdout, program.String())
		return err
	}
}

func runSuite(path string, out io.Writer) int {
	s, err := suite.LoadFromFile(path)
	if err != nil {
		slog.Error("Failed to load suite", "path", path, "error", err)
		return 1
	}

	report := suite.Run(s)
	suite.WriteTable(report, out)

	if report.Failed() > 0 {
		return 1
	}
	return 0
}

func readSource(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source file: %w", err)
	}
	return string(b), nil
}
