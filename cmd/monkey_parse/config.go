package main

import (
	"flag"
	"fmt"

	"github.com/DjordjeVuckovic/monkey-parser/internal/parser"
	"github.com/DjordjeVuckovic/monkey-parser/pkg/config/env"
)

const (
	outputTokens = "tokens"
	outputAST    = "ast"
	outputJSON   = "json"
	outputSuite  = "suite"
)

type cliConfig struct {
	Mode      string
	FilePath  string
	SuitePath string
	Strict    bool
	Verbose   bool
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.Mode, "mode", outputAST, "Output mode: tokens, ast, json, or suite")
	flag.StringVar(&cfg.FilePath, "file", "", "Path to a Monkey source file (reads stdin when empty)")
	flag.StringVar(&cfg.SuitePath, "suite", env.GetOr("MONKEY_SUITE_PATH", "configs/suites/front_end.yaml"), "Path to a golden suite YAML (suite mode)")
	flag.BoolVar(&cfg.Strict, "strict", false, "Abort the whole program at the first parse error")
	flag.BoolVar(&cfg.Verbose, "v", false, "Enable debug logging")

	flag.Parse()
	return cfg
}

func (c cliConfig) validate() error {
	switch c.Mode {
	case outputTokens, outputAST, outputJSON, outputSuite:
		return nil
	default:
		return fmt.Errorf("invalid mode %q, expected one of tokens, ast, json, suite", c.Mode)
	}
}

func (c cliConfig) parserMode() parser.Mode {
	if c.Strict {
		return parser.ModeStrict
	}
	return parser.ModeRecover
}
