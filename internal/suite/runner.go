package suite

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/DjordjeVuckovic/monkey-parser/internal/ast"
	"github.com/DjordjeVuckovic/monkey-parser/internal/lexer"
	"github.com/DjordjeVuckovic/monkey-parser/internal/parser"
)

type Result struct {
	CaseID   string
	Mode     parser.Mode
	Output   string
	Nodes    int
	Errors   []string
	Failures []string
}

func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

type Report struct {
	SuiteName string
	Results   []Result
}

func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed() {
			n++
		}
	}
	return n
}

func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// Run executes every case in order. A failing case never stops the run.
func Run(s *TestSuite) *Report {
	report := &Report{SuiteName: s.Name, Results: make([]Result, 0, len(s.Cases))}

	for i := range s.Cases {
		res := runCase(&s.Cases[i], s.Mode)
		if !res.Passed() {
			slog.Debug("Suite case failed", "suite", s.Name, "case", res.CaseID, "failures", len(res.Failures))
		}
		report.Results = append(report.Results, res)
	}

	return report
}

func runCase(c *Case, suiteMode parser.Mode) Result {
	res := Result{CaseID: c.ID, Mode: c.EffectiveMode(suiteMode)}

	if len(c.Tokens) > 0 {
		got := lexer.Tokenize(c.Input)
		if !slices.Equal(got, c.Tokens) {
			res.Failures = append(res.Failures, fmt.Sprintf("tokens: expected %v, got %v", c.Tokens, got))
		}
	}

	if c.Expected == nil && c.Statements == nil && len(c.Errors) == 0 && !c.Rejected {
		return res
	}

	p := parser.New(lexer.New(c.Input), parser.WithMode(res.Mode))
	program := p.ParseProgram()
	res.Errors = p.Errors()
	if program != nil {
		res.Output = program.String()
		res.Nodes = countNodes(program)
	}

	switch {
	case len(c.Errors) > 0:
		if !slices.Equal(res.Errors, c.Errors) {
			res.Failures = append(res.Failures, fmt.Sprintf("errors: expected %q, got %q", c.Errors, res.Errors))
		}
	case c.Rejected:
		if len(res.Errors) == 0 {
			res.Failures = append(res.Failures, "expected the program to be rejected, got no errors")
		}
	default:
		if len(res.Errors) > 0 {
			res.Failures = append(res.Failures, fmt.Sprintf("unexpected errors: %q", res.Errors))
		}
	}

	if c.Expected != nil {
		if program == nil {
			res.Failures = append(res.Failures, fmt.Sprintf("expected %q, got no program", *c.Expected))
		} else if res.Output != *c.Expected {
			res.Failures = append(res.Failures, fmt.Sprintf("expected %q, got %q", *c.Expected, res.Output))
		}
	}

	if program != nil && len(res.Errors) == 0 {
		if failure := checkRoundTrip(program, res.Mode); failure != "" {
			res.Failures = append(res.Failures, failure)
		}
	}

	if c.Statements != nil {
		got := 0
		if program != nil {
			got = len(program.Statements)
		}
		if got != *c.Statements {
			res.Failures = append(res.Failures, fmt.Sprintf("statements: expected %d, got %d", *c.Statements, got))
		}
	}

	return res
}

// checkRoundTrip parses the rendered program again and reports a failure when
// the result renders differently or has a different statement count.
func checkRoundTrip(program *ast.Program, mode parser.Mode) string {
	rendered := program.String()
	again, err := parser.Parse(rendered, parser.WithMode(mode))
	if err != nil {
		return fmt.Sprintf("round trip: %q does not parse: %v", rendered, err)
	}
	if again.String() != rendered || len(again.Statements) != len(program.Statements) {
		return fmt.Sprintf("round trip: %q parsed back as %q (%d statements, want %d)",
			rendered, again.String(), len(again.Statements), len(program.Statements))
	}
	return ""
}

func countNodes(node ast.Node) int {
	n := 0
	ast.Inspect(node, func(ast.Node) bool {
		n++
		return true
	})
	return n
}
