package suite

import (
	"github.com/DjordjeVuckovic/monkey-parser/internal/parser"
	"github.com/DjordjeVuckovic/monkey-parser/internal/token"
)

// TestSuite is a set of golden parse cases loaded from YAML.
type TestSuite struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Version     string      `yaml:"version"`
	Mode        parser.Mode `yaml:"mode,omitempty"`
	Cases       []Case      `yaml:"cases"`
}

// Case describes one input and what the front end must produce for it.
// Only the expectations that are set get checked.
type Case struct {
	ID          string        `yaml:"id"`
	Description string        `yaml:"description"`
	Input       string        `yaml:"input"`
	Mode        parser.Mode   `yaml:"mode,omitempty"`
	Expected    *string       `yaml:"expected,omitempty"`
	Statements  *int          `yaml:"statements,omitempty"`
	Tokens      []token.Token `yaml:"tokens,omitempty"`
	Errors      []string      `yaml:"errors,omitempty"`
	Rejected    bool          `yaml:"rejected,omitempty"`
}

// EffectiveMode resolves the case mode against the suite default.
func (c *Case) EffectiveMode(suiteMode parser.Mode) parser.Mode {
	if c.Mode != "" {
		return c.Mode
	}
	if suiteMode != "" {
		return suiteMode
	}
	return parser.ModeRecover
}
