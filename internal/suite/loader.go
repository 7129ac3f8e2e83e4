package suite

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/monkey-parser/internal/parser"
	"gopkg.in/yaml.v3"
)

func LoadFromFile(path string) (*TestSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*TestSuite, error) {
	var s TestSuite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse suite YAML: %w", err)
	}
	if len(s.Cases) == 0 {
		return nil, fmt.Errorf("suite has no cases")
	}
	if _, err := parser.ParseMode(string(s.Mode)); err != nil {
		return nil, fmt.Errorf("suite %q: %w", s.Name, err)
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.ID == "" {
			return nil, fmt.Errorf("case at index %d has no id", i)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate case id %q", c.ID)
		}
		seen[c.ID] = true

		if _, err := parser.ParseMode(string(c.Mode)); err != nil {
			return nil, fmt.Errorf("case %q: %w", c.ID, err)
		}
		if c.Expected == nil && c.Statements == nil && len(c.Tokens) == 0 && len(c.Errors) == 0 && !c.Rejected {
			return nil, fmt.Errorf("case %q has no expectations", c.ID)
		}
	}

	return &s, nil
}
