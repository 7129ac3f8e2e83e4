package parser

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

// Mode selects what happens when a statement fails to parse.
type Mode string

const (
	// ModeRecover records the error, skips to the next statement boundary and
	// keeps parsing. ParseProgram always returns a program.
	ModeRecover Mode = "recover"
	// ModeStrict aborts on the first failed statement and ParseProgram returns nil.
	ModeStrict Mode = "strict"
)

const DefaultMaxSourceBytes = 1 << 20

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeRecover:
		return ModeRecover, nil
	case ModeStrict:
		return ModeStrict, nil
	default:
		return "", fmt.Errorf("invalid parser mode %q, expected one of %v", s, []Mode{ModeRecover, ModeStrict})
	}
}

type Config struct {
	Mode           Mode
	MaxSourceBytes int
}

func DefaultConfig() *Config {
	return &Config{Mode: ModeRecover, MaxSourceBytes: DefaultMaxSourceBytes}
}

func LoadEnv() (*Config, error) {
	mode, err := ParseMode(os.Getenv("PARSER_MODE"))
	if err != nil {
		slog.Error("Invalid PARSER_MODE environment variable value", "value", os.Getenv("PARSER_MODE"))
		return nil, err
	}

	maxBytes := DefaultMaxSourceBytes
	if raw := os.Getenv("PARSER_MAX_SOURCE_BYTES"); raw != "" {
		maxBytes, err = strconv.Atoi(raw)
		if err != nil || maxBytes <= 0 {
			slog.Error("Invalid PARSER_MAX_SOURCE_BYTES environment variable value", "value", raw)
			return nil, fmt.Errorf("PARSER_MAX_SOURCE_BYTES must be a positive integer, got %q", raw)
		}
	}

	return &Config{
		Mode:           mode,
		MaxSourceBytes: maxBytes,
	}, nil
}
