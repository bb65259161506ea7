package app

import (
	"errors"
	"fmt"
	"time"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath string // .hcl / .hcl.json file or directory

	LogFormat    string
	LogLevel     string
	OutputFormat string
	FormatGraph  bool // print the loaded graph as canonical HCL instead of compiling

	PreviewURL       string
	PreviewNamespace string
	PreviewEvent     string
	PreviewTimeout   time.Duration

	PreviewInsecureSkipVerify bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}

	switch cfg.OutputFormat {
	case "":
		cfg.OutputFormat = OutputText
	case OutputText, OutputJSON:
	default:
		return nil, fmt.Errorf("invalid output format %q: must be %q or %q", cfg.OutputFormat, OutputText, OutputJSON)
	}

	if cfg.PreviewTimeout < 0 {
		return nil, fmt.Errorf("preview timeout must not be negative, got %s", cfg.PreviewTimeout)
	}

	return &cfg, nil
}
