// Package config loads eventid settings from YAML.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/types"
	"io"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/sirkon/eventid/internal/evrules"
	"github.com/sirkon/eventid/internal/tracing"
)

// Config is the YAML settings document.
type Config struct {
	// Loggers are logging interfaces in "pkg/path".Name form.
	Loggers []tracing.Reference `yaml:"loggers"`

	// NameHeuristic enables matching loggers by type name when the
	// exact check fails.
	NameHeuristic bool `yaml:"name-heuristic"`

	// NamePatterns are type name substrings used by the heuristic.
	NamePatterns []string `yaml:"name-patterns"`

	// EventTypes are names of event id types.
	EventTypes []string `yaml:"event-types"`

	// IntKinds are predeclared integer types accepted as event codes.
	IntKinds []tracing.IntKind `yaml:"int-kinds"`

	// Methods limits checks to these logger methods. Empty means all.
	Methods []string `yaml:"methods"`

	// Disable turns rules off, by identifier or code.
	Disable []evrules.Rule `yaml:"disable"`

	SkipTests     bool `yaml:"skip-tests"`
	SkipGenerated bool `yaml:"skip-generated"`

	// Workers is how many files of a package are walked in parallel.
	Workers int `yaml:"workers"`
}

// Default returns settings used when no file is given.
func Default() *Config {
	return &Config{
		NameHeuristic: true,
		NamePatterns:  []string{"Logger"},
		EventTypes:    []string{"EventID", "EventId"},
		IntKinds: []tracing.IntKind{
			tracing.IntKind(types.Int32),
			tracing.IntKind(types.Int),
		},
		SkipGenerated: true,
		Workers:       1,
	}
}

// Load reads settings from a path or an afs URL. Keys missing in the file
// keep their defaults. Empty location means defaults.
func Load(ctx context.Context, location string) (*Config, error) {
	if location == "" {
		return Default(), nil
	}

	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", location, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", location, err)
	}

	return cfg, nil
}

// Parse decodes settings over defaults and validates them.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	return cfg, nil
}

// Validate checks settings consistency.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}

	if len(c.IntKinds) == 0 && len(c.EventTypes) == 0 {
		return errors.New("at least one of int-kinds and event-types must be set")
	}

	if c.NameHeuristic && len(c.NamePatterns) == 0 && len(c.Loggers) == 0 {
		return errors.New("name-heuristic needs name-patterns or loggers")
	}

	for _, pattern := range c.NamePatterns {
		if pattern == "" {
			return errors.New("empty name pattern")
		}
	}

	return nil
}

// Policy converts settings into the classifier policy.
func (c *Config) Policy() tracing.Policy {
	return tracing.Policy{
		Loggers:      c.Loggers,
		Heuristic:    c.NameHeuristic,
		NamePatterns: c.NamePatterns,
		EventTypes:   c.EventTypes,
		IntKinds:     c.IntKinds,
		Methods:      c.Methods,
	}
}

// Engine builds an engine configured by the settings.
func (c *Config) Engine() *tracing.Engine {
	e := tracing.NewEngine(c.Policy())
	for _, rule := range c.Disable {
		e.Disable(rule)
	}
	e.SetWorkers(c.Workers)

	return e
}
