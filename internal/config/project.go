package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Project represents the symtab.yaml project file.
type Project struct {
	// Store is the path of the SQLite snapshot database, relative to the
	// project file.
	Store string `yaml:"store,omitempty"`

	// Listen is the address the inspector service binds to.
	Listen string `yaml:"listen,omitempty"`

	// Color is one of "auto", "always", "never". Auto enables colour only
	// when stdout is a terminal.
	Color string `yaml:"color,omitempty"`

	// History is the REPL history file. A leading "~/" is expanded.
	History string `yaml:"history,omitempty"`

	// Dir is the directory containing the project file (set by LoadProject).
	Dir string `yaml:"-"`
}

// DefaultProject returns a Project with every field at its default.
func DefaultProject() *Project {
	p := &Project{Dir: "."}
	p.applyDefaults()
	return p
}

// ProjectPath returns the project file location: $SYMTAB_CONFIG if set,
// otherwise symtab.yaml in the working directory.
func ProjectPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	return ProjectFileName
}

// LoadProject reads and validates a project file. A missing file is not an
// error: the defaults are returned instead.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		p := DefaultProject()
		p.Dir = filepath.Dir(path)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	p, err := ParseProject(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Dir = filepath.Dir(path)
	return p, nil
}

// ParseProject parses project file content.
func ParseProject(data []byte) (*Project, error) {
	p := &Project{Dir: "."}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Project) applyDefaults() {
	if p.Store == "" {
		p.Store = DefaultStore
	}
	if p.Listen == "" {
		p.Listen = DefaultListen
	}
	if p.Color == "" {
		p.Color = ColorAuto
	}
	if p.History == "" {
		p.History = "~/" + DefaultHistory
	}
}

// Validate checks field values.
func (p *Project) Validate() error {
	switch p.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color: must be %q, %q or %q, got %q", ColorAuto, ColorAlways, ColorNever, p.Color)
	}
	if !strings.Contains(p.Listen, ":") {
		return fmt.Errorf("listen: %q is not a host:port address", p.Listen)
	}
	return nil
}

// StorePath resolves Store against the project directory.
func (p *Project) StorePath() string {
	if filepath.IsAbs(p.Store) {
		return p.Store
	}
	return filepath.Join(p.Dir, p.Store)
}

// HistoryPath expands a leading "~/" in History.
func (p *Project) HistoryPath() string {
	if strings.HasPrefix(p.History, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, p.History[2:])
		}
	}
	return p.History
}
