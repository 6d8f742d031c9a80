package registry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gurisko/envswitch/internal/limits"
	"gopkg.in/yaml.v3"
)

// Store reads and writes the registry document at a fixed path.
// Nothing is cached between calls.
type Store struct {
	filePath string
}

// NewStore creates a Store for the document at filePath
func NewStore(filePath string) *Store {
	return &Store{filePath: filePath}
}

// Path returns the document location
func (s *Store) Path() string {
	return s.filePath
}

// Exists reports whether the document file is present
func (s *Store) Exists() (bool, error) {
	_, err := os.Stat(s.filePath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %w", ErrIO, err)
}

// Init writes an empty document if none exists. It reports whether it created one.
func (s *Store) Init() (bool, error) {
	ok, err := s.Exists()
	if err != nil || ok {
		return false, err
	}
	if err := s.Save(NewDocument()); err != nil {
		return false, err
	}
	return true, nil
}

// Load reads the document from disk. A missing file yields an empty document.
func (s *Store) Load() (*Document, error) {
	f, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limits.Document+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, s.filePath, err)
	}
	if len(data) > limits.Document {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrCorrupt, s.filePath, limits.Document)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.filePath, err)
	}
	return doc, nil
}

// Save replaces the document on disk atomically. doc is normalized in place
// before encoding: nil collections become empty, nil environments are
// dropped, each Name is set to its map key and Version is raised to
// SchemaVersion. The caller sees exactly what was written.
func (s *Store) Save(doc *Document) error {
	doc.backfill()

	// Ensure parent directory exists
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: create directory: %w", ErrIO, err)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	// Write to temp file for atomic replacement
	f, err := os.CreateTemp(dir, ".environments-*.yaml")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrIO, err)
	}
	tmp := f.Name()
	// Best-effort cleanup if we fail
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write registry: %w", ErrIO, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: fsync registry: %w", ErrIO, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close registry file: %w", ErrIO, err)
	}

	// Atomic replace
	if err := os.Rename(tmp, s.filePath); err != nil {
		return fmt.Errorf("%w: replace registry: %w", ErrIO, err)
	}

	// Ensure directory metadata is persisted
	if dirf, err := os.Open(dir); err == nil {
		_ = dirf.Sync()
		_ = dirf.Close()
	}

	return nil
}

// rawDocument defers decoding of environments until the layout is known.
type rawDocument struct {
	Version      int            `yaml:"version"`
	Environments yaml.Node      `yaml:"environments"`
	History      []HistoryEntry `yaml:"history"`
}

// legacyEnvironment is one entry of the version 0 list layout.
type legacyEnvironment struct {
	Name          string   `yaml:"name"`
	ProjectPath   string   `yaml:"project_path"`
	PythonEnv     string   `yaml:"python_env"`
	NodeVersion   string   `yaml:"node_version"`
	EnvVars       EnvVars  `yaml:"env_vars"`
	ShellCommands []string `yaml:"shell_commands"`
	Commands      []string `yaml:"commands"`
	Description   string   `yaml:"description"`
	Created       string   `yaml:"created"`
	LastUsed      string   `yaml:"last_used"`
	UseCount      int      `yaml:"use_count"`
}

func decodeDocument(data []byte) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return NewDocument(), nil
	}

	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	doc := &Document{
		Version:      raw.Version,
		Environments: make(map[string]*Environment),
		History:      raw.History,
	}

	switch raw.Environments.Kind {
	case 0:
		// absent
	case yaml.MappingNode:
		if err := raw.Environments.Decode(&doc.Environments); err != nil {
			return nil, err
		}
	case yaml.SequenceNode:
		var legacy []legacyEnvironment
		if err := raw.Environments.Decode(&legacy); err != nil {
			return nil, err
		}
		for _, le := range legacy {
			env, err := le.upgrade()
			if err != nil {
				return nil, err
			}
			doc.Environments[env.Name] = env
		}
	case yaml.ScalarNode:
		if raw.Environments.ShortTag() != "!!null" {
			return nil, fmt.Errorf("environments: unexpected scalar %q", raw.Environments.Value)
		}
	default:
		return nil, fmt.Errorf("environments: unexpected node kind %d", raw.Environments.Kind)
	}

	doc.backfill()
	return doc, nil
}

func (le legacyEnvironment) upgrade() (*Environment, error) {
	if le.Name == "" {
		return nil, fmt.Errorf("legacy environment without a name")
	}
	env := &Environment{
		Name:        le.Name,
		ProjectPath: le.ProjectPath,
		PythonEnv:   le.PythonEnv,
		NodeVersion: le.NodeVersion,
		EnvVars:     le.EnvVars,
		Commands:    le.Commands,
		Description: le.Description,
		UseCount:    le.UseCount,
	}
	if env.Commands == nil {
		env.Commands = le.ShellCommands
	}
	if t, ok := parseLegacyTime(le.Created); ok {
		env.CreatedAt = t
		env.UpdatedAt = t
	}
	if t, ok := parseLegacyTime(le.LastUsed); ok {
		env.LastUsedAt = &t
	}
	env.backfill()
	return env, nil
}

var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// parseLegacyTime reads the naive local timestamps the old layout used.
func parseLegacyTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range legacyTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
