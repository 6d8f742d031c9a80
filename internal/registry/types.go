package registry

import (
	"time"
)

// SchemaVersion is the version written to every saved document.
// Version 0 is the list-based layout used before names became map keys.
const SchemaVersion = 1

// DefaultHistoryLimit caps the switch history when no limit is configured.
const DefaultHistoryLimit = 100

// Environment represents a named project environment in the registry
type Environment struct {
	Name        string     `yaml:"name" json:"name"`                 // Unique, case-sensitive key
	ProjectPath string     `yaml:"project_path" json:"project_path"` // Directory to cd into; not required to exist
	PythonEnv   string     `yaml:"python_env" json:"python_env"`     // Virtualenv directory, empty if unset
	NodeVersion string     `yaml:"node_version" json:"node_version"` // Informational only
	EnvVars     EnvVars    `yaml:"env_vars" json:"env_vars"`
	Commands    []string   `yaml:"commands" json:"commands"`
	Description string     `yaml:"description" json:"description"`
	CreatedAt   time.Time  `yaml:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `yaml:"updated_at" json:"updated_at"`
	UseCount    int        `yaml:"use_count" json:"use_count"`
	LastUsedAt  *time.Time `yaml:"last_used_at" json:"last_used_at"`
}

// HistoryEntry records one switch
type HistoryEntry struct {
	ID           string    `yaml:"id" json:"id"`
	Environment  string    `yaml:"environment" json:"environment"`
	Timestamp    time.Time `yaml:"timestamp" json:"timestamp"`
	CommandCount int       `yaml:"command_count" json:"command_count"`
}

// Document is the persisted aggregate: every environment plus the switch history
type Document struct {
	Version      int                     `yaml:"version" json:"version"`
	Environments map[string]*Environment `yaml:"environments" json:"environments"`
	History      []HistoryEntry          `yaml:"history" json:"history"`
}

// NewDocument returns an empty document at the current schema version.
func NewDocument() *Document {
	return &Document{
		Version:      SchemaVersion,
		Environments: make(map[string]*Environment),
		History:      []HistoryEntry{},
	}
}

// backfill brings a decoded document up to the current schema in place.
// Fields absent from older documents end up empty rather than nil.
func (d *Document) backfill() {
	if d.Environments == nil {
		d.Environments = make(map[string]*Environment)
	}
	for name, env := range d.Environments {
		if env == nil {
			delete(d.Environments, name)
			continue
		}
		env.Name = name
		env.backfill()
	}
	if d.History == nil {
		d.History = []HistoryEntry{}
	}
	if d.Version < SchemaVersion {
		d.Version = SchemaVersion
	}
}

func (e *Environment) backfill() {
	if e.EnvVars == nil {
		e.EnvVars = EnvVars{}
	}
	if e.Commands == nil {
		e.Commands = []string{}
	}
	if e.UseCount < 0 {
		e.UseCount = 0
	}
}

// Clone returns a deep copy so callers can't mutate registry state through it.
func (e *Environment) Clone() *Environment {
	if e == nil {
		return nil
	}
	c := *e
	c.EnvVars = append(EnvVars{}, e.EnvVars...)
	c.Commands = append([]string{}, e.Commands...)
	if e.LastUsedAt != nil {
		t := *e.LastUsedAt
		c.LastUsedAt = &t
	}
	return &c
}

// EnvironmentSpec carries the descriptive fields accepted by Add
type EnvironmentSpec struct {
	Name        string   `yaml:"name" json:"name"`
	ProjectPath string   `yaml:"project_path" json:"project_path"`
	PythonEnv   string   `yaml:"python_env" json:"python_env"`
	NodeVersion string   `yaml:"node_version" json:"node_version"`
	EnvVars     EnvVars  `yaml:"env_vars" json:"env_vars"`
	Commands    []string `yaml:"commands" json:"commands"`
	Description string   `yaml:"description" json:"description"`
}
