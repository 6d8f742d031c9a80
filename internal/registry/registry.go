package registry

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Synthesizer turns an environment into the shell commands that activate it.
type Synthesizer interface {
	Commands(env *Environment) []string
}

// SwitchResult is what Switch hands back to the caller
type SwitchResult struct {
	Environment *Environment `json:"environment"`
	Commands    []string     `json:"commands"`
}

// Option configures a Registry
type Option func(*Registry)

// WithHistoryLimit caps the number of history entries kept.
func WithHistoryLimit(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.historyLimit = n
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// Registry manages the collection of environments. Every call loads the
// document from the Store; mutating calls save it back before returning.
type Registry struct {
	store        *Store
	historyLimit int
	now          func() time.Time
}

// New creates a new Registry on top of store
func New(store *Store, opts ...Option) *Registry {
	r := &Registry{
		store:        store,
		historyLimit: DefaultHistoryLimit,
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the underlying store
func (r *Registry) Store() *Store { return r.store }

// Init creates the document if it does not exist yet
func (r *Registry) Init() (bool, error) {
	return r.store.Init()
}

// Add registers a new environment. With overwrite set an existing record's
// descriptive fields are replaced while its usage stats and creation time are kept.
func (r *Registry) Add(spec EnvironmentSpec, overwrite bool) (*Environment, error) {
	spec.Normalize()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	now := r.now()
	prev, exists := doc.Environments[spec.Name]
	if exists && !overwrite {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, spec.Name)
	}

	env := &Environment{
		Name:        spec.Name,
		ProjectPath: spec.ProjectPath,
		PythonEnv:   spec.PythonEnv,
		NodeVersion: spec.NodeVersion,
		EnvVars:     append(EnvVars{}, spec.EnvVars...),
		Commands:    append([]string{}, spec.Commands...),
		Description: spec.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if exists {
		env.CreatedAt = prev.CreatedAt
		env.UseCount = prev.UseCount
		env.LastUsedAt = prev.LastUsedAt
	}

	doc.Environments[env.Name] = env
	if err := r.store.Save(doc); err != nil {
		return nil, fmt.Errorf("persist failed: %w", err)
	}
	return env.Clone(), nil
}

// Get returns the environment called name
func (r *Registry) Get(name string) (*Environment, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	env, ok := doc.Environments[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return env.Clone(), nil
}

// List returns environments sorted by name. A non-empty search keeps only
// those whose name, description or project path contains it, ignoring case.
func (r *Registry) List(search string) ([]*Environment, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(search)
	envs := make([]*Environment, 0, len(doc.Environments))
	for _, env := range doc.Environments {
		if needle != "" && !matchesSearch(env, needle) {
			continue
		}
		envs = append(envs, env.Clone())
	}

	sort.Slice(envs, func(i, j int) bool {
		return envs[i].Name < envs[j].Name
	})
	return envs, nil
}

func matchesSearch(env *Environment, needle string) bool {
	return strings.Contains(strings.ToLower(env.Name), needle) ||
		strings.Contains(strings.ToLower(env.Description), needle) ||
		strings.Contains(strings.ToLower(env.ProjectPath), needle)
}

// Delete removes name. With confirm false nothing is written and the record
// that would have been removed is returned.
func (r *Registry) Delete(name string, confirm bool) (*Environment, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	env, ok := doc.Environments[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if !confirm {
		return env.Clone(), nil
	}

	delete(doc.Environments, name)
	if err := r.store.Save(doc); err != nil {
		return nil, fmt.Errorf("persist failed: %w", err)
	}
	return env, nil
}

// Switch records a use of name, appends a history entry and returns the
// environment together with the commands synth produced for it.
func (r *Registry) Switch(name string, synth Synthesizer) (*SwitchResult, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	env, ok := doc.Environments[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	now := r.now()
	env.UseCount++
	env.LastUsedAt = &now

	commands := synth.Commands(env.Clone())

	history := NewHistory(doc.History, r.historyLimit)
	history.Append(HistoryEntry{
		ID:           GenerateHistoryID(),
		Environment:  env.Name,
		Timestamp:    now,
		CommandCount: len(commands),
	})
	doc.History = history.Entries()

	if err := r.store.Save(doc); err != nil {
		return nil, fmt.Errorf("persist failed: %w", err)
	}
	return &SwitchResult{Environment: env.Clone(), Commands: commands}, nil
}

// History returns up to limit switches, newest first
func (r *Registry) History(limit int) ([]HistoryEntry, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return NewHistory(doc.History, r.historyLimit).Recent(limit), nil
}
