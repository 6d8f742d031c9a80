package registry

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances one minute per call.
func stepClock(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		t := cur
		cur = cur.Add(time.Minute)
		return t
	}
}

// countSynth emits one line per variable so the command count is predictable.
type countSynth struct{}

func (countSynth) Commands(env *Environment) []string {
	out := []string{"cd " + env.ProjectPath}
	for _, ev := range env.EnvVars {
		out = append(out, ev.Key+"="+ev.Value)
	}
	return append(out, env.Commands...)
}

func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	opts = append([]Option{WithClock(stepClock(start))}, opts...)
	return New(newTestStore(t), opts...)
}

func TestRegistry_AddAndGet(t *testing.T) {
	r := newTestRegistry(t)

	env, err := r.Add(EnvironmentSpec{
		Name:        "web",
		ProjectPath: "/proj/web",
		PythonEnv:   "/proj/web/.venv",
		EnvVars:     EnvVars{{"PORT", "8000"}},
		Commands:    []string{"npm start"},
		Description: "Frontend",
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "web", env.Name)
	assert.Equal(t, env.CreatedAt, env.UpdatedAt)
	assert.Equal(t, 0, env.UseCount)
	assert.Nil(t, env.LastUsedAt)

	got, err := r.Get("web")
	require.NoError(t, err)
	assert.Equal(t, env, got)

	_, err = r.Get("WEB")
	assert.True(t, errors.Is(err, ErrNotFound), "names are case-sensitive")
}

func TestRegistry_AddDuplicate(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.Add(EnvironmentSpec{Name: "web", ProjectPath: "/a"}, false)
	require.NoError(t, err)

	_, err = r.Add(EnvironmentSpec{Name: "web", ProjectPath: "/b"}, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyExists))

	got, err := r.Get("web")
	require.NoError(t, err)
	assert.Equal(t, "/a", got.ProjectPath)
}

func TestRegistry_OverwriteKeepsUsage(t *testing.T) {
	r := newTestRegistry(t)
	first, err := r.Add(EnvironmentSpec{Name: "web", ProjectPath: "/a", Description: "old"}, false)
	require.NoError(t, err)

	_, err = r.Switch("web", countSynth{})
	require.NoError(t, err)
	switched, err := r.Switch("web", countSynth{})
	require.NoError(t, err)

	updated, err := r.Add(EnvironmentSpec{Name: "web", ProjectPath: "/b", Description: "new"}, true)
	require.NoError(t, err)
	assert.Equal(t, "/b", updated.ProjectPath)
	assert.Equal(t, "new", updated.Description)
	assert.Equal(t, 2, updated.UseCount)
	assert.Equal(t, switched.Environment.LastUsedAt, updated.LastUsedAt)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(first.UpdatedAt))
}

func TestRegistry_AddValidation(t *testing.T) {
	tests := []struct {
		name string
		spec EnvironmentSpec
	}{
		{"empty name", EnvironmentSpec{Name: "  ", ProjectPath: "/a"}},
		{"whitespace in name", EnvironmentSpec{Name: "my env", ProjectPath: "/a"}},
		{"leading dash", EnvironmentSpec{Name: "-web", ProjectPath: "/a"}},
		{"missing path", EnvironmentSpec{Name: "web"}},
		{"bad variable", EnvironmentSpec{Name: "web", ProjectPath: "/a", EnvVars: EnvVars{{"1BAD", "x"}}}},
		{"duplicate variable", EnvironmentSpec{Name: "web", ProjectPath: "/a", EnvVars: EnvVars{{"A", "1"}, {"A", "2"}}}},
		{"blank command", EnvironmentSpec{Name: "web", ProjectPath: "/a", Commands: []string{"ls", " "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry(t)
			_, err := r.Add(tt.spec, false)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation), "got %v", err)

			ok, err := r.Store().Exists()
			require.NoError(t, err)
			assert.False(t, ok, "nothing should be written")
		})
	}
}

func TestRegistry_ListSortedAndSearch(t *testing.T) {
	r := newTestRegistry(t)
	specs := []EnvironmentSpec{
		{Name: "zeta", ProjectPath: "/srv/zeta", Description: "backend FOOD service"},
		{Name: "alpha", ProjectPath: "/home/me/Foo-project"},
		{Name: "myfoo", ProjectPath: "/x"},
		{Name: "other", ProjectPath: "/y", Description: "nothing here"},
	}
	for _, s := range specs {
		_, err := r.Add(s, false)
		require.NoError(t, err)
	}

	all, err := r.List("")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "myfoo", "other", "zeta"}, names(all))

	found, err := r.List("foo")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "myfoo", "zeta"}, names(found))

	none, err := r.List("nope")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func names(envs []*Environment) []string {
	out := make([]string, 0, len(envs))
	for _, e := range envs {
		out = append(out, e.Name)
	}
	return out
}

func TestRegistry_DeleteDryRunAndConfirm(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.Add(EnvironmentSpec{Name: "web", ProjectPath: "/a"}, false)
	require.NoError(t, err)

	env, err := r.Delete("web", false)
	require.NoError(t, err)
	assert.Equal(t, "web", env.Name)
	_, err = r.Get("web")
	require.NoError(t, err, "dry run must not delete")

	_, err = r.Delete("web", true)
	require.NoError(t, err)
	_, err = r.Get("web")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRegistry_DeleteMissingLeavesDocument(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.Add(EnvironmentSpec{Name: "web", ProjectPath: "/a"}, false)
	require.NoError(t, err)
	before, err := os.ReadFile(r.Store().Path())
	require.NoError(t, err)

	_, err = r.Delete("missing", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	after, err := os.ReadFile(r.Store().Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRegistry_SwitchBookkeeping(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.Add(EnvironmentSpec{Name: "x", ProjectPath: "/x", EnvVars: EnvVars{{"A", "1"}}}, false)
	require.NoError(t, err)

	var last *SwitchResult
	for i := 0; i < 3; i++ {
		last, err = r.Switch("x", countSynth{})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"cd /x", "A=1"}, last.Commands)

	env, err := r.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 3, env.UseCount)
	require.NotNil(t, env.LastUsedAt)

	history, err := r.History(0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, *env.LastUsedAt, history[0].Timestamp, "last_used_at matches the last switch")
	for _, h := range history {
		assert.Equal(t, "x", h.Environment)
		assert.Equal(t, 2, h.CommandCount)
		assert.NotEmpty(t, h.ID)
	}
	assert.True(t, history[0].Timestamp.After(history[2].Timestamp))
}

func TestRegistry_SwitchMissing(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.Switch("nope", countSynth{})
	assert.True(t, errors.Is(err, ErrNotFound))

	ok, err := r.Store().Exists()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegistry_HistoryBounded(t *testing.T) {
	r := newTestRegistry(t, WithHistoryLimit(3))
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		_, err := r.Add(EnvironmentSpec{Name: n, ProjectPath: "/" + n}, false)
		require.NoError(t, err)
		_, err = r.Switch(n, countSynth{})
		require.NoError(t, err)
	}

	doc, err := r.Store().Load()
	require.NoError(t, err)
	require.Len(t, doc.History, 3)

	recent, err := r.History(10)
	require.NoError(t, err)
	var got []string
	for _, h := range recent {
		got = append(got, h.Environment)
	}
	assert.Equal(t, []string{"e", "d", "c"}, got)
}

func TestRegistry_ReturnedRecordsAreCopies(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.Add(EnvironmentSpec{Name: "web", ProjectPath: "/a", Commands: []string{"ls"}}, false)
	require.NoError(t, err)

	env, err := r.Get("web")
	require.NoError(t, err)
	env.Commands[0] = "rm -rf /"

	again, err := r.Get("web")
	require.NoError(t, err)
	assert.Equal(t, []string{"ls"}, again.Commands)
}

func TestRegistry_Stats(t *testing.T) {
	r := newTestRegistry(t)
	for _, n := range []string{"a", "b", "c"} {
		_, err := r.Add(EnvironmentSpec{Name: n, ProjectPath: "/" + n}, false)
		require.NoError(t, err)
	}
	for _, n := range []string{"b", "a", "b"} {
		_, err := r.Switch(n, countSynth{})
		require.NoError(t, err)
	}

	st, err := r.Stats(0)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Environments)
	assert.Equal(t, 3, st.TotalSwitches)
	require.Len(t, st.TopUsed, 2)
	assert.Equal(t, "b", st.TopUsed[0].Name)
	assert.Equal(t, 2, st.TopUsed[0].UseCount)
	assert.Equal(t, "a", st.TopUsed[1].Name)
	assert.Equal(t, []string{"c"}, st.NeverUsed)
	require.NotNil(t, st.LastSwitch)
	assert.Equal(t, "b", st.LastSwitch.Environment)

	top, err := r.Stats(1)
	require.NoError(t, err)
	assert.Len(t, top.TopUsed, 1)
}

func TestRegistry_CorruptDocumentSurfaces(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.Add(EnvironmentSpec{Name: "web", ProjectPath: "/a"}, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(r.Store().Path(), []byte("{{{"), 0o600))

	_, err = r.List("")
	assert.True(t, errors.Is(err, ErrCorrupt))
	_, err = r.Add(EnvironmentSpec{Name: "api", ProjectPath: "/b"}, false)
	assert.True(t, errors.Is(err, ErrCorrupt))

	data, err := os.ReadFile(r.Store().Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{{{"), "corrupt file must not be replaced")
}
