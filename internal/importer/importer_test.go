package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gurisko/envswitch/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webMarkdown = `---
name: web
project_path: /proj/web
python_env: /proj/web/.venv
env_vars:
  PORT: 8000
  API_URL: http://localhost:9000
commands:
  - npm start
---

Marketing site frontend.
`

func TestParseMarkdown(t *testing.T) {
	spec, err := ParseMarkdown([]byte(webMarkdown))
	require.NoError(t, err)

	assert.Equal(t, "web", spec.Name)
	assert.Equal(t, "/proj/web", spec.ProjectPath)
	assert.Equal(t, "/proj/web/.venv", spec.PythonEnv)
	assert.Equal(t, registry.EnvVars{
		{Key: "PORT", Value: "8000"},
		{Key: "API_URL", Value: "http://localhost:9000"},
	}, spec.EnvVars)
	assert.Equal(t, []string{"npm start"}, spec.Commands)
	assert.Equal(t, "Marketing site frontend.", spec.Description)
	require.NoError(t, spec.Validate())
}

func TestParseMarkdown_FrontmatterDescriptionWins(t *testing.T) {
	src := "---\nname: api\nproject_path: /srv/api\ndescription: from header\n---\nbody text\n"
	spec, err := ParseMarkdown([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "from header", spec.Description)
	assert.NotNil(t, spec.EnvVars)
	assert.NotNil(t, spec.Commands)
}

func TestParseMarkdown_NoFrontmatter(t *testing.T) {
	_, err := ParseMarkdown([]byte("# just a readme\n"))
	assert.True(t, errors.Is(err, ErrNoDefinition))
}

func TestReadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.yml")
	require.NoError(t, os.WriteFile(path, []byte("name: api\nproject_path: /srv/api\n"), 0o600))

	spec, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "api", spec.Name)
	assert.Equal(t, "/srv/api", spec.ProjectPath)
}

func TestReadFile_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.md")
	big := make([]byte, 2<<20)
	require.NoError(t, os.WriteFile(path, big, 0o600))

	_, err := ReadFile(path)
	assert.Error(t, err)
}
