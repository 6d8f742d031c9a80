// Package importer reads environment definitions from files.
//
// Markdown files carry the definition as YAML frontmatter; the body becomes
// the description when the frontmatter has none:
//
//	---
//	name: web
//	project_path: ~/code/web
//	python_env: ~/code/web/.venv
//	env_vars:
//	  PORT: "8000"
//	commands:
//	  - npm start
//	---
//	Marketing site frontend.
//
// Files ending in .yaml or .yml are read as a bare definition.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/gurisko/envswitch/internal/limits"
	"github.com/gurisko/envswitch/internal/registry"
	"gopkg.in/yaml.v3"
)

// ErrNoDefinition indicates a markdown file without frontmatter
var ErrNoDefinition = errors.New("no environment definition found")

// yamlFormat decodes with yaml.v3 so that env_vars keep their order.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// ReadFile parses the definition at path
func ReadFile(path string) (registry.EnvironmentSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return registry.EnvironmentSpec{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limits.ImportFile+1))
	if err != nil {
		return registry.EnvironmentSpec{}, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) > limits.ImportFile {
		return registry.EnvironmentSpec{}, fmt.Errorf("%s exceeds %d bytes", path, limits.ImportFile)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseMarkdown(data)
	}
}

// ParseMarkdown reads a definition from frontmatter
func ParseMarkdown(source []byte) (registry.EnvironmentSpec, error) {
	var spec registry.EnvironmentSpec
	body, err := frontmatter.MustParse(bytes.NewReader(source), &spec, yamlFormat)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return spec, ErrNoDefinition
		}
		return spec, fmt.Errorf("parse frontmatter: %w", err)
	}
	if strings.TrimSpace(spec.Description) == "" {
		spec.Description = strings.TrimSpace(string(body))
	}
	return finish(spec), nil
}

// ParseYAML reads a bare YAML definition
func ParseYAML(source []byte) (registry.EnvironmentSpec, error) {
	var spec registry.EnvironmentSpec
	if err := yaml.Unmarshal(source, &spec); err != nil {
		return spec, fmt.Errorf("parse yaml: %w", err)
	}
	if spec.Name == "" && spec.ProjectPath == "" {
		return spec, ErrNoDefinition
	}
	return finish(spec), nil
}

func finish(spec registry.EnvironmentSpec) registry.EnvironmentSpec {
	if spec.EnvVars == nil {
		spec.EnvVars = registry.EnvVars{}
	}
	if spec.Commands == nil {
		spec.Commands = []string{}
	}
	spec.Normalize()
	return spec
}
