// Package shell turns a stored environment into the literal commands that
// activate it in a given shell. Nothing here executes anything.
package shell

import (
	"github.com/gurisko/envswitch/internal/registry"
)

// Synthesizer writes activation commands for one platform.
// It satisfies registry.Synthesizer.
type Synthesizer struct {
	Platform Platform
}

// New returns a Synthesizer for p
func New(p Platform) Synthesizer {
	return Synthesizer{Platform: p}
}

// Commands returns, in order: the directory change, the virtualenv
// activation, one assignment per variable in stored order, then the
// user's commands verbatim. Unset parts are skipped.
func (s Synthesizer) Commands(env *registry.Environment) []string {
	if env == nil {
		return []string{}
	}
	out := make([]string, 0, 2+len(env.EnvVars)+len(env.Commands))

	if env.ProjectPath != "" {
		out = append(out, s.changeDir(env.ProjectPath))
	}
	if env.PythonEnv != "" {
		out = append(out, s.activate(env.PythonEnv))
	}
	for _, ev := range env.EnvVars {
		out = append(out, s.setVar(ev.Key, ev.Value))
	}
	out = append(out, env.Commands...)
	return out
}

// Commands is shorthand for New(p).Commands(env).
func Commands(env *registry.Environment, p Platform) []string {
	return New(p).Commands(env)
}

func (s Synthesizer) changeDir(path string) string {
	if s.Platform == Windows {
		return "cd /d " + cmdQuote(path)
	}
	return "cd " + posixPath(path)
}

func (s Synthesizer) activate(venv string) string {
	if s.Platform == Windows {
		return cmdQuote(s.Platform.join(venv, "Scripts", "activate.bat"))
	}
	return "source " + posixPath(s.Platform.join(venv, "bin", "activate"))
}

func (s Synthesizer) setVar(key, value string) string {
	if s.Platform == Windows {
		if cmdNeedsQuote(value) {
			return `set "` + key + "=" + cmdEscape(value) + `"`
		}
		return "set " + key + "=" + value
	}
	return "export " + key + "=" + posixQuote(value)
}
