package paths

import (
	"os"
	"path/filepath"
)

func DefaultConfigDir() string {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, "envswitch")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "envswitch")
}

func DefaultRegistryPath() string {
	return filepath.Join(DefaultConfigDir(), "environments.yaml")
}

// Expand resolves a leading ~ and makes p absolute. Existence is not checked.
func Expand(p string) (string, error) {
	if p == "~" || len(p) > 1 && p[0] == '~' && os.IsPathSeparator(p[1]) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, p[1:])
	}
	return filepath.Abs(p)
}
