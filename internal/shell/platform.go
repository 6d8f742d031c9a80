package shell

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform selects the command dialect the Synthesizer writes.
type Platform int

const (
	// POSIX covers sh, bash and zsh
	POSIX Platform = iota
	// Windows covers cmd.exe
	Windows
)

func (p Platform) String() string {
	switch p {
	case Windows:
		return "windows"
	default:
		return "posix"
	}
}

// Current returns the platform of the running binary
func Current() Platform {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return POSIX
}

// ParsePlatform accepts "posix", "windows" or "auto"/"" (the running platform).
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Current(), nil
	case "posix", "sh", "bash", "zsh", "unix":
		return POSIX, nil
	case "windows", "cmd":
		return Windows, nil
	}
	return POSIX, fmt.Errorf("unknown platform %q (want posix, windows or auto)", s)
}

func (p Platform) separator() string {
	if p == Windows {
		return `\`
	}
	return "/"
}

// join appends elems to base using the target's separator, not the host's.
func (p Platform) join(base string, elems ...string) string {
	sep := p.separator()
	return strings.TrimRight(base, `/\`) + sep + strings.Join(elems, sep)
}
