package shell

import "strings"

// posixSafe reports whether s can be written without quoting in sh.
func posixSafe(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("_@%+=:,./-", c):
		default:
			return false
		}
	}
	return true
}

// posixQuote single-quotes s when needed; embedded quotes become '\''.
func posixQuote(s string) string {
	if posixSafe(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// posixPath quotes a path but leaves a leading ~/ bare so the shell expands it.
func posixPath(p string) string {
	if p == "~" {
		return p
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if rest == "" {
			return "~/"
		}
		return "~/" + posixQuote(rest)
	}
	return posixQuote(p)
}

const cmdSpecial = " \t\r\n&|<>^()\"%!"

// cmdNeedsQuote reports whether s must be wrapped in double quotes for cmd.exe.
func cmdNeedsQuote(s string) bool {
	return s == "" || strings.ContainsAny(s, cmdSpecial)
}

// cmdEscape doubles % so batch files pass it through literally.
// Double quotes do not stop % expansion.
func cmdEscape(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

func cmdQuote(s string) string {
	if cmdNeedsQuote(s) {
		return `"` + cmdEscape(s) + `"`
	}
	return s
}
