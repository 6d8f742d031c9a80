// Package gitinfo reports git details about an environment's project directory.
package gitinfo

import (
	"github.com/go-git/go-git/v5"
)

// Info describes the repository containing a project path
type Info struct {
	Branch   string `json:"branch,omitempty"`
	Commit   string `json:"commit,omitempty"`
	Detached bool   `json:"detached,omitempty"`
}

// Inspect returns repository info for path, searching parent directories for
// .git. It returns nil when path is not inside a repository or HEAD can't be
// resolved (for example a fresh repo with no commits).
func Inspect(path string) *Info {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil
	}

	head, err := repo.Head()
	if err != nil {
		return nil
	}

	info := &Info{Commit: head.Hash().String()[:12]}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	} else {
		info.Detached = true
	}
	return info
}
