package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_NotARepo(t *testing.T) {
	assert.Nil(t, Inspect(t.TempDir()))
}

func TestInspect_MissingPath(t *testing.T) {
	assert.Nil(t, Inspect(filepath.Join(t.TempDir(), "does", "not", "exist")))
}

func TestInspect_EmptyRepo(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	assert.Nil(t, Inspect(dir), "no commits means no HEAD")
}

func TestInspect_BranchFromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		AllowEmptyCommits: true,
		Author:            &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	sub := filepath.Join(dir, "src", "app")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	head, err := repo.Head()
	require.NoError(t, err)

	info := Inspect(sub)
	require.NotNil(t, info)
	assert.Equal(t, head.Name().Short(), info.Branch)
	assert.Equal(t, hash.String()[:12], info.Commit)
	assert.False(t, info.Detached)
}
