// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var gitIdentity = []string{
	"GIT_AUTHOR_NAME=addon-installer",
	"GIT_AUTHOR_EMAIL=dev@example.com",
	"GIT_COMMITTER_NAME=addon-installer",
	"GIT_COMMITTER_EMAIL=dev@example.com",
}

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// RequireGit skips the test when no git binary is installed.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
}

// SetGitIdentity exports a committer identity for git processes started by
// the code under test, which inherit the environment.
func SetGitIdentity(t *testing.T) {
	t.Helper()
	for _, pair := range gitIdentity {
		key, value, _ := strings.Cut(pair, "=")
		t.Setenv(key, value)
	}
}

// Git runs git in dir and returns its trimmed output.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), gitIdentity...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
	return strings.TrimSpace(string(output))
}

// WriteFile creates path and its parents with content.
func WriteFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// WriteModule creates an add-on module directory with a manifest marker
// and the given translation languages.
func WriteModule(t *testing.T, root string, name string, languages ...string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	WriteFile(t, filepath.Join(dir, "__manifest__.py"), "{'name': '"+name+"'}\n")
	for _, lang := range languages {
		WriteFile(t, filepath.Join(dir, "i18n", lang+".po"), "msgid \"\"\n")
	}
	return dir
}

// InitRepo turns dir into a git repository on branch with everything
// currently in dir committed. It returns the commit hash.
func InitRepo(t *testing.T, dir string, branch string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	Git(t, dir, "init", "-q")
	Git(t, dir, "checkout", "-q", "-b", branch)
	return CommitAll(t, dir, "initial")
}

// CommitAll stages and commits every change in dir and returns the new
// commit hash.
func CommitAll(t *testing.T, dir string, message string) string {
	t.Helper()
	Git(t, dir, "add", "-A")
	Git(t, dir, "commit", "-q", "--allow-empty", "-m", message)
	return Git(t, dir, "rev-parse", "HEAD")
}

// ListDir returns the sorted entry names of dir.
func ListDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}
