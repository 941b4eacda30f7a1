package adapters

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addon-installer/tests/testutil"
)

func TestExecCommandRunsInDirectory(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.Git(t, dir, "init", "-q")

	output, err := NewExecCommandAdapter().Run(context.Background(), dir, "git", "rev-parse", "--is-inside-work-tree")
	require.NoError(t, err)
	assert.Equal(t, "true", strings.TrimSpace(string(output)))
}

func TestExecCommandArgumentsAreNotShellExpanded(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.Git(t, dir, "init", "-q")

	_, err := NewExecCommandAdapter().Run(context.Background(), dir, "git", "apply", "$(touch pwned); *.patch")
	require.Error(t, err)
	assert.NoFileExists(t, dir+"/pwned")
}

func TestExecCommandFailureKeepsOutput(t *testing.T) {
	testutil.RequireGit(t)
	output, err := NewExecCommandAdapter().Run(context.Background(), t.TempDir(), "git", "no-such-subcommand")
	require.Error(t, err)
	assert.NotEmpty(t, output)
	assert.Contains(t, err.Error(), "no-such-subcommand")
}
