package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addon-installer/internal/types"
)

type recordedCommand struct {
	Dir  string
	Name string
	Args []string
}

// fakeRunner records every command and fails the one whose joined args
// contain failOn.
type fakeRunner struct {
	commands []recordedCommand
	failOn   string
	output   string
}

func (r *fakeRunner) Run(_ context.Context, dir string, name string, args ...string) ([]byte, error) {
	r.commands = append(r.commands, recordedCommand{Dir: dir, Name: name, Args: args})
	if r.failOn != "" && strings.Contains(strings.Join(args, " "), r.failOn) {
		return []byte(r.output), errors.New("exit status 1")
	}
	return []byte(r.output), nil
}

func (r *fakeRunner) argv() [][]string {
	out := make([][]string, 0, len(r.commands))
	for _, command := range r.commands {
		out = append(out, append([]string{command.Name}, command.Args...))
	}
	return out
}

func TestRemotePatchCommandSequence(t *testing.T) {
	runner := &fakeRunner{}
	resolver := NewURLResolver(map[string]string{})
	applier, err := NewPatchApplier(types.PatchSpec{
		Kind:   types.PatchKindRemote,
		URL:    "https://github.com/Numigi/odoo",
		Branch: "14.0-fix",
	}, resolver, runner)
	require.NoError(t, err)

	require.NoError(t, applier.Apply(context.Background(), "/tmp/wc"))

	want := [][]string{
		{"git", "remote", "add", "--end-of-options", "patch", "https://github.com/Numigi/odoo"},
		{"git", "fetch", "--end-of-options", "patch", "14.0-fix"},
		{"git", "merge", "-m", "patch", "--end-of-options", "patch/14.0-fix"},
		{"git", "remote", "remove", "patch"},
	}
	if diff := cmp.Diff(want, runner.argv()); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
	for _, command := range runner.commands {
		assert.Equal(t, "/tmp/wc", command.Dir)
	}
}

func TestRemotePatchMergesPinnedCommit(t *testing.T) {
	runner := &fakeRunner{}
	applier, err := NewPatchApplier(types.PatchSpec{
		Kind:   types.PatchKindRemote,
		URL:    "https://github.com/Numigi/odoo",
		Branch: "14.0-fix",
		Commit: "abc123",
	}, NewURLResolver(map[string]string{}), runner)
	require.NoError(t, err)

	require.NoError(t, applier.Apply(context.Background(), "/tmp/wc"))
	assert.Equal(t, []string{"git", "merge", "-m", "patch", "--end-of-options", "abc123"}, runner.argv()[2])
}

func TestRemotePatchFailureStopsSequence(t *testing.T) {
	runner := &fakeRunner{failOn: "merge", output: "CONFLICT (content): Merge conflict in README"}
	applier, err := NewPatchApplier(types.PatchSpec{
		Kind:   types.PatchKindRemote,
		URL:    "https://github.com/Numigi/odoo",
		Branch: "14.0-fix",
	}, NewURLResolver(map[string]string{}), runner)
	require.NoError(t, err)

	err = applier.Apply(context.Background(), "/tmp/wc")
	require.Error(t, err)
	assert.Equal(t, types.KindPatch, types.KindOf(err))
	assert.Contains(t, err.Error(), "Merge conflict")
	assert.Len(t, runner.commands, 3)
}

func TestRemotePatchRedactsResolvedURL(t *testing.T) {
	runner := &fakeRunner{failOn: "fetch", output: "fatal: could not read from https://s3cret@example.com/repo"}
	applier, err := NewPatchApplier(types.PatchSpec{
		Kind:   types.PatchKindRemote,
		URL:    "https://{{TOKEN}}@example.com/repo",
		Branch: "main",
	}, NewURLResolver(map[string]string{"TOKEN": "s3cret"}), runner)
	require.NoError(t, err)

	err = applier.Apply(context.Background(), "/tmp/wc")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "s3cret")
	assert.Contains(t, err.Error(), "{{TOKEN}}")
	assert.Equal(t, "https://s3cret@example.com/repo", runner.commands[0].Args[4])
}

func TestRemotePatchUnresolvedURL(t *testing.T) {
	runner := &fakeRunner{}
	applier, err := NewPatchApplier(types.PatchSpec{
		Kind:   types.PatchKindRemote,
		URL:    "https://{{TOKEN}}@example.com/repo",
		Branch: "main",
	}, NewURLResolver(map[string]string{}), runner)
	require.NoError(t, err)

	err = applier.Apply(context.Background(), "/tmp/wc")
	require.Error(t, err)
	assert.Equal(t, types.KindResolution, types.KindOf(err))
	assert.Empty(t, runner.commands)
}

func TestFilePatchRunsGitApply(t *testing.T) {
	runner := &fakeRunner{}
	applier, err := NewPatchApplier(types.PatchSpec{Kind: types.PatchKindFile, File: "/patches/fix.patch"}, NewURLResolver(map[string]string{}), runner)
	require.NoError(t, err)

	require.NoError(t, applier.Apply(context.Background(), "/tmp/wc"))
	assert.Equal(t, [][]string{{"git", "apply", "--end-of-options", "/patches/fix.patch"}}, runner.argv())
	assert.Equal(t, "/patches/fix.patch", applier.Source())
}

func TestFilePatchFailure(t *testing.T) {
	runner := &fakeRunner{failOn: "apply", output: "error: patch failed: README:1"}
	applier, err := NewPatchApplier(types.PatchSpec{Kind: types.PatchKindFile, File: "/patches/fix.patch"}, NewURLResolver(map[string]string{}), runner)
	require.NoError(t, err)

	err = applier.Apply(context.Background(), "/tmp/wc")
	require.Error(t, err)
	assert.Equal(t, types.KindPatch, types.KindOf(err))
	assert.Contains(t, err.Error(), "/patches/fix.patch")
}

func TestNewPatchApplierUnknownVariant(t *testing.T) {
	_, err := NewPatchApplier(types.PatchSpec{Kind: "svn"}, NewURLResolver(map[string]string{}), &fakeRunner{})
	require.Error(t, err)
	assert.Equal(t, types.KindConfiguration, types.KindOf(err))
}

func TestPatchValuesStayPositional(t *testing.T) {
	runner := &fakeRunner{}
	applier, err := NewPatchApplier(types.PatchSpec{
		Kind:   types.PatchKindRemote,
		URL:    "https://github.com/Numigi/odoo",
		Branch: "--upload-pack=touch /tmp/owned",
	}, NewURLResolver(map[string]string{}), runner)
	require.NoError(t, err)

	require.NoError(t, applier.Apply(context.Background(), "/tmp/wc"))
	for _, command := range runner.commands[:3] {
		marker := -1
		for idx, arg := range command.Args {
			if arg == "--end-of-options" {
				marker = idx
			}
			if arg == "--upload-pack=touch /tmp/owned" || arg == "patch/--upload-pack=touch /tmp/owned" {
				assert.Greater(t, idx, marker, "value before --end-of-options in %v", command.Args)
			}
		}
		assert.GreaterOrEqual(t, marker, 0, "missing --end-of-options in %v", command.Args)
	}
}
