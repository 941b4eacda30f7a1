package app

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"addon-installer/internal/types"
)

func TestInspectApp(t *testing.T) {
	lockFile := filepath.Join(t.TempDir(), "addons.lock.yaml")
	service := NewService()
	require.NoError(t, service.LockWriter.Write(lockFile, types.InstallLock{
		GeneratedAt: "2026-01-02T03:04:05Z",
		Destination: "/srv/odoo/3rd",
		Entries: []types.LockEntry{
			{Repository: "https://github.com/odoo/odoo", Branch: "14.0", ResolvedCommit: "aaa", Base: true, Modules: []string{"base", "web"}},
			{Repository: "https://github.com/OCA/website", Branch: "14.0", Commit: "bbb", ResolvedCommit: "bbb", Patches: 1, Modules: []string{"website_a"}},
		},
	}))

	result, err := service.Inspect(InspectRequest{LockFile: lockFile})
	require.NoError(t, err)
	if diff := cmp.Diff(3, result.ModuleCount); diff != "" {
		t.Fatalf("unexpected module count (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(2, len(result.Entries)); diff != "" {
		t.Fatalf("unexpected entry count (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("14.0", result.Entries[0].Ref); diff != "" {
		t.Fatalf("unexpected ref (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("bbb", result.Entries[1].Ref); diff != "" {
		t.Fatalf("unexpected pinned ref (-want +got):\n%s", diff)
	}
}

func TestInspectRequiresLockFile(t *testing.T) {
	_, err := NewService().Inspect(InspectRequest{})
	require.Error(t, err)
}
