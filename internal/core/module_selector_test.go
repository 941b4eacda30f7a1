package core

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addon-installer/internal/policies"
	"addon-installer/internal/types"
	"addon-installer/tests/testutil"
)

func moduleNames(modules []types.ModuleUnit) []string {
	names := make([]string, 0, len(modules))
	for _, module := range modules {
		names = append(names, module.Name)
	}
	return names
}

func TestSelectModules(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		testutil.WriteModule(t, root, name)
	}
	testutil.WriteFile(t, filepath.Join(root, "README.md"), "docs")
	testutil.WriteFile(t, filepath.Join(root, "setup", "setup.py"), "")

	tests := []struct {
		name     string
		excludes []string
		includes []string
		want     []string
	}{
		{name: "all", want: []string{"a", "b", "c"}},
		{name: "exclude", excludes: []string{"b"}, want: []string{"a", "c"}},
		{name: "include", includes: []string{"a"}, want: []string{"a"}},
		{name: "exclude wins", excludes: []string{"a"}, includes: []string{"a", "c"}, want: []string{"c"}},
		{name: "empty include", includes: []string{}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modules, err := CollectModules(SelectModules([]string{root}, policies.NewModulePolicy(tt.excludes, tt.includes)))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, moduleNames(modules)); diff != "" {
				t.Fatalf("modules mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectModulesAcceptsLegacyMarker(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, "legacy", "__openerp__.py"), "{}")
	testutil.WriteFile(t, filepath.Join(root, "fake", "__manifest__.py", "nested"), "")

	modules, err := CollectModules(SelectModules([]string{root}, policies.NewModulePolicy(nil, nil)))
	require.NoError(t, err)
	assert.Equal(t, []string{"legacy"}, moduleNames(modules))
}

func TestSelectModulesSkipsMissingRoot(t *testing.T) {
	root := t.TempDir()
	testutil.WriteModule(t, root, "a")

	modules, err := CollectModules(SelectModules([]string{filepath.Join(root, "missing"), root}, policies.NewModulePolicy(nil, nil)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, moduleNames(modules))
}

func TestSelectModulesStopsEarly(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		testutil.WriteModule(t, root, name)
	}
	seen := 0
	for _, err := range SelectModules([]string{root}, policies.NewModulePolicy(nil, nil)) {
		require.NoError(t, err)
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestModuleRoots(t *testing.T) {
	generic := ModuleRoots("/tmp/co", types.InstallRequest{Placement: types.PlacementGeneric})
	assert.Equal(t, []string{"/tmp/co"}, generic)

	base := ModuleRoots("/tmp/co", types.InstallRequest{Placement: types.PlacementBase, PlatformRoot: "odoo"})
	assert.Equal(t, []string{
		filepath.Join("/tmp/co", "addons"),
		filepath.Join("/tmp/co", "odoo", "addons"),
	}, base)
}
