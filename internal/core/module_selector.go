package core

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"addon-installer/internal/policies"
	"addon-installer/internal/types"
)

// ModuleRoots lists the directories scanned for modules in a checkout.
// Base platform repositories keep modules both in the top-level addons
// directory and inside the platform package, and patches may touch either.
func ModuleRoots(checkoutDir string, request types.InstallRequest) []string {
	if request.Placement == types.PlacementBase {
		return []string{
			filepath.Join(checkoutDir, types.AddonsDir),
			filepath.Join(checkoutDir, request.PlatformRoot, types.AddonsDir),
		}
	}
	return []string{checkoutDir}
}

// SelectModules yields the modules under roots allowed by policy. Each root
// is read once when iteration reaches it; a missing root is treated as empty.
// Iteration stops after the first error.
func SelectModules(roots []string, policy policies.ModulePolicy) iter.Seq2[types.ModuleUnit, error] {
	return func(yield func(types.ModuleUnit, error) bool) {
		for _, root := range roots {
			entries, err := os.ReadDir(root)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				yield(types.ModuleUnit{}, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to list modules in "+root).
					WithCause(err))
				return
			}
			for _, entry := range entries {
				path := filepath.Join(root, entry.Name())
				if !IsModule(path) || !policy.Allows(entry.Name()) {
					continue
				}
				if !yield(types.ModuleUnit{Name: entry.Name(), Path: path}, nil) {
					return
				}
			}
		}
	}
}

// CollectModules drains a module sequence.
func CollectModules(modules iter.Seq2[types.ModuleUnit, error]) ([]types.ModuleUnit, error) {
	var out []types.ModuleUnit
	for module, err := range modules {
		if err != nil {
			return nil, err
		}
		out = append(out, module)
	}
	return out, nil
}

// IsModule reports whether path is a directory holding a module marker file.
func IsModule(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	for _, marker := range types.ModuleMarkers {
		markerInfo, err := os.Stat(filepath.Join(path, marker))
		if err == nil && markerInfo.Mode().IsRegular() {
			return true
		}
	}
	return false
}
