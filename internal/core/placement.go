package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"addon-installer/internal/types"
)

// PlaceModules relocates the selected modules of a checkout into
// destination using the strategy of the request.
func PlaceModules(ctx context.Context, request types.InstallRequest, checkoutDir string, modules []types.ModuleUnit, destination string) error {
	switch request.Placement {
	case types.PlacementBase:
		return PlaceBase(ctx, checkoutDir, request.PlatformRoot, modules, destination)
	case types.PlacementGeneric, "":
		return PlaceGeneric(ctx, modules, destination)
	default:
		return configurationError(fmt.Sprintf("unknown placement %q", request.Placement))
	}
}

// PlaceGeneric force-moves every module directly into destination.
func PlaceGeneric(ctx context.Context, modules []types.ModuleUnit, destination string) error {
	if err := requireDirectory(destination); err != nil {
		return err
	}
	for _, module := range modules {
		if err := ForceMove(module.Path, destination); err != nil {
			return err
		}
		log.Ctx(ctx).Debug().Str("module", module.Name).Str("destination", destination).Msg("module placed")
	}
	return nil
}

// PlaceBase deploys a base platform checkout. Selected modules from the
// top-level addons directory first join <root>/addons, then the whole
// <root> directory is force-moved into destination.
func PlaceBase(ctx context.Context, checkoutDir string, platformRoot string, modules []types.ModuleUnit, destination string) error {
	if err := requireDirectory(destination); err != nil {
		return err
	}
	if platformRoot == "" {
		platformRoot = types.DefaultPlatformRoot
	}
	platformDir := filepath.Join(checkoutDir, platformRoot)
	if err := requireDirectory(platformDir); err != nil {
		return errbuilder.New().
			WithCode(types.CodePlacement).
			WithMsg(fmt.Sprintf("base repository has no %s directory", platformRoot)).
			WithCause(err)
	}
	nested := filepath.Join(platformDir, types.AddonsDir)
	topLevel := filepath.Join(checkoutDir, types.AddonsDir)
	var lifted []types.ModuleUnit
	for _, module := range modules {
		if filepath.Dir(module.Path) == topLevel {
			lifted = append(lifted, module)
		}
	}
	if len(lifted) > 0 {
		if err := requireDirectory(nested); err != nil {
			return errbuilder.New().
				WithCode(types.CodePlacement).
				WithMsg(fmt.Sprintf("base repository has no %s directory", filepath.Join(platformRoot, types.AddonsDir))).
				WithCause(err)
		}
	}
	for _, module := range lifted {
		if err := ForceMove(module.Path, nested); err != nil {
			return err
		}
	}
	if err := ForceMove(platformDir, destination); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("platform", platformRoot).Str("destination", destination).Msg("platform placed")
	return nil
}

// ForceMove moves source into the existing directory destination. An entry
// of the same name already in destination is deleted first, so the result
// replaces instead of merging.
func ForceMove(source string, destination string) error {
	if err := requireDirectory(destination); err != nil {
		return err
	}
	target := filepath.Join(destination, filepath.Base(source))
	if _, err := os.Lstat(target); err == nil {
		if err := os.RemoveAll(target); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to replace " + target).
				WithCause(err)
		}
	}
	if err := moveTree(source, target); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to move %s to %s", source, destination)).
			WithCause(err)
	}
	return nil
}

func requireDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errbuilder.New().
			WithCode(types.CodePlacement).
			WithMsg(fmt.Sprintf("the code could not be moved to %s because the folder does not exist", path)).
			WithCause(err)
	}
	if !info.IsDir() {
		return errbuilder.New().
			WithCode(types.CodePlacement).
			WithMsg(fmt.Sprintf("the code could not be moved to %s because it is not a directory", path))
	}
	return nil
}

// moveTree renames source to target, copying across filesystems when a
// rename is not possible.
func moveTree(source string, target string) error {
	err := os.Rename(source, target)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copyTree(source, target); err != nil {
		_ = os.RemoveAll(target)
		return err
	}
	return os.RemoveAll(source)
}

func copyTree(source string, target string) error {
	return filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(target, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.MkdirAll(dest, info.Mode().Perm())
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, dest)
		default:
			return copyFile(path, dest, info.Mode().Perm())
		}
	})
}

func copyFile(source string, target string, perm fs.FileMode) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
