package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"addon-installer/internal/core"
	"addon-installer/internal/types"
)

// Install installs every entry of a manifest in order and stops at the
// first failure. Entries placed before the failure stay placed.
func (s Service) Install(ctx context.Context, req InstallRequest) (InstallResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return InstallResult{}, configurationError("manifest path is required")
	}
	manifest, err := s.Manifests.Load(manifestPath)
	if err != nil {
		return InstallResult{}, err
	}
	workDir, err := filepath.Abs(filepath.Dir(manifestPath))
	if err != nil {
		return InstallResult{}, configurationError("failed to resolve manifest directory: " + err.Error())
	}
	requests, err := core.NewRequestBuilder(workDir, req.Languages).BuildAll(manifest.Records)
	if err != nil {
		return InstallResult{}, err
	}
	return s.run(ctx, runOptions{
		requests:    requests,
		destination: req.Destination,
		envFile:     req.EnvFile,
		lockFile:    req.LockFile,
		jobs:        req.Jobs,
	})
}

// InstallOne installs a single repository described on the command line.
func (s Service) InstallOne(ctx context.Context, req InstallOneRequest) (InstallResult, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return InstallResult{}, configurationError("failed to resolve working directory: " + err.Error())
	}
	record := types.ManifestRecord{
		URL:          req.URL,
		Branch:       req.Branch,
		Commit:       req.Commit,
		Excludes:     req.Excludes,
		Includes:     req.Includes,
		Base:         req.Base,
		PlatformRoot: req.PlatformRoot,
	}
	for _, file := range req.PatchFiles {
		record.Patches = append(record.Patches, types.ManifestPatch{File: file})
	}
	request, err := core.NewRequestBuilder(workDir, req.Languages).Build(record)
	if err != nil {
		return InstallResult{}, err
	}
	return s.run(ctx, runOptions{
		requests:    []types.InstallRequest{request},
		destination: req.Destination,
		envFile:     req.EnvFile,
		lockFile:    req.LockFile,
		jobs:        1,
	})
}

type runOptions struct {
	requests    []types.InstallRequest
	destination string
	envFile     string
	lockFile    string
	jobs        int
}

func (s Service) run(ctx context.Context, opts runOptions) (InstallResult, error) {
	destination := strings.TrimSpace(opts.destination)
	if destination == "" {
		return InstallResult{}, configurationError("destination is required")
	}
	env, err := s.Environment.Load(opts.envFile)
	if err != nil {
		return InstallResult{}, err
	}

	runID := s.NewRunID()
	logger := log.Ctx(ctx).With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)
	logger.Info().Int("requests", len(opts.requests)).Str("destination", destination).Int("jobs", opts.jobs).Msg("install started")

	installer := core.NewInstaller(s.Repository, s.Runner, core.NewURLResolver(env))
	var entries []types.LockEntry
	if opts.jobs > 1 && len(opts.requests) > 1 {
		entries, err = installConcurrently(ctx, installer, opts.requests, destination, opts.jobs)
	} else {
		entries, err = installSequentially(ctx, installer, opts.requests, destination)
	}
	result := InstallResult{RunID: runID, Destination: destination, Entries: entries}
	if err != nil && ctx.Err() != nil && errbuilder.CodeOf(err) != errbuilder.CodeCanceled {
		err = interruptedError(err)
	}
	if err != nil {
		logger.Error().Err(err).Int("installed", len(entries)).Msg("install stopped")
		return result, err
	}

	if lockFile := strings.TrimSpace(opts.lockFile); lockFile != "" {
		lock := types.InstallLock{
			GeneratedAt: s.Clock().UTC().Format(time.RFC3339),
			Destination: destination,
			Entries:     entries,
		}
		if err := s.LockWriter.Write(lockFile, lock); err != nil {
			return result, err
		}
		result.LockFile = lockFile
	}
	logger.Info().Int("installed", len(entries)).Msg("install finished")
	return result, nil
}

func installSequentially(ctx context.Context, installer core.Installer, requests []types.InstallRequest, destination string) ([]types.LockEntry, error) {
	entries := make([]types.LockEntry, 0, len(requests))
	for _, request := range requests {
		if err := ctx.Err(); err != nil {
			return entries, interruptedError(err)
		}
		entry, err := installer.Install(ctx, request, destination)
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// installConcurrently prepares up to jobs checkouts at once but places them
// strictly in request order. The first failure cancels every other request
// and nothing after it is placed.
func installConcurrently(ctx context.Context, installer core.Installer, requests []types.InstallRequest, destination string, jobs int) ([]types.LockEntry, error) {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	turns := make([]chan struct{}, len(requests)+1)
	for idx := range turns {
		turns[idx] = make(chan struct{})
	}
	close(turns[0])
	placed := make([]*types.LockEntry, len(requests))

	for idx, request := range requests {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			prepared, err := installer.Prepare(groupCtx, request)
			if err != nil {
				return err
			}
			defer prepared.Release()
			select {
			case <-turns[idx]:
			case <-groupCtx.Done():
				return interruptedError(groupCtx.Err())
			}
			entry, err := prepared.Place(destination)
			if err != nil {
				return err
			}
			placed[idx] = &entry
			close(turns[idx+1])
			return nil
		})
	}
	err := group.Wait()
	if err == nil && ctx.Err() != nil {
		err = interruptedError(ctx.Err())
	}

	entries := make([]types.LockEntry, 0, len(requests))
	for _, entry := range placed {
		if entry == nil {
			break
		}
		entries = append(entries, *entry)
	}
	return entries, err
}

func configurationError(msg string) error {
	return errbuilder.New().
		WithCode(types.CodeConfiguration).
		WithMsg(msg)
}

func interruptedError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeCanceled).
		WithMsg("install interrupted").
		WithCause(err)
}
