package app

import (
	"strings"

	"addon-installer/internal/types"
)

// Inspect summarizes an install lock written by a previous run.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	lockFile := strings.TrimSpace(req.LockFile)
	if lockFile == "" {
		return InspectResult{}, configurationError("lock file is required")
	}
	lock, err := s.LockReader.Read(lockFile)
	if err != nil {
		return InspectResult{}, err
	}
	result := InspectResult{
		GeneratedAt: lock.GeneratedAt,
		Destination: lock.Destination,
	}
	for _, entry := range lock.Entries {
		result.ModuleCount += len(entry.Modules)
		result.Entries = append(result.Entries, InspectEntry{
			Repository:     entry.Repository,
			Ref:            refOf(entry),
			ResolvedCommit: entry.ResolvedCommit,
			Patches:        entry.Patches,
			Base:           entry.Base,
			Modules:        entry.Modules,
		})
	}
	return result, nil
}

func refOf(entry types.LockEntry) string {
	if entry.Commit != "" {
		return entry.Commit
	}
	return entry.Branch
}
