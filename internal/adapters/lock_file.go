package adapters

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"addon-installer/internal/ports"
	"addon-installer/internal/types"
)

// LockFileAdapter persists install locks as YAML.
type LockFileAdapter struct{}

func NewLockFileAdapter() LockFileAdapter {
	return LockFileAdapter{}
}

var (
	_ ports.LockWriterPort = LockFileAdapter{}
	_ ports.LockReaderPort = LockFileAdapter{}
)

func (a LockFileAdapter) Write(path string, lock types.InstallLock) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create lock directory").
			WithCause(err)
	}
	data, err := yaml.Marshal(lock)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode install lock").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write install lock " + path).
			WithCause(err)
	}
	return nil
}

func (a LockFileAdapter) Read(path string) (types.InstallLock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.InstallLock{}, errbuilder.New().
			WithCode(types.CodeConfiguration).
			WithMsg("install lock not found: " + path).
			WithCause(err)
	}
	var lock types.InstallLock
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return types.InstallLock{}, errbuilder.New().
			WithCode(types.CodeConfiguration).
			WithMsg("failed to parse install lock " + path).
			WithCause(err)
	}
	if lock.GeneratedAt != "" {
		generated, err := parseLockTime(lock.GeneratedAt)
		if err != nil {
			return types.InstallLock{}, errbuilder.New().
				WithCode(types.CodeConfiguration).
				WithMsg("invalid generated_at in install lock " + path).
				WithCause(err)
		}
		lock.GeneratedAt = generated.Format(time.RFC3339)
	}
	return lock, nil
}
