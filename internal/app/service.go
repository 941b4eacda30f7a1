package app

import (
	"time"

	"github.com/google/uuid"

	"addon-installer/internal/adapters"
	"addon-installer/internal/ports"
)

type Service struct {
	Manifests   ports.ManifestPort
	Environment ports.EnvironmentPort
	Repository  ports.RepositoryPort
	Runner      ports.CommandPort
	LockWriter  ports.LockWriterPort
	LockReader  ports.LockReaderPort
	Clock       func() time.Time
	NewRunID    func() string
}

func NewService() Service {
	lock := adapters.NewLockFileAdapter()
	return Service{
		Manifests:   adapters.NewManifestFileAdapter(),
		Environment: adapters.NewEnvironmentAdapter(),
		Repository:  adapters.NewGitCheckoutAdapter(""),
		Runner:      adapters.NewExecCommandAdapter(),
		LockWriter:  lock,
		LockReader:  lock,
		Clock:       time.Now,
		NewRunID:    uuid.NewString,
	}
}

// WithTmpDir returns a copy of the service whose checkouts live under dir.
func (s Service) WithTmpDir(dir string) Service {
	s.Repository = adapters.NewGitCheckoutAdapter(dir)
	return s
}
