package ports

import "addon-installer/internal/types"

type LockWriterPort interface {
	Write(path string, lock types.InstallLock) error
}

type LockReaderPort interface {
	Read(path string) (types.InstallLock, error)
}
