package ports

import "addon-installer/internal/types"

type ManifestPort interface {
	Load(path string) (types.Manifest, error)
}
