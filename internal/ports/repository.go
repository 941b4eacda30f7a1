package ports

import (
	"context"

	"addon-installer/internal/types"
)

// RepositoryPort acquires scoped checkouts. Every successful Acquire must be
// paired with a Release, whatever happens in between.
type RepositoryPort interface {
	Acquire(ctx context.Context, url string, branch string, commit string) (types.Checkout, error)
	Release(checkout types.Checkout) error
}
