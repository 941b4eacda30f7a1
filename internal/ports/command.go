package ports

import "context"

// CommandPort runs an external program with a discrete argument vector,
// never through a shell, and returns its combined output.
type CommandPort interface {
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}
