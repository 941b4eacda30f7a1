package adapters

import (
	"context"
	"os/exec"

	"addon-installer/internal/ports"
	"addon-installer/internal/shared"
)

// ExecCommandAdapter runs programs directly with os/exec. Arguments are
// passed as a vector and no shell is involved.
type ExecCommandAdapter struct{}

func NewExecCommandAdapter() ExecCommandAdapter {
	return ExecCommandAdapter{}
}

var _ ports.CommandPort = ExecCommandAdapter{}

func (a ExecCommandAdapter) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, shared.CommandError(output, err)
	}
	return output, nil
}
