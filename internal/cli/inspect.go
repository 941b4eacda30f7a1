package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"addon-installer/internal/app"
)

type inspectOptions struct {
	LockFile string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:     "inspect",
		Short:   "Show what an install lock recorded",
		PreRunE: bindFlags(flagBinding{key: "lock_file", flag: "lock-file"}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.LockFile, "lock-file", "", "Install lock path")
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	lockFile, err := expandPath(resolveString(cmd, opts.LockFile, "lock_file", "lock-file"))
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{LockFile: lockFile})
	if err != nil {
		return err
	}

	fmt.Printf("generated: %s\n", result.GeneratedAt)
	fmt.Printf("destination: %s\n", result.Destination)
	fmt.Printf("repositories: %d, modules: %d\n", len(result.Entries), result.ModuleCount)
	for _, entry := range result.Entries {
		label := entry.Repository
		if entry.Base {
			label += " " + color.YellowString("[base]")
		}
		fmt.Printf("- %s@%s -> %s (%d patches)\n", label, entry.Ref, shortCommit(entry.ResolvedCommit), entry.Patches)
		if len(entry.Modules) > 0 {
			fmt.Printf("  %s\n", strings.Join(entry.Modules, ", "))
		}
	}
	return nil
}

func shortCommit(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
