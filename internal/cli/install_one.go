package cli

import (
	"context"

	"github.com/spf13/cobra"

	"addon-installer/internal/app"
)

type installOneOptions struct {
	Commit       string
	Base         bool
	PlatformRoot string
	Excludes     []string
	Includes     []string
	PatchFiles   []string
	installFlags
}

func newInstallOneCommand() *cobra.Command {
	opts := installOneOptions{}
	cmd := &cobra.Command{
		Use:     "install-one <url> <branch>",
		Short:   "Install a single repository without a manifest",
		Args:    cobra.ExactArgs(2),
		PreRunE: bindFlags(installBindings...),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstallOne(cmd.Context(), cmd, args[0], args[1], opts)
		},
	}
	cmd.Flags().StringVar(&opts.Commit, "commit", "", "Exact commit to check out")
	cmd.Flags().BoolVar(&opts.Base, "base", false, "Deploy as the base platform")
	cmd.Flags().StringVar(&opts.PlatformRoot, "platform-root", "", "Platform package directory of a base repository (default odoo)")
	cmd.Flags().StringSliceVar(&opts.Excludes, "exclude", nil, "Modules to skip")
	cmd.Flags().StringSliceVar(&opts.Includes, "include", nil, "Only install these modules")
	cmd.Flags().StringSliceVar(&opts.PatchFiles, "patch-file", nil, "Patch files applied with git apply, in order")
	opts.installFlags.register(cmd)
	return cmd
}

func runInstallOne(ctx context.Context, cmd *cobra.Command, url string, branch string, opts installOneOptions) error {
	flags, err := opts.installFlags.resolve(cmd)
	if err != nil {
		return err
	}
	var includes []string
	if flagChanged(cmd, "include") {
		includes = append([]string{}, opts.Includes...)
	}
	service := newAppService().WithTmpDir(flags.tmpDir)
	result, err := service.InstallOne(ctx, app.InstallOneRequest{
		URL:          url,
		Branch:       branch,
		Commit:       opts.Commit,
		Base:         opts.Base,
		PlatformRoot: opts.PlatformRoot,
		Excludes:     opts.Excludes,
		Includes:     includes,
		PatchFiles:   opts.PatchFiles,
		Destination:  flags.destination,
		Languages:    flags.languages,
		EnvFile:      flags.envFile,
		LockFile:     flags.lockFile,
	})
	printInstallResult(result)
	return err
}
