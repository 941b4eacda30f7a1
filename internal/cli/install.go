package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"addon-installer/internal/app"
)

const (
	defaultManifest    = "third_party_addons.yaml"
	defaultDestination = "3rd"
)

// installFlags are shared by install and install-one.
type installFlags struct {
	Destination string
	Languages   []string
	EnvFile     string
	LockFile    string
	TmpDir      string
}

func (f *installFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Destination, "destination", "d", defaultDestination, "Existing directory receiving the modules")
	cmd.Flags().StringSliceVar(&f.Languages, "lang", nil, "Translation languages to keep (default: all)")
	cmd.Flags().StringVar(&f.EnvFile, "env-file", "", "Dotenv file with URL variables")
	cmd.Flags().StringVar(&f.LockFile, "lock-file", "", "Write an install lock to this path")
	cmd.Flags().StringVar(&f.TmpDir, "tmp-dir", "", "Parent directory for temporary checkouts")
}

var installBindings = []flagBinding{
	{key: "destination", flag: "destination"},
	{key: "lang", flag: "lang"},
	{key: "env_file", flag: "env-file"},
	{key: "lock_file", flag: "lock-file"},
	{key: "tmp_dir", flag: "tmp-dir"},
}

type resolvedInstallFlags struct {
	destination string
	languages   []string
	envFile     string
	lockFile    string
	tmpDir      string
}

func (f installFlags) resolve(cmd *cobra.Command) (resolvedInstallFlags, error) {
	out := resolvedInstallFlags{
		languages: languages(resolveStrings(cmd, f.Languages, "lang", "lang")),
	}
	paths := []struct {
		target *string
		value  string
		key    string
		flag   string
	}{
		{&out.destination, f.Destination, "destination", "destination"},
		{&out.envFile, f.EnvFile, "env_file", "env-file"},
		{&out.lockFile, f.LockFile, "lock_file", "lock-file"},
		{&out.tmpDir, f.TmpDir, "tmp_dir", "tmp-dir"},
	}
	for _, path := range paths {
		expanded, err := expandPath(resolveString(cmd, path.value, path.key, path.flag))
		if err != nil {
			return resolvedInstallFlags{}, err
		}
		*path.target = expanded
	}
	return out, nil
}

type installOptions struct {
	Manifest string
	Jobs     int
	installFlags
}

func newInstallCommand() *cobra.Command {
	opts := installOptions{}
	cmd := &cobra.Command{
		Use:     "install",
		Aliases: []string{"install-all"},
		Short:   "Install every repository listed in a manifest",
		Args:    cobra.NoArgs,
		PreRunE: bindFlags(append([]flagBinding{
			{key: "manifest", flag: "manifest"},
			{key: "jobs", flag: "jobs"},
		}, installBindings...)...),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "m", defaultManifest, "Manifest path (.yaml, .yml, .json or .toml)")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 1, "Repositories fetched in parallel; placement stays in manifest order")
	opts.installFlags.register(cmd)
	return cmd
}

func runInstall(ctx context.Context, cmd *cobra.Command, opts installOptions) error {
	manifest, err := expandPath(resolveString(cmd, opts.Manifest, "manifest", "manifest"))
	if err != nil {
		return err
	}
	flags, err := opts.installFlags.resolve(cmd)
	if err != nil {
		return err
	}
	service := newAppService().WithTmpDir(flags.tmpDir)
	result, err := service.Install(ctx, app.InstallRequest{
		ManifestPath: manifest,
		Destination:  flags.destination,
		Languages:    flags.languages,
		EnvFile:      flags.envFile,
		LockFile:     flags.lockFile,
		Jobs:         resolveInt(cmd, opts.Jobs, "jobs", "jobs"),
	})
	printInstallResult(result)
	return err
}

func printInstallResult(result app.InstallResult) {
	for _, entry := range result.Entries {
		ref := entry.Branch
		if entry.Commit != "" {
			ref = entry.Commit
		}
		fmt.Printf("%s %s@%s (%d modules, %d patches)\n",
			color.GreenString("installed"), entry.Repository, ref, len(entry.Modules), entry.Patches)
	}
	if result.LockFile != "" {
		fmt.Printf("lock written: %s\n", result.LockFile)
	}
}
