package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"addon-installer/internal/app"
	"addon-installer/internal/shared"
)

type validateOptions struct {
	Manifest  string
	EnvFile   string
	Languages []string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:     "validate",
		Short:   "Check a manifest and its URL variables without installing",
		PreRunE: bindFlags(
			flagBinding{key: "manifest", flag: "manifest"},
			flagBinding{key: "env_file", flag: "env-file"},
			flagBinding{key: "lang", flag: "lang"},
		),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "m", defaultManifest, "Manifest path (.yaml, .yml, .json or .toml)")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", "", "Dotenv file with URL variables")
	cmd.Flags().StringSliceVar(&opts.Languages, "lang", nil, "Translation languages to keep")
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	manifest, err := expandPath(resolveString(cmd, opts.Manifest, "manifest", "manifest"))
	if err != nil {
		return err
	}
	envFile, err := expandPath(resolveString(cmd, opts.EnvFile, "env_file", "env-file"))
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		ManifestPath: manifest,
		EnvFile:      envFile,
		Languages:    languages(resolveStrings(cmd, opts.Languages, "lang", "lang")),
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s %s (%s): %d entries, %d base, %d patches, %d templated urls\n",
		color.GreenString("valid"), manifest, result.Format,
		result.Entries, result.BaseEntries, result.Patches, result.Placeholders)
	return nil
}

// languages accepts both repeated flags and comma separated values.
func languages(values []string) []string {
	return shared.SplitList(strings.Join(values, ","))
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
