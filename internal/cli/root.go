package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"addon-installer/internal/app"
	"addon-installer/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "ADDON_INSTALLER"

var newAppService = app.NewService

type RootConfig struct {
	ConfigFile string
	LogLevel   string
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := newRootCommand()
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, color.RedString("error (%s): %s", types.KindOf(err), err.Error()))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "addon-installer",
		Short:         "Install add-on repositories from a manifest",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			cmd.SetContext(log.Logger.WithContext(cmd.Context()))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(newInstallCommand())
	cmd.AddCommand(newInstallOneCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newInspectCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		path, err := expandPath(configFile)
		if err != nil {
			return err
		}
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("addon-installer")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/addon-installer")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

// Logs go to stderr so command summaries on stdout stay machine-readable.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	if errbuilder.CodeOf(err) == errbuilder.CodeCanceled || errors.Is(err, context.Canceled) {
		return 130
	}
	switch types.KindOf(err) {
	case types.KindConfiguration:
		return 2
	case types.KindResolution:
		return 3
	case types.KindAcquisition:
		return 4
	case types.KindPatch:
		return 5
	case types.KindPlacement:
		return 6
	default:
		return 1
	}
}

// flagBinding ties a viper key to a flag of the command being run.
type flagBinding struct {
	key  string
	flag string
}

// bindFlags binds keys when the command runs, so commands sharing a key
// only ever resolve it against their own flags.
func bindFlags(bindings ...flagBinding) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		for _, binding := range bindings {
			if err := viper.BindPFlag(binding.key, cmd.Flags().Lookup(binding.flag)); err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to bind flag " + binding.flag).
					WithCause(err)
			}
		}
		return nil
	}
}

// expandPath resolves a leading ~ in user supplied paths.
func expandPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(types.CodeConfiguration).
			WithMsg("failed to expand path " + path).
			WithCause(err)
	}
	return expanded, nil
}
