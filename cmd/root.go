package cmd

import (
	"fmt"

	"github.com/gurisko/envswitch/internal/config"
	"github.com/gurisko/envswitch/internal/logging"
	"github.com/gurisko/envswitch/internal/registry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile   string
	registryFlag string
	shellFlag    string
	verbose      bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "envswitch",
	Short: "envswitch - switch between project environments",
	Long: `envswitch keeps a registry of named project environments (directory,
virtualenv, environment variables, startup commands) and prints the shell
commands that enter one. It never runs them itself:

  eval "$(envswitch switch web)"`,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/envswitch/config.yaml)")
	pf.StringVar(&registryFlag, "registry", "", "registry document path")
	pf.StringVar(&shellFlag, "shell", "", "command dialect: posix, windows or auto")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
}

func Execute() error {
	// Silence usage and errors to avoid cluttering output with Cobra defaults
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	cfg = c

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	l, err := logging.New(logging.Options{Level: level, Format: cfg.Log.Format, Output: cmd.ErrOrStderr()})
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	logger = l.With(zap.String("command", cmd.Name()))
	logger.Debug("configuration loaded",
		zap.String("config_file", cfg.ConfigFile),
		zap.String("registry", cfg.RegistryPath),
		zap.String("platform", cfg.ShellPlatform().String()),
	)
	return nil
}

// openRegistry builds a Registry from the loaded configuration
func openRegistry() *registry.Registry {
	return registry.New(
		registry.NewStore(cfg.RegistryPath),
		registry.WithHistoryLimit(cfg.HistoryLimit),
	)
}
