package nutri

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clydenvis-afk/nutriaitracker/internal/app"
	"github.com/clydenvis-afk/nutriaitracker/internal/config"
	"github.com/clydenvis-afk/nutriaitracker/internal/logging"
)

var (
	dbPath     string
	configPath string
	logLevel   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "nutri",
	Short:             "nutri tracks meals, workouts and weight with AI estimates",
	Long:              "nutri is a local-first nutrition and fitness tracker. Describe what you ate or did in plain words and confirm the AI estimates before they are saved.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRuntime,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

func setupRuntime(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   loaded.LogFile,
		LogLevel:      loaded.LogLevel,
		LogFormatJSON: loaded.LogFormatJSON,
		Stderr:        cmd.ErrOrStderr(),
	})
	cfg = loaded
	return nil
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return app.DefaultConfigPath()
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}
