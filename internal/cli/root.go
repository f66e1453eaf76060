package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmateos/tagsync/internal/logging"
	"github.com/dmateos/tagsync/internal/types"
	"github.com/dmateos/tagsync/internal/utils"
	"github.com/dmateos/tagsync/pkg/version"
	"github.com/spf13/cobra"
)

var (
	globalFlags types.GlobalFlags
	logger      logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tagsync",
	Short: "Sync local image keywords to Google Drive descriptions",
	Long: `tagsync reads keyword tags from local image files with exiftool and
writes them into the description field of the matching files in Google
Drive, mirroring the local directory structure as a chain of Drive
folder lookups.`,
	Version:       version.Version,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logConfig := logging.LogConfig{
			Level:           logging.INFO,
			OutputFile:      globalFlags.LogFile,
			EnableConsole:   !globalFlags.Quiet,
			EnableColor:     true,
			EnableTimestamp: true,
		}
		if globalFlags.Verbose || globalFlags.Debug {
			logConfig.Level = logging.DEBUG
		}

		var err error
		logger, err = logging.NewLogger(logConfig)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Get().String())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalFlags.Profile, "profile", "default", "Authentication profile to use")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&globalFlags.LogFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.DryRun, "dry-run", false, "Show what would be updated without making changes")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command, mapping errors to process exit codes
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(utils.ExitCodeFor(err))
	}
}

// GetGlobalFlags returns the global flags
func GetGlobalFlags() types.GlobalFlags {
	return globalFlags
}

// GetLogger returns the global logger
func GetLogger() logging.Logger {
	if logger == nil {
		return logging.NewNoOpLogger()
	}
	return logger
}
