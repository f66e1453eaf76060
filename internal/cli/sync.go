package cli

import (
	"fmt"

	"github.com/dmateos/tagsync/internal/api"
	"github.com/dmateos/tagsync/internal/auth"
	"github.com/dmateos/tagsync/internal/config"
	"github.com/dmateos/tagsync/internal/exif"
	"github.com/dmateos/tagsync/internal/logging"
	"github.com/dmateos/tagsync/internal/resolver"
	"github.com/dmateos/tagsync/internal/sync"
	"github.com/dmateos/tagsync/internal/utils"
	"github.com/spf13/cobra"
)

var syncFlags struct {
	rootFolder  string
	localDir    string
	concurrency int
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push local image keywords to Google Drive descriptions",
	Long: `Enumerate image files under the local directory, extract their keyword
tags with exiftool, locate the matching files in Google Drive by walking
the mirrored folder structure, and overwrite each match's description
with the comma-joined tag list.

The run is one-directional and one-shot: Drive is never read back into
local files, and no state is kept between runs.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncFlags.rootFolder, "root-folder", "", "Drive folder ID mirroring the local image root")
	syncCmd.Flags().StringVar(&syncFlags.localDir, "local-dir", "", "Local directory to enumerate (default from config)")
	syncCmd.Flags().IntVar(&syncFlags.concurrency, "concurrency", 0, "Max in-flight updates during batch execution")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := GetLogger()
	defer log.Close()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if syncFlags.rootFolder != "" {
		cfg.RootFolderID = syncFlags.rootFolder
	}
	if syncFlags.localDir != "" {
		cfg.LocalDir = syncFlags.localDir
	}
	if syncFlags.concurrency > 0 {
		cfg.Concurrency = syncFlags.concurrency
	}
	if cfg.RootFolderID == "" {
		return utils.NewAppError(utils.NewCLIError(utils.ErrCodeInvalidArgument,
			"No root folder configured, pass --root-folder or set rootFolderId in the config file").Build())
	}

	profile := globalFlags.Profile
	if profile == "default" && cfg.DefaultProfile != "" {
		profile = cfg.DefaultProfile
	}

	extractor := exif.NewTool(log)
	if err := extractor.CheckAvailable(); err != nil {
		return err
	}

	configDir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	manager := auth.NewManager(configDir)
	if err := manager.LoadOAuthConfig(utils.ScopesSync); err != nil {
		// Without client secrets, refresh is impossible but a live
		// access token still works.
		log.Debug("OAuth client secrets unavailable, token refresh disabled",
			logging.F("error", err.Error()))
	}

	creds, err := manager.GetValidCredentials(ctx, profile)
	if err != nil {
		return err
	}

	factory := auth.NewServiceFactory(manager)
	service, err := factory.CreateDriveService(ctx, creds)
	if err != nil {
		return utils.NewAppError(utils.NewCLIError(utils.ErrCodeNetworkError,
			fmt.Sprintf("Failed to create Drive client: %v", err)).Build())
	}

	client := api.NewClient(service, cfg.MaxRetries, cfg.RetryBaseDelay, log)
	store := api.NewDriveStore(client)
	pathResolver := resolver.NewPathResolver(store, cfg.GetCacheTTL(), log)
	batch := api.NewBatchUpdater(store, cfg.Concurrency, log)
	presenter := NewConsolePresenter(globalFlags.Quiet)

	engine := sync.NewSynchronizer(sync.Config{
		RootFolderID: cfg.RootFolderID,
		LocalDir:     cfg.LocalDir,
		Profile:      profile,
		DryRun:       globalFlags.DryRun,
	}, extractor, pathResolver, batch, presenter, log)

	outcomes, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	failed := presenter.Summary(outcomes)
	if failed > 0 {
		return utils.NewAppError(utils.NewCLIError(utils.ErrCodeBatchPartialFailure,
			fmt.Sprintf("%d of %d updates failed", failed, len(outcomes))).Build())
	}
	return nil
}
