package cli

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"stockctl/internal/config"
	"stockctl/internal/drive"
)

// NewSyncCommand creates the sync command, which moves the three data
// files between the local machine and Google Drive.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync the data files with Google Drive",
		Long: `Sync the stock file, the order log and the addition log with Google
Drive. pull downloads the newest remote copy of each file; push uploads
the local copies, creating the remote files on first use.`,
	}

	cmd.AddCommand(newSyncPullCommand(rootOpts))
	cmd.AddCommand(newSyncPushCommand(rootOpts))

	return cmd
}

func newSyncPullCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "pull",
		Short:   "Download the data files from Google Drive",
		Example: `  stockctl sync pull`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(rootOpts, cmd, "pull")
		},
	}
}

func newSyncPushCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "push",
		Short:   "Upload the data files to Google Drive",
		Example: `  stockctl sync push`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(rootOpts, cmd, "push")
		},
	}
}

func runSync(rootOpts *RootOptions, cmd *cobra.Command, direction string) error {
	formatter := newFormatter(rootOpts, cmd)
	ctx := cmd.Context()

	cfg, err := config.Load(rootOpts.EnvFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}

	svc, err := drive.NewService(ctx, cfg.Drive.CredentialsPath, slog.Default())
	if err != nil {
		if outErr := formatter.Error(ErrCodeStorage, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "could not connect to Google Drive", err)
	}

	paths := []string{cfg.Files.Stock, cfg.Files.Orders, cfg.Files.Additions}
	synced := make([]string, 0, len(paths))
	for _, path := range paths {
		name := filepath.Base(path)
		if direction == "pull" {
			err = svc.Pull(ctx, name, path)
		} else {
			err = svc.Push(ctx, name, path)
		}
		if err != nil {
			if outErr := formatter.Error(ErrCodeStorage, err.Error(), map[string]interface{}{"file": name}); outErr != nil {
				return outErr
			}
			return WrapExitError(ExitCommandError, direction+" failed", err)
		}
		synced = append(synced, name)
	}

	return formatter.Success(map[string]interface{}{
		"direction": direction,
		"files":     synced,
	})
}
