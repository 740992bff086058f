package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/neboloop/socialshare/internal/config"
	"github.com/neboloop/socialshare/internal/defaults"
	"github.com/neboloop/socialshare/internal/logging"
	"github.com/neboloop/socialshare/internal/server"
	"github.com/neboloop/socialshare/internal/svc"
	"github.com/neboloop/socialshare/internal/updater"
)

// initConfig overlays --config and starts logging.
func initConfig() error {
	if cfgFile != "" {
		dataDir, err := defaults.DataDir()
		if err != nil {
			return err
		}
		c, err := config.LoadFrom(baseConfig, filepath.Join(dataDir, defaults.ConfigFile), cfgFile)
		if err != nil {
			return err
		}
		*ServerConfig = c
	}

	level := ServerConfig.Log.Level
	if verbose {
		level = "debug"
	}
	logging.Init(level, ServerConfig.IsDevelopment())
	return nil
}

// openServiceContext prepares the data directory and wires every dependency.
func openServiceContext(ctx context.Context) (*svc.ServiceContext, error) {
	dataDir, err := defaults.EnsureDataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize data directory: %w", err)
	}
	return svc.NewServiceContext(ctx, *ServerConfig, dataDir, Version, svc.Options{})
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func ServeCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP service",
		Long:  `Serve the share endpoints, the settings API and the settings page.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(quiet)
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress request logging")
	return cmd
}

// runServe starts the server together with its scheduled jobs
func runServe(quiet bool) error {
	ctx, cancel := signalContext()
	defer cancel()

	svcCtx, err := openServiceContext(ctx)
	if err != nil {
		return err
	}
	defer svcCtx.Close()
	defer logging.Sync()

	scheduler := cron.New()
	if err := scheduleJobs(ctx, scheduler, svcCtx); err != nil {
		return err
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	return server.Run(ctx, svcCtx, server.ServerOptions{Quiet: quiet})
}

// scheduleJobs registers the periodic license check, update check and
// transient cleanup.
func scheduleJobs(ctx context.Context, scheduler *cron.Cron, svcCtx *svc.ServiceContext) error {
	spec := svcCtx.Config.License.CheckSchedule

	if _, err := scheduler.AddFunc(spec, func() {
		if svcCtx.License.Key() == "" {
			return
		}
		logging.Infow("scheduled license check", "valid", svcCtx.License.IsValid(ctx))
	}); err != nil {
		return fmt.Errorf("invalid license.check_schedule %q: %w", spec, err)
	}

	checker := updater.NewBackgroundChecker(svcCtx.HTTPClient, svcCtx.UpdateSource(), svcCtx.Version, svcCtx.License.Key, func(result *updater.Result) {
		logging.Infow("update available", "current", result.CurrentVersion, "latest", result.LatestVersion)
	})
	if _, err := checker.Schedule(ctx, scheduler, spec); err != nil {
		return err
	}

	if _, err := scheduler.AddFunc("@hourly", func() {
		n, err := svcCtx.DB.PurgeTransients(ctx)
		if err != nil {
			logging.Warnw("failed to purge expired transients", "error", err)
			return
		}
		if n > 0 {
			logging.Debugf("purged %d expired transients", n)
		}
	}); err != nil {
		return err
	}
	return nil
}
