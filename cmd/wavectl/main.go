package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danmuck/wavectl/internal/led"
	"github.com/danmuck/wavectl/internal/mailbox"
	"github.com/danmuck/wavectl/internal/observability"
	"github.com/danmuck/wavectl/internal/protocol/session"
	"github.com/danmuck/wavectl/internal/scheduler"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "wavectl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "wavectl",
		Short:         "Music-synced LED server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "wavectl.toml", "path to the server config file")
	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newResetCmd(&configPath))
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the telemetry session server and the actuation loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServerConfig(*configPath)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func newResetCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Blank the LED strip and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServerConfig(*configPath)
			if err != nil {
				return err
			}
			log := observability.InitLogger("wavectl")
			ctrl := buildController(cfg, log)
			if err := ctrl.Reset(); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			log.Info().Msg("strip blanked")
			return nil
		},
	}
}

func serve(cfg serverConfig) error {
	log := observability.InitLogger("wavectl")
	zerolog.SetGlobalLevel(observability.ParseLevel(cfg.LogLevel))

	if cfg.MetricsAddr != "" {
		go func() {
			if err := observability.ServeMetrics(cfg.MetricsAddr); err != nil {
				log.Error().Err(err).Msg("metrics listener failed")
			}
		}()
		log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics enabled")
	}

	box := mailbox.New()
	box.DropHook = observability.RecordMailboxDrop

	ctrl := buildController(cfg, log)
	sched := scheduler.New(scheduler.Config{
		Period:         cfg.TickPeriod,
		StandbySpeed:   cfg.StandbySpeed,
		StandbyReverse: cfg.StandbyReverse,
	}, ctrl, box, log)
	sched.Start()

	srv, err := session.NewServer(session.ServerConfig{ListenAddr: cfg.ListenAddr}, box, log)
	if err != nil {
		return err
	}
	log.Info().Stringer("addr", srv.LocalAddr()).Msg("listening")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serveErr := srv.Serve(ctx)
	if err := sched.Stop(); err != nil {
		log.Error().Err(err).Msg("actuation loop stopped with error")
	}
	if err := srv.Close(); err != nil {
		log.Warn().Err(err).Msg("socket close")
	}
	if serveErr != nil && ctx.Err() == nil {
		return serveErr
	}
	log.Info().Msg("shutdown complete")
	return nil
}

func buildController(cfg serverConfig, log zerolog.Logger) led.Controller {
	// In-process frame buffer; physical strip backends are wired in
	// by their own builds.
	log.Info().Int("leds", cfg.LedCount).Float64("brightness", cfg.Brightness).Msg("memory controller")
	return led.WithBrightness(led.NewMemory(cfg.LedCount, true), cfg.Brightness)
}
