package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danmuck/wavectl/internal/analysis"
	"github.com/danmuck/wavectl/internal/protocol"
	"github.com/danmuck/wavectl/internal/protocol/session"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "nodectl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "nodectl",
		Short:         "Remote telemetry node",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "nodectl.toml", "path to the node config file")
	root.AddCommand(newRunCmd(&configPath))
	return root
}

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Stream telemetry to the LED server until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadNodeConfig(*configPath)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
}

func run(cfg nodeConfig) error {
	log := observabilityLogger(cfg.LogLevel)

	remote, err := session.Dial(session.RemoteConfig{
		ServerAddr: cfg.ServerAddr,
		Mode:       cfg.Mode,
		NoAck:      cfg.NoAck,
	}, log)
	if err != nil {
		return err
	}
	defer remote.Close()

	if err := remote.Handshake(); err != nil {
		return err
	}
	log.Info().Str("server", cfg.ServerAddr).Stringer("mode", cfg.Mode).Msg("session established")

	src := analysis.NewSynthetic(analysis.SyntheticConfig{
		SampleInterval: cfg.SampleInterval,
		BeatInterval:   cfg.BeatInterval,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := stream(ctx, log, remote, src); err != nil {
		return err
	}

	if err := remote.Stop(false); err != nil {
		return fmt.Errorf("teardown: %w", err)
	}
	return nil
}

// stream forwards samples until ctx is cancelled. A server abort ends
// the stream cleanly so teardown can still run against a fresh session
// attempt by the operator.
func stream(ctx context.Context, log zerolog.Logger, remote *session.Remote, src analysis.Source) error {
	sent := 0
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("samples", sent).Msg("interrupted, stopping stream")
			return nil
		default:
		}

		sample, err := src.Next()
		if err != nil {
			return fmt.Errorf("sample: %w", err)
		}
		err = remote.Send(protocol.Data{
			Value: sample.Novelty,
			Peak:  sample.Peak,
			Beat:  sample.Beat,
		})
		if errors.Is(err, session.ErrServerAborted) {
			return err
		}
		if err != nil {
			return fmt.Errorf("send: %w", err)
		}
		sent++
	}
}
