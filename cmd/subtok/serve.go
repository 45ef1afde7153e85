package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/go-subtok/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var corpusPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Train on a corpus and serve segment/encode/decode over HTTP",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tok, err := trainedTokenizer(cfg, corpusPath)
			if err != nil {
				return err
			}

			srv := server.New(cfg, tok).
				WithShutdownTimeout(time.Duration(cfg.Server.ShutdownTimeout) * time.Second)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Training corpus path (overrides config)")

	return cmd
}
