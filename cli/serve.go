package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	qhttp "diabetescheck/http"
	"diabetescheck/ml"
	"diabetescheck/monitoring"
	"diabetescheck/predict"
)

func newServeCmd(opts *options) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prediction form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 1. Load config
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Http.Port = port
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()
			zap.ReplaceGlobals(log)

			// 2. Load the classifier once; nothing is served without it
			model, err := loadClassifier(cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(background(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Model.Watch {
				go func() {
					if err := ml.WatchArtifact(ctx, cfg.Model.Path, log); err != nil {
						log.Warn("model artifact watcher stopped", zap.Error(err))
					}
				}()
			}

			metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
			pipeline, err := predict.NewPipeline(model,
				predict.WithLogger(log),
				predict.WithMetrics(metrics),
				predict.WithCacheSize(cfg.CacheSize()))
			if err != nil {
				return err
			}

			// 3. Start HTTP server
			server := qhttp.NewServer(qhttp.ServerConfig{
				Port:         cfg.Http.Port,
				Timeout:      cfg.Http.Timeout,
				MaxBodyBytes: cfg.Http.MaxBodyBytes,
			}, pipeline, log)
			log.Info("serving predictions",
				zap.String("addr", server.Addr()),
				zap.String("model", cfg.Model.Path),
				zap.Int("cache_size", cfg.CacheSize()))

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			// 4. Handle graceful shutdown
			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			log.Info("shutting down")
			if err := server.Stop(); err != nil {
				log.Error("server forced to shutdown", zap.Error(err))
				return err
			}
			log.Info("exiting")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port, overrides http.port")
	return cmd
}

// background is used when a command runs without a parent context.
func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
