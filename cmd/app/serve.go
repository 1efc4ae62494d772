package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fleetops/cmd"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, live views and scheduled jobs",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return serve(c.Context())
		},
	})
}

func serve(ctx context.Context) error {
	root, err := cmd.NewCompositionRoot(ctx, config, logger)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	root.Start(runCtx)

	router, err := root.CreateRouter()
	if err != nil {
		cancel()
		return errors.Join(err, root.Close(context.Background()))
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		cancel()
		return errors.Join(err, root.Close(context.Background()))
	}

	addr := fmt.Sprintf("0.0.0.0:%s", config.HTTP.Port)
	serveErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "http server listening", "addr", addr)
		if err := router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.InfoContext(ctx, "shutting down")
	case err = <-serveErr:
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()

	jobManager.StopAll()
	errs := []error{err, router.Shutdown(shutdownCtx)}
	cancel()
	errs = append(errs, root.Close(shutdownCtx))
	return errors.Join(errs...)
}
