package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/cli/config"
	httpctrl "github.com/gametheory-pro/gtpro/pkg/controller/http"
	"github.com/gametheory-pro/gtpro/pkg/service/worker"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var enableMonitor bool
	var keepAlive time.Duration
	var app appConfig
	var monitorCfg config.Monitor

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("GTPRO_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "monitor",
			Usage:       "Run the crisis monitor alongside the HTTP server",
			Value:       true,
			Sources:     cli.EnvVars("GTPRO_MONITOR"),
			Destination: &enableMonitor,
		},
		&cli.DurationFlag{
			Name:        "stream-keep-alive",
			Usage:       "Interval of keep-alive comments on the event stream",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("GTPRO_STREAM_KEEP_ALIVE"),
			Destination: &keepAlive,
		},
	}

	flags = append(flags, app.Flags()...)
	flags = append(flags, monitorCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			uc, cleanup, err := app.build(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var monitor *worker.CrisisMonitor
			if enableMonitor {
				monitor, err = monitorCfg.Configure(uc.Crisis)
				if err != nil {
					return err
				}
				if err := monitor.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start crisis monitor")
				}
			}

			handler := httpctrl.New(uc, httpctrl.WithKeepAlive(keepAlive))
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr, "monitor", enableMonitor)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				if monitor != nil {
					monitor.Stop()
				}
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)

				// Stop the monitor first so no cycle runs against a closing repository
				if monitor != nil {
					monitor.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				handler.Wait()

				logger.Info("Server shutdown completed")
				return nil
			}
		},
	}
}
