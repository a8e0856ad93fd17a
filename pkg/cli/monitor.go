package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gametheory-pro/gtpro/pkg/cli/config"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdMonitor() *cli.Command {
	var app appConfig
	var monitorCfg config.Monitor
	var once bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "once",
			Usage:       "Run a single monitoring cycle and exit",
			Destination: &once,
		},
	}
	flags = append(flags, app.Flags()...)
	flags = append(flags, monitorCfg.Flags()...)

	return &cli.Command{
		Name:  "monitor",
		Usage: "Run the crisis monitor without the HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := app.build(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			monitor, err := monitorCfg.Configure(uc.Crisis)
			if err != nil {
				return err
			}

			if once {
				return monitor.RunOnce(ctx)
			}

			if err := monitor.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start crisis monitor")
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			select {
			case sig := <-sigCh:
				logging.From(ctx).Info("Received shutdown signal", "signal", sig)
			case <-ctx.Done():
			}

			monitor.Stop()
			return nil
		},
	}
}
