// Package cli wires configuration, logging and the checker behind the
// asset_checker command.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"asset_checker/internal/adaptors"
	"asset_checker/internal/application/config"
	"asset_checker/internal/pkg/errors"
	"asset_checker/internal/pkg/metrics"
	"asset_checker/internal/report"
	"asset_checker/internal/service"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X ...".
var version = "dev"

// NewRootCmd creates the asset_checker command. cfg supplies the flag
// defaults; it is not modified.
func NewRootCmd(logger *log.Logger, cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset_checker [PORT]",
		Short: "Check that every asset linked from a local page is reachable",
		Long: `asset_checker fetches index.html from a static file server running on
127.0.0.1 and sends a HEAD request for every src="..." and href="..." value
found in it. Each asset is printed with its resolved URL and HTTP status.

PORT defaults to 5500. The exit code is 1 only when the page itself cannot be
fetched; broken assets are reported but do not fail the run.`,
		Example:       "  asset_checker\n  asset_checker 8080 --page about.html",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCfg := *cfg
			if err := applyOverrides(cmd, args, &runCfg); err != nil {
				return err
			}
			return run(cmd, logger, &runCfg)
		},
	}

	cmd.Flags().String("host", cfg.Host, "address of the static file server")
	cmd.Flags().String("page", cfg.Page, "page to fetch and scan for assets")
	cmd.Flags().Duration("timeout", cfg.Timeout, "timeout of every single request")
	cmd.Flags().String("log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	cmd.Flags().String("metrics-file", cfg.MetricsFile, "write Prometheus metrics of the run to this file")

	return cmd
}

func applyOverrides(cmd *cobra.Command, args []string, cfg *config.AppConfig) error {
	if len(args) == 1 {
		port, err := parsePort(args[0])
		if err != nil {
			return err
		}
		cfg.Port = port
	}

	var err error
	if cfg.Host, err = cmd.Flags().GetString("host"); err != nil {
		return err
	}
	if cfg.Page, err = cmd.Flags().GetString("page"); err != nil {
		return err
	}
	if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return err
	}
	if cfg.LogLevel, err = cmd.Flags().GetString("log-level"); err != nil {
		return err
	}
	if cfg.MetricsFile, err = cmd.Flags().GetString("metrics-file"); err != nil {
		return err
	}
	return cfg.Validate()
}

func parsePort(arg string) (int, error) {
	port, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid PORT %q: not an integer", arg)
	}
	if err := config.ValidatePort(port); err != nil {
		return 0, fmt.Errorf("invalid PORT %q: %w", arg, err)
	}
	return port, nil
}

func run(cmd *cobra.Command, logger *log.Logger, cfg *config.AppConfig) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, `failed to parse log level`)
	}
	logger.SetLevel(level)

	m := metrics.New()
	client := adaptors.NewWebClient(cfg.Timeout, m, logger)
	printer := report.NewPrinter(cmd.OutOrStdout())

	checker, err := service.NewChecker(logger, client, m, printer, service.Target{
		BaseURL: cfg.BaseURL(),
		Page:    cfg.Page,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	runErr := checker.Run(cmd.Context())
	logger.WithFields(log.Fields{
		`base_url`: cfg.BaseURL(),
		`duration`: time.Since(start).String(),
	}).Info(`check finished`)

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.WithError(err).Error(`failed to write metrics file`)
		}
	}

	if runErr != nil {
		return runErr
	}
	return printer.Err()
}

// Execute runs the command and returns the process exit code.
func Execute(ctx context.Context, logger *log.Logger, cfg *config.AppConfig, args []string) int {
	cmd := NewRootCmd(logger, cfg)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	// the report already carries the failure line
	var fetchErr *service.PageFetchError
	if !errors.As(err, &fetchErr) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", errors.Cause(err))
	}
	return 1
}
