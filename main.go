package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"asset_checker/internal/application/config"
	"asset_checker/internal/cli"
	"asset_checker/internal/pkg/logging"
)

func main() {
	logInstance := logging.New(os.Stderr)
	cfg, err := config.NewAppConfig()
	if err != nil {
		logInstance.WithError(err).Fatal(`Failed to load config`)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, logInstance, cfg, os.Args[1:])
	stop()
	os.Exit(code)
}
