package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/clambin/ledsequencer/internal/configuration"
	"github.com/clambin/ledsequencer/internal/ledsequencer"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

var version = "change-me"

func main() {
	cfg, err := configuration.Parse(filepath.Base(os.Args[0]), version, os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	logger := log.WithField("app", "ledsequencer")

	logger.WithField("version", version).Info("starting")
	defer logger.Info("exiting")

	l, err := ledsequencer.New(cfg, os.Stdin, os.Stdout, prometheus.DefaultRegisterer, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to start")
	}

	ctx, done := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer done()

	if err = l.Run(ctx); err != nil {
		logger.WithError(err).Error("failed to run")
		done()
		os.Exit(1)
	}
}
