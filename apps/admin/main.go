package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/trezcool/recordsync/apps/shared"
	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/services/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	conf, err := core.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading config: %v\n", err)
		return 1
	}
	logger, err := logsvc.NewLogger("admin", conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: setting up logger: %v\n", err)
		return 1
	}
	defer shared.FlushLoggers(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// set up storage
	storage, err := shared.OpenStorage(ctx, conf, logger)
	if err != nil {
		logger.Error("setting up storage", err)
		return 1
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Error("closing storage", err)
		}
	}()

	validate, translator := core.NewValidator()
	svcs := shared.NewServices(storage, validate, logger)

	// start CLI
	cli := commandLine{
		conf:        conf,
		logger:      logger,
		attSvc:      svcs.Attendance,
		settingsSvc: svcs.Settings,
		translator:  translator,
		db:          storage.DB,
		in:          os.Stdin,
		out:         os.Stdout,
	}
	if err := cli.run(ctx, os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		return 1
	}
	return 0
}
