package main

import (
	"context"
	"fmt"
	"log"

	"github.com/trezcool/recordsync/apps/api/di/dig"
	"github.com/trezcool/recordsync/apps/api/echo"
	"github.com/trezcool/recordsync/apps/shared"
	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/services/schedwatch"
)

func main() {
	c := dig_container.New()

	must(c.Invoke(func(
		conf *core.Config,
		apiLogger core.Logger,
		storageLoggerParam dig_container.StorageLoggerParam,
		storage *shared.Storage,
		watcher *schedwatch.Watcher,
		server *echoapi.Server,
	) {
		// =========================================================================
		// Initialize App

		apiLogger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))

		storageLogger := storageLoggerParam.Logger
		defer shared.FlushLoggers(apiLogger, storageLogger)
		defer func() {
			if err := storage.Close(); err != nil {
				storageLogger.Fatal("Failed to close", err)
			}
		}()
		defer apiLogger.Info("Application stopped")

		// =========================================================================
		// Start Settings Watcher

		watchCtx, stopWatching := context.WithCancel(context.Background())
		defer stopWatching()
		go func() {
			if err := watcher.Run(watchCtx); err != nil {
				apiLogger.Error(fmt.Sprintf("settings watcher stopped: %v", err), err)
			}
		}()

		// =========================================================================
		// Start API Service

		apiLogger.Info("API listening", map[string]interface{}{"address": conf.Server.Address})
		go func() {
			server.Start()
		}()

		// =========================================================================
		// Shutdown

		select {
		case err := <-server.Errors():
			apiLogger.Fatal(fmt.Sprintf("server error: %v", err), err)

		case sig := <-server.ShutdownSignal():
			apiLogger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
			defer cancel()

			// asking listener to shut down and shed load
			if err := server.Shutdown(ctx); err != nil {
				apiLogger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

				if err = server.Close(); err != nil {
					apiLogger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
				}
			}
		}
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
