/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/allbin/serialtail/internal/logging"
)

// exit is replaced in tests.
var exit = os.Exit

// notifyInterrupt returns a context that is cancelled on the first SIGINT or
// SIGTERM. A second signal exits the process with status 0 straight away.
// The returned stop function releases the signal handler.
func notifyInterrupt(parent context.Context, logger *logging.Logger) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, shutting down", "signal", sig.String())
			cancel()
		case <-done:
			return
		}

		select {
		case sig := <-sigChan:
			logger.Info("received second signal, exiting", "signal", sig.String())
			exit(0)
		case <-done:
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(done)
			cancel()
		})
	}
}
