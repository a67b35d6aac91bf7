// SPDX-License-Identifier: EPL-2.0

// Command soundbind plays the sounds bound in a config file: replay a
// script of element events, watch the file and take events from stdin,
// or drive the elements from a terminal board.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}
