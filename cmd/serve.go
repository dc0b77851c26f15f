package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil {
		application.Log.Error("Server failed", "error", err)
		return err
	}
	application.Log.Info("Server stopped")
	return nil
}
