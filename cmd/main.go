package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HACKWAVE2025/B54/internal/app"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "b54",
	Short:         "Health and agriculture assistant backend",
	Long:          `Serves structured medical, crop and wellness analysis, an assistant chat, and emergency alerts backed by Gemini.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (defaults to $"+app.ConfigFileEnv+")")
	rootCmd.AddCommand(serveCmd, analyzeCmd, chatCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadApp wires the whole application from config. Callers must Close it.
func loadApp(ctx context.Context) (*app.App, error) {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
