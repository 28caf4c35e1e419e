package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file.mmd>",
	Short: "Live-preview a Mermaid file in the browser",
	Long: `Serves a rendered preview of a Mermaid file and pushes updates
to the browser whenever the file changes on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("port", 0, "port to listen on (defaults to preview.port from config)")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Preview.Port
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return preview.New(path, port).Start(ctx)
}
