package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/localstore"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the local vault as a JSON snapshot",
	Long: `Writes a portable JSON snapshot of every diagram in the local
vault. With no argument the snapshot goes to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	vault := localstore.New(cfg.DataDir, cfg.MaxStorageBytes)

	data, err := vault.Export()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", args[0], err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d diagrams to %s\n", len(vault.List()), args[0])
		return nil
	}

	os.Stdout.Write(data)
	fmt.Println()
	return nil
}
