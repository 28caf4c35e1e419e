package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
	"github.com/mermaidkeep/mermaidkeep/internal/localstore"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show local vault statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	vault := localstore.New(cfg.DataDir, cfg.MaxStorageBytes)

	stats := vault.Stats()
	fmt.Printf("Diagrams:  %d\n", stats.Count)
	fmt.Printf("Favorites: %d\n", stats.Favorites)
	fmt.Printf("Storage:   %s of %s used\n",
		formatBytes(stats.SizeBytes), formatBytes(cfg.MaxStorageBytes))
	if len(stats.ByType) > 0 {
		fmt.Println("By type:")
		var types []string
		for dt := range stats.ByType {
			types = append(types, string(dt))
		}
		sort.Strings(types)
		for _, dt := range types {
			fmt.Printf("  %-10s %d\n", dt, stats.ByType[diagram.Type(dt)])
		}
	}
	return nil
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
