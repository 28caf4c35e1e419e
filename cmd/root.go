package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mermaidkeep",
	Short: "Mermaid diagram vault with optional cloud sync",
	Long: `mermaidkeep stores your Mermaid diagrams in a local vault, keeps
them searchable and tagged, and optionally syncs them to a Supabase
backend once you sign in. It can also generate diagrams from natural
language, serve a local HTTP API, and export a static gallery.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath(), "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
