package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize mermaidkeep with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the data directory, cloud backend, and AI provider, and writes the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
