package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/auth"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and drop the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := auth.Clear(cfg.DataDir); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		fmt.Println("Signed out. Diagrams are now read from the local vault.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
