package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a diagram's Mermaid code",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Bool("meta", false, "print metadata instead of code")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	id, err := resolveID(app, args[0])
	if err != nil {
		return err
	}
	d, _ := app.store.FindByID(id)

	if meta, _ := cmd.Flags().GetBool("meta"); meta {
		fmt.Printf("ID:          %s\n", d.ID)
		fmt.Printf("Title:       %s\n", d.Title)
		fmt.Printf("Type:        %s\n", d.Type.DisplayName())
		fmt.Printf("Tags:        %s\n", strings.Join(d.Tags, ", "))
		fmt.Printf("Description: %s\n", d.Description)
		fmt.Printf("Favorite:    %v\n", d.IsFavorite)
		fmt.Printf("Created:     %s\n", d.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Updated:     %s\n", d.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		return nil
	}

	fmt.Println(d.Code)
	return nil
}
