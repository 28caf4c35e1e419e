package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle a diagram's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavorite,
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
}

func runFavorite(cmd *cobra.Command, args []string) error {
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

	toggled := !d.IsFavorite
	if err := app.store.Update(id, diagram.Patch{IsFavorite: &toggled}); err != nil {
		return err
	}
	app.store.Wait()

	if toggled {
		fmt.Printf("%q is now a favorite.\n", d.Title)
	} else {
		fmt.Printf("%q is no longer a favorite.\n", d.Title)
	}
	return nil
}
