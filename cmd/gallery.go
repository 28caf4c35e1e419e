package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/gallery"
)

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Generate a static HTML gallery of your diagrams",
	RunE:  runGallery,
}

func init() {
	galleryCmd.Flags().StringP("output", "o", "gallery", "output directory")
	galleryCmd.Flags().String("title", "", "gallery title")
	rootCmd.AddCommand(galleryCmd)
}

func runGallery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	out, _ := cmd.Flags().GetString("output")
	title, _ := cmd.Flags().GetString("title")

	gen := gallery.NewGenerator(out, title)
	n, err := gen.Generate(app.store.Diagrams())
	if err != nil {
		return err
	}

	fmt.Printf("Generated %d pages in %s\n", n, out)
	return nil
}
