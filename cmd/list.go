package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List diagrams",
	RunE:  runList,
}

func init() {
	listCmd.Flags().Bool("favorites", false, "only favorites")
	listCmd.Flags().String("type", "", "only diagrams of this type")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	favoritesOnly, _ := cmd.Flags().GetBool("favorites")
	typeFilter, _ := cmd.Flags().GetString("type")
	if typeFilter != "" && !diagram.Type(typeFilter).Valid() {
		return fmt.Errorf("unknown diagram type %q", typeFilter)
	}

	diagrams := app.store.Diagrams()
	if len(diagrams) == 0 {
		fmt.Println("No diagrams yet. Save one with `mermaidkeep save`.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tTAGS\tUPDATED")
	shown := 0
	for _, d := range diagrams {
		if favoritesOnly && !d.IsFavorite {
			continue
		}
		if typeFilter != "" && string(d.Type) != typeFilter {
			continue
		}
		title := d.Title
		if d.IsFavorite {
			title = "* " + title
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortID(d.ID), title, d.Type, strings.Join(d.Tags, ","),
			d.UpdatedAt.Local().Format("2006-01-02 15:04"))
		shown++
	}
	w.Flush()

	if shown != len(diagrams) {
		fmt.Printf("\n%d of %d diagrams\n", shown, len(diagrams))
	}
	return nil
}

// shortID keeps listings readable; full ids still work everywhere.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
