package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search diagrams by title, description, or tag",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	query := strings.Join(args, " ")
	results := app.store.Search(query)
	if len(results) == 0 {
		fmt.Printf("No diagrams match %q.\n", query)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tTAGS")
	for _, d := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID(d.ID), d.Title, d.Type, strings.Join(d.Tags, ","))
	}
	w.Flush()
	return nil
}
