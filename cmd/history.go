package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the activity log",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "maximum entries to show")
	historyCmd.Flags().String("action", "", "filter by action (create, update, delete, sync, import)")
	historyCmd.Flags().String("diagram", "", "filter by diagram id")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if app.history == nil {
		return fmt.Errorf("activity log unavailable")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	action, _ := cmd.Flags().GetString("action")
	diagramID, _ := cmd.Flags().GetString("diagram")

	entries, err := app.history.Query(ctx, history.QueryFilter{
		Action:    history.Action(action),
		DiagramID: diagramID,
		Limit:     limit,
	})
	if err != nil {
		return fmt.Errorf("querying activity log: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No activity recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tACTION\tBACKEND\tDIAGRAM\tTITLE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.Action, e.Backend, shortID(e.DiagramID), e.Title)
	}
	w.Flush()
	return nil
}
