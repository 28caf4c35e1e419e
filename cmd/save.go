package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
	"github.com/mermaidkeep/mermaidkeep/internal/store"
)

var saveCmd = &cobra.Command{
	Use:   "save [file.mmd]",
	Short: "Save a diagram from a file or stdin",
	Long: `Saves Mermaid code as a new diagram. Reads from the given file, or
from stdin when no file is passed. The diagram type is detected from
the code unless --type is set, and a title is derived from the type
and date unless --title is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSave,
}

func init() {
	saveCmd.Flags().String("title", "", "diagram title")
	saveCmd.Flags().String("type", "", "diagram type (flowchart, sequence, class, er, gantt, pie, state, journey, git)")
	saveCmd.Flags().String("tags", "", "comma-separated tags")
	saveCmd.Flags().String("description", "", "diagram description")
	saveCmd.Flags().Bool("favorite", false, "mark as favorite")
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var code []byte
	var err error
	if len(args) == 1 {
		code, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
	} else {
		code, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	app, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	draft := diagram.Draft{Code: strings.TrimRight(string(code), "\n")}

	if v, _ := cmd.Flags().GetString("type"); v != "" {
		draft.Type = diagram.Type(v)
		if !draft.Type.Valid() {
			return fmt.Errorf("unknown diagram type %q", v)
		}
	} else {
		draft.Type = diagram.DetectType(draft.Code)
	}

	if v, _ := cmd.Flags().GetString("title"); v != "" {
		draft.Title = v
	} else {
		draft.Title = diagram.DefaultTitle(draft.Type, time.Now())
	}

	if v, _ := cmd.Flags().GetString("tags"); v != "" {
		draft.Tags = splitTags(v)
	}
	draft.Description, _ = cmd.Flags().GetString("description")
	draft.IsFavorite, _ = cmd.Flags().GetBool("favorite")

	before := len(app.store.Diagrams())
	id, err := app.store.Add(draft)
	if err != nil {
		return err
	}
	app.store.Wait()

	id, ok := committedID(app.store, id, before)
	if !ok {
		return fmt.Errorf("saving %q: the cloud write failed", draft.Title)
	}

	fmt.Printf("Saved %q (%s)\n", draft.Title, id)
	return nil
}

// committedID resolves the id a saved diagram ended up with. In cloud
// mode the optimistic id is replaced by the server's once the write
// confirms; a failed write rolls the entry back out entirely, so an
// absent id with an unchanged collection means the save did not stick.
func committedID(s *store.Store, optimisticID string, before int) (string, bool) {
	if _, ok := s.FindByID(optimisticID); ok {
		return optimisticID, true
	}
	ds := s.Diagrams()
	if len(ds) <= before {
		return "", false
	}
	return ds[0].ID, true
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
