package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a diagram's fields",
	Long: `Applies a partial update to a diagram. Only the fields you pass
change; everything else is left as it is.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("code-file", "", "file with replacement Mermaid code")
	editCmd.Flags().String("type", "", "new diagram type")
	editCmd.Flags().String("tags", "", "replacement comma-separated tags")
	editCmd.Flags().String("description", "", "new description")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	var patch diagram.Patch

	if v, _ := cmd.Flags().GetString("title"); cmd.Flags().Changed("title") {
		patch.Title = &v
	}
	if path, _ := cmd.Flags().GetString("code-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		code := strings.TrimRight(string(data), "\n")
		patch.Code = &code
	}
	if v, _ := cmd.Flags().GetString("type"); cmd.Flags().Changed("type") {
		dt := diagram.Type(v)
		if !dt.Valid() {
			return fmt.Errorf("unknown diagram type %q", v)
		}
		patch.Type = &dt
	}
	if v, _ := cmd.Flags().GetString("tags"); cmd.Flags().Changed("tags") {
		tags := splitTags(v)
		if tags == nil {
			tags = []string{}
		}
		patch.Tags = &tags
	}
	if v, _ := cmd.Flags().GetString("description"); cmd.Flags().Changed("description") {
		patch.Description = &v
	}

	if patch.IsZero() {
		return fmt.Errorf("nothing to change; pass at least one field flag")
	}

	if err := app.store.Update(id, patch); err != nil {
		return err
	}
	app.store.Wait()

	d, _ := app.store.FindByID(id)
	fmt.Printf("Updated %q (%s)\n", d.Title, shortID(id))
	return nil
}
