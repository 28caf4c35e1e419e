package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
	"github.com/mermaidkeep/mermaidkeep/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Browse the built-in template library",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	RunE:  runTemplatesList,
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a template's Mermaid code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tpl, ok := templates.Get(args[0])
		if !ok {
			return fmt.Errorf("no template with id %q", args[0])
		}
		fmt.Println(tpl.Code)
		return nil
	},
}

var templatesUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Save a template as a new diagram",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesUse,
}

func init() {
	templatesListCmd.Flags().String("category", "", "filter by category (business, technical, education)")
	templatesListCmd.Flags().String("search", "", "filter by name or description")
	templatesUseCmd.Flags().String("title", "", "title for the new diagram")
	templatesCmd.AddCommand(templatesListCmd, templatesShowCmd, templatesUseCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	var list []templates.Template
	if c, _ := cmd.Flags().GetString("category"); c != "" {
		list = templates.ByCategory(templates.Category(c))
	} else if q, _ := cmd.Flags().GetString("search"); q != "" {
		list = templates.Search(q)
	} else {
		list = templates.All()
	}

	if len(list) == 0 {
		fmt.Println("No templates match.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tCATEGORY\tDIFFICULTY")
	for _, tpl := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			tpl.ID, tpl.Name, tpl.Type, tpl.Category, tpl.Difficulty)
	}
	w.Flush()
	return nil
}

func runTemplatesUse(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	tpl, ok := templates.Get(args[0])
	if !ok {
		return fmt.Errorf("no template with id %q", args[0])
	}

	app, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = tpl.Name
	}

	id, err := app.store.Add(diagram.Draft{
		Title:       title,
		Code:        tpl.Code,
		Type:        tpl.Type,
		Description: tpl.Description,
	})
	if err != nil {
		return err
	}
	app.store.Wait()

	fmt.Printf("Saved %q (%s)\n", title, shortID(id))
	return nil
}
