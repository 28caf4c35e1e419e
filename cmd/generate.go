package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
	"github.com/mermaidkeep/mermaidkeep/internal/generate"
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a Mermaid diagram from a text prompt",
	Long: `Generates Mermaid code from a natural-language description using the
configured AI provider. The mock provider works offline by matching
the prompt against the template library. By default the code prints
to stdout; pass --save to store it as a diagram.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Bool("save", false, "save the result as a new diagram")
	generateCmd.Flags().String("title", "", "title for the saved diagram")
	generateCmd.Flags().String("tags", "", "comma-separated tags for the saved diagram")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	prompt := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Generating with the %s provider...\n", provider.Name())
	}

	code, err := provider.Generate(ctx, prompt)
	if err != nil {
		if diagram.IsValidation(err) {
			if _, ok := generate.DetectPromptType(prompt); !ok {
				return fmt.Errorf("%w\nTry mentioning a diagram kind: flowchart, sequence, database schema, gantt", err)
			}
		}
		return err
	}

	save, _ := cmd.Flags().GetBool("save")
	if !save {
		fmt.Println(code)
		return nil
	}

	app, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	dt := diagram.DetectType(code)
	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = diagram.DefaultTitle(dt, time.Now())
	}
	tagsFlag, _ := cmd.Flags().GetString("tags")

	id, err := app.store.Add(diagram.Draft{
		Title: title,
		Code:  code,
		Type:  dt,
		Tags:  splitTags(tagsFlag),
	})
	if err != nil {
		return err
	}
	app.store.Wait()

	fmt.Printf("Saved %q (%s)\n", title, shortID(id))
	return nil
}
