package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
	"github.com/mermaidkeep/mermaidkeep/internal/localstore"
	"github.com/mermaidkeep/mermaidkeep/internal/progress"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import diagrams from a snapshot or Mermaid files",
	Long: `Imports diagrams into the local vault. By default the argument is a
JSON snapshot produced by export; diagrams merge by id. With --glob
the argument is a glob pattern (doublestar, e.g. 'docs/**/*.mmd') and
every matching Mermaid file becomes a new diagram.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().Bool("glob", false, "treat the argument as a glob of .mmd files")
	importCmd.Flags().String("tags", "", "tags applied to every imported file (glob mode)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	vault := localstore.New(cfg.DataDir, cfg.MaxStorageBytes)

	if glob, _ := cmd.Flags().GetBool("glob"); glob {
		tagsFlag, _ := cmd.Flags().GetString("tags")
		return runGlobImport(vault, args[0], splitTags(tagsFlag))
	}

	payload, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	count, err := vault.Import(payload)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d diagrams.\n", count)
	return nil
}

func runGlobImport(vault *localstore.Store, pattern string, tags []string) error {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match %q", pattern)
	}

	reporter := progress.NewReporter("Importing diagrams")
	reporter.Start(len(matches))

	imported := 0
	for i, path := range matches {
		reporter.Update(i+1, filepath.Base(path))

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", path, err)
			continue
		}
		code := strings.TrimRight(string(data), "\n")
		if strings.TrimSpace(code) == "" {
			continue
		}

		dt := diagram.DetectType(code)
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := diagram.ValidateTitle(title); err != nil {
			title = diagram.DefaultTitle(dt, time.Now())
		}

		if _, err := vault.Save(diagram.Diagram{
			ID:    uuid.New().String(),
			Title: title,
			Code:  code,
			Type:  dt,
			Tags:  tags,
		}); err != nil {
			reporter.Finish()
			return fmt.Errorf("importing %s: %w", path, err)
		}
		imported++
	}
	reporter.Finish()

	fmt.Printf("Imported %d diagrams from %d files.\n", imported, len(matches))
	return nil
}
