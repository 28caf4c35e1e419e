package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/progress"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Migrate local diagrams to the cloud",
	Long: `Moves every diagram in the local vault to the cloud backend in a
single batch and clears the vault. Requires a signed-in session. A
failed sync leaves the vault untouched and is safe to retry.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if app.session == nil {
		return fmt.Errorf("not signed in; run `mermaidkeep login` first")
	}

	pending := len(app.vault.List())
	if pending == 0 {
		fmt.Println("Nothing to sync; the local vault is empty.")
		return nil
	}

	reporter := progress.NewReporter("Syncing to cloud")
	reporter.Start(pending)

	count, err := app.store.SyncToCloud(ctx)
	if err != nil {
		reporter.Finish()
		return err
	}
	reporter.Update(count, "")
	reporter.Finish()

	fmt.Printf("Synced %d diagram%s to the cloud.\n", count, pluralSuffix(count))
	return nil
}
