package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a diagram",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
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
	d, _ := app.store.FindByID(id)

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("Delete %q", d.Title),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				fmt.Println("Cancelled.")
				return nil
			}
			return err
		}
	}

	if err := app.store.Remove(id); err != nil {
		return err
	}
	app.store.Wait()

	fmt.Printf("Deleted %q\n", d.Title)
	return nil
}
