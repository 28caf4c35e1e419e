package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/mermaidkeep/mermaidkeep/internal/auth"
	"github.com/mermaidkeep/mermaidkeep/internal/localstore"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in to the cloud backend",
	Long: `Signs in to the configured Supabase backend and stores the session
in the data directory. After signing in, run "mermaidkeep sync" to
migrate local diagrams to the cloud.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.CloudConfigured() {
		return fmt.Errorf("no cloud backend configured; run `mermaidkeep init` and choose supabase")
	}

	var email string
	if len(args) == 1 {
		email = args[0]
	} else {
		prompt := promptui.Prompt{Label: "Email"}
		email, err = prompt.Run()
		if err != nil {
			return err
		}
	}

	passPrompt := promptui.Prompt{Label: "Password", Mask: '*'}
	password, err := passPrompt.Run()
	if err != nil {
		return err
	}

	sess, err := auth.Login(cfg.Supabase.URL, cfg.Supabase.AnonKey, email, password)
	if err != nil {
		return fmt.Errorf("signing in: %w", err)
	}
	if err := auth.Save(cfg.DataDir, sess); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}

	fmt.Printf("Signed in as %s.\n", sess.Email)

	vault := localstore.New(cfg.DataDir, cfg.MaxStorageBytes)
	if n := len(vault.List()); n > 0 {
		fmt.Printf("You have %d local diagram%s. Run `mermaidkeep sync` to move them to the cloud.\n",
			n, pluralSuffix(n))
	}
	return nil
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
