package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mermaidkeep/mermaidkeep/internal/auth"
	"github.com/mermaidkeep/mermaidkeep/internal/cloudstore"
	"github.com/mermaidkeep/mermaidkeep/internal/config"
	"github.com/mermaidkeep/mermaidkeep/internal/db"
	"github.com/mermaidkeep/mermaidkeep/internal/generate"
	"github.com/mermaidkeep/mermaidkeep/internal/history"
	"github.com/mermaidkeep/mermaidkeep/internal/localstore"
	"github.com/mermaidkeep/mermaidkeep/internal/store"
	"github.com/mermaidkeep/mermaidkeep/internal/syncer"
)

// DatabaseFile is the SQLite file holding the activity log.
const DatabaseFile = "mermaidkeep.db"

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `mermaidkeep init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// app bundles the wired-up stores a command works against.
type app struct {
	cfg      *config.Config
	store    *store.Store
	vault    *localstore.Store
	history  *history.Store
	database *db.DB
	session  *auth.Session
}

// buildApp constructs the store stack: local vault, activity log, and,
// when configured and signed in, the cloud backend and migrator.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		vault:   localstore.New(cfg.DataDir, cfg.MaxStorageBytes),
		session: auth.Current(cfg.DataDir),
	}

	// A broken activity log never blocks diagram work.
	if database, err := db.Open(filepath.Join(cfg.DataDir, DatabaseFile)); err != nil {
		log.Printf("cmd: opening activity log: %v", err)
	} else {
		a.database = database
		a.history = history.NewStore(database)
	}

	opts := store.Options{
		Local:    a.vault,
		Session:  func() *auth.Session { return a.session },
		Notifier: cliNotifier(),
	}
	if a.history != nil {
		opts.Recorder = a.history
	}

	if cfg.CloudConfigured() && a.session != nil {
		cloudCfg := cloudstore.Config{
			URL:         cfg.Supabase.URL,
			AnonKey:     cfg.Supabase.AnonKey,
			AccessToken: a.session.AccessToken,
		}
		cloud, err := cloudstore.New(cloudCfg)
		if err != nil {
			return nil, fmt.Errorf("connecting to cloud backend: %w", err)
		}
		opts.Cloud = cloud
		opts.Migrator = syncer.New(a.vault, cloud)
	}

	a.store = store.New(opts)
	if err := a.store.Load(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Close drains in-flight cloud writes and releases the database.
func (a *app) Close() {
	a.store.Wait()
	if a.database != nil {
		a.database.Close()
	}
}

// cliNotifier surfaces store failures on stderr. Success and info
// notifications are only shown in verbose mode; commands print their
// own results.
func cliNotifier() store.Notifier {
	return store.NotifierFunc(func(n store.Notification) {
		if n.Severity == store.SeverityError {
			fmt.Fprintf(os.Stderr, "Error: %s: %s\n", n.Title, n.Description)
			return
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "%s: %s\n", n.Title, n.Description)
		}
	})
}

// resolveID looks a diagram up by full id or unique id prefix.
func resolveID(a *app, idOrPrefix string) (string, error) {
	if _, ok := a.store.FindByID(idOrPrefix); ok {
		return idOrPrefix, nil
	}

	var matches []string
	for _, d := range a.store.Diagrams() {
		if len(idOrPrefix) >= 4 && len(d.ID) >= len(idOrPrefix) && d.ID[:len(idOrPrefix)] == idOrPrefix {
			matches = append(matches, d.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no diagram with id %q", idOrPrefix)
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", idOrPrefix, len(matches))
	}
}

// buildProvider creates the configured generation provider.
func buildProvider(cfg *config.Config) (generate.Provider, error) {
	switch cfg.Generate.Provider {
	case config.ProviderOpenAI:
		apiKey := cfg.APIKey()
		if apiKey == "" {
			return nil, fmt.Errorf("%s environment variable is required for the openai provider", cfg.Generate.APIKeyEnv)
		}
		return generate.NewOpenAIProvider(apiKey, cfg.Generate.Model), nil
	default:
		return generate.MockProvider{}, nil
	}
}
