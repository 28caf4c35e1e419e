// Package auth holds the signed-in session. Sign-in goes through
// Supabase; everything else treats the session as an opaque
// "current principal or nil" value.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/supabase-community/supabase-go"
)

// SessionFile is the fixed file name under the data dir holding the
// persisted session.
const SessionFile = "session.json"

// Session identifies the signed-in user. A nil session means guest
// mode.
type Session struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Expired reports whether the session's access token has lapsed.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

func sessionPath(dataDir string) string {
	return filepath.Join(dataDir, SessionFile)
}

// Load reads the persisted session. A missing file returns (nil, nil).
func Load(dataDir string) (*Session, error) {
	data, err := os.ReadFile(sessionPath(dataDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	return &s, nil
}

// Save persists the session. The file is user-readable only since it
// carries tokens.
func Save(dataDir string, s *Session) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing session: %w", err)
	}
	if err := os.WriteFile(sessionPath(dataDir), data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Clear removes the persisted session, signing the user out locally.
func Clear(dataDir string) error {
	if err := os.Remove(sessionPath(dataDir)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// Current returns the persisted session if one exists and has not
// expired, otherwise nil. Load errors degrade to guest mode.
func Current(dataDir string) *Session {
	s, err := Load(dataDir)
	if err != nil || s == nil {
		return nil
	}
	if s.Expired() {
		return nil
	}
	return s
}

// Login signs in with email and password against the Supabase project
// and returns the resulting session. It does not persist anything.
func Login(supabaseURL, anonKey, email, password string) (*Session, error) {
	client, err := supabase.NewClient(supabaseURL, anonKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating supabase client: %w", err)
	}

	resp, err := client.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("signing in: %w", err)
	}

	return &Session{
		UserID:       resp.User.ID.String(),
		Email:        resp.User.Email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}
