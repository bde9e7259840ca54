package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("SPOTIFY_ACCOUNT1_CLIENT_ID", "id1")
	t.Setenv("SPOTIFY_ACCOUNT1_CLIENT_SECRET", "secret1")
	t.Setenv("SPOTIFY_ACCOUNT2_CLIENT_ID", "id2")
	t.Setenv("SPOTIFY_ACCOUNT2_CLIENT_SECRET", "secret2")
	t.Setenv("SPOTIFY_REDIRECT_URI", "")
}

func TestConfig(t *testing.T) {
	t.Run("DefaultSettings", func(t *testing.T) {
		settings := DefaultSettings()

		if settings.Files.Tokens != "spotify_tokens.json" {
			t.Errorf("expected default token file, got %s", settings.Files.Tokens)
		}
		if settings.Files.History != "transfer_history.json" {
			t.Errorf("expected default history file, got %s", settings.Files.History)
		}
		if settings.Database.Path != "trackshift.db" {
			t.Errorf("expected default database path, got %s", settings.Database.Path)
		}
		if settings.OAuth.TimeoutSeconds != 300 {
			t.Errorf("expected 300 second timeout, got %d", settings.OAuth.TimeoutSeconds)
		}
		if settings.Writes.RatePerSecond != 10.0 {
			t.Errorf("expected 10.0 writes per second, got %f", settings.Writes.RatePerSecond)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("All Credentials Present", func(t *testing.T) {
			setCredentials(t)

			config, err := LoadConfig("")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if config.Account1.ClientID != "id1" || config.Account2.ClientID != "id2" {
				t.Errorf("unexpected credentials: %+v", config)
			}
			if config.Account1.Key != "account1" || config.Account2.Key != "account2" {
				t.Errorf("unexpected account keys: %q %q", config.Account1.Key, config.Account2.Key)
			}
			if config.Account1.RedirectURI != DefaultRedirectURI {
				t.Errorf("expected default redirect URI, got %s", config.Account1.RedirectURI)
			}
			if !strings.Contains(config.Account1.Scope, "user-library-modify") {
				t.Errorf("expected write scope present, got %s", config.Account1.Scope)
			}
		})

		t.Run("Missing Variables Enumerated", func(t *testing.T) {
			setCredentials(t)
			t.Setenv("SPOTIFY_ACCOUNT1_CLIENT_ID", "")
			t.Setenv("SPOTIFY_ACCOUNT2_CLIENT_SECRET", "")

			_, err := LoadConfig("")
			if err == nil {
				t.Fatal("expected error for missing credentials")
			}

			var missing *MissingEnvError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingEnvError, got %T", err)
			}
			if len(missing.Vars) != 2 {
				t.Errorf("expected 2 missing vars, got %v", missing.Vars)
			}
			if !strings.Contains(err.Error(), "SPOTIFY_ACCOUNT1_CLIENT_ID") ||
				!strings.Contains(err.Error(), "SPOTIFY_ACCOUNT2_CLIENT_SECRET") {
				t.Errorf("expected both names in the message, got %v", err)
			}
		})

		t.Run("Redirect Override", func(t *testing.T) {
			setCredentials(t)
			t.Setenv("SPOTIFY_REDIRECT_URI", "http://127.0.0.1:9999/done")

			config, err := LoadConfig("")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Account1.RedirectURI != "http://127.0.0.1:9999/done" {
				t.Errorf("expected override applied, got %s", config.Account1.RedirectURI)
			}
			if config.Account2.RedirectURI != config.Account1.RedirectURI {
				t.Error("expected both accounts to share the redirect URI")
			}
		})

		t.Run("Settings File", func(t *testing.T) {
			setCredentials(t)

			path := filepath.Join(t.TempDir(), "trackshift.toml")
			contents := `[files]
tokens = "custom_tokens.json"
history = "custom_history.json"

[oauth]
timeout_seconds = 60

[writes]
rate_per_second = 2.5
`
			if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
				t.Fatalf("failed to write settings: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if config.Settings.Files.Tokens != "custom_tokens.json" {
				t.Errorf("expected custom token file, got %s", config.Settings.Files.Tokens)
			}
			if config.Settings.OAuth.TimeoutSeconds != 60 {
				t.Errorf("expected 60 second timeout, got %d", config.Settings.OAuth.TimeoutSeconds)
			}
			if config.Settings.Writes.RatePerSecond != 2.5 {
				t.Errorf("expected 2.5 writes per second, got %f", config.Settings.Writes.RatePerSecond)
			}
		})

		t.Run("Missing Settings File Uses Defaults", func(t *testing.T) {
			setCredentials(t)

			config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Settings.Files.Tokens != "spotify_tokens.json" {
				t.Errorf("expected embedded defaults, got %+v", config.Settings)
			}
		})

		t.Run("Malformed Settings File", func(t *testing.T) {
			setCredentials(t)

			path := filepath.Join(t.TempDir(), "trackshift.toml")
			os.WriteFile(path, []byte("[files\nbroken"), 0644)

			_, err := LoadConfig(path)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected invalid config error, got %v", err)
			}
		})
	})

	t.Run("CreateSettingsFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trackshift.toml")

		if err := CreateSettingsFile(path); err != nil {
			t.Fatalf("failed to create settings file: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("settings file should exist: %v", err)
		}

		if err := CreateSettingsFile(path); err == nil {
			t.Error("creating the settings file again should fail")
		}
	})
}
