package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed trackshift.example.toml
var exampleConf []byte

// DefaultRedirectURI is shared by both accounts unless SPOTIFY_REDIRECT_URI is set.
const DefaultRedirectURI = "http://127.0.0.1:8888/callback"

// DefaultScope lists every capability the transfer needs on either side.
const DefaultScope = "user-library-read user-library-modify playlist-read-private playlist-modify-private playlist-modify-public user-read-private"

// requiredEnvVars must all be present before any network activity.
var requiredEnvVars = []string{
	"SPOTIFY_ACCOUNT1_CLIENT_ID",
	"SPOTIFY_ACCOUNT1_CLIENT_SECRET",
	"SPOTIFY_ACCOUNT2_CLIENT_ID",
	"SPOTIFY_ACCOUNT2_CLIENT_SECRET",
}

// AccountConfig holds one account's OAuth application credentials.
// Loaded once from the environment at startup and immutable afterwards.
type AccountConfig struct {
	Key          string // token store key prefix, e.g. "account1"
	Name         string // display name, e.g. "Account 1"
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scope        string
}

// Config is the full application configuration: both account credentials plus
// tunable settings from an optional TOML file.
type Config struct {
	Account1 AccountConfig
	Account2 AccountConfig
	Settings Settings
}

// Settings contains non-secret tuning loaded from trackshift.toml.
type Settings struct {
	Files    FilesConfig    `toml:"files"`
	Database DatabaseConfig `toml:"database"`
	OAuth    OAuthConfig    `toml:"oauth"`
	Writes   WritesConfig   `toml:"writes"`
}

// FilesConfig contains the persisted JSON file paths.
type FilesConfig struct {
	Tokens  string `toml:"tokens"`
	History string `toml:"history"`
}

// DatabaseConfig contains the transfer archive database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// OAuthConfig contains the interactive authorization settings.
type OAuthConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// WritesConfig contains write throttle settings.
type WritesConfig struct {
	RatePerSecond float64 `toml:"rate_per_second"`
}

// MissingEnvError enumerates the environment variables absent at startup.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Vars, ", "))
}

// LoadConfig reads credentials from the environment (after loading a local
// .env file if one exists) and settings from the TOML file at path.
//
// A missing settings file falls back to the embedded defaults; missing
// environment variables are a hard error listing every absent name.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var missing []string
	for _, v := range requiredEnvVars {
		if os.Getenv(v) == "" {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingEnvError{Vars: missing}
	}

	redirect := os.Getenv("SPOTIFY_REDIRECT_URI")
	if redirect == "" {
		redirect = DefaultRedirectURI
	}

	config := &Config{
		Account1: AccountConfig{
			Key:          "account1",
			Name:         "Account 1",
			ClientID:     os.Getenv("SPOTIFY_ACCOUNT1_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_ACCOUNT1_CLIENT_SECRET"),
			RedirectURI:  redirect,
			Scope:        DefaultScope,
		},
		Account2: AccountConfig{
			Key:          "account2",
			Name:         "Account 2",
			ClientID:     os.Getenv("SPOTIFY_ACCOUNT2_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_ACCOUNT2_CLIENT_SECRET"),
			RedirectURI:  redirect,
			Scope:        DefaultScope,
		},
		Settings: DefaultSettings(),
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read settings file: %w", err)
			}
			if err := toml.Unmarshal(data, &config.Settings); err != nil {
				return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
			}
		}
	}

	return config, nil
}

// DefaultSettings returns Settings parsed from the embedded example file.
func DefaultSettings() Settings {
	var settings Settings
	if err := toml.Unmarshal(exampleConf, &settings); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default settings: %v", err))
	}
	return settings
}

// CreateSettingsFile writes the embedded example settings to path.
func CreateSettingsFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("settings file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
