package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for ttt, stored in ~/.ttt/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	OneDrive OneDriveConfig `json:"onedrive"`
	Log      LogConfig      `json:"log"`
	Cache    CacheConfig    `json:"cache"`
	Server   ServerConfig   `json:"server"`
}

// OneDriveConfig holds the cloud sync settings.
type OneDriveConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `json:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `json:"client_id"`
	// FileName is the document name inside the app folder.
	FileName string `json:"file_name"`
	// AutoSync pushes the working copy after every change once signed in.
	AutoSync bool `json:"auto_sync"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
	File   string `json:"file"`
}

// CacheConfig locates the local working copy.
type CacheConfig struct {
	Path string `json:"path"`
}

// ServerConfig holds defaults for `ttt serve`.
type ServerConfig struct {
	Addr string `json:"addr"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the app registration used by the browser version of
	// the tracker, so both read the same app folder.
	DefaultClientID = "569971d1-9f8c-4db3-bd24-f9efe5e07947"
	// DefaultFileName is the document name in the OneDrive app folder.
	DefaultFileName = "time-tracker-data.json"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
	DefaultAddr      = "127.0.0.1:8080"

	// envLogLevel overrides log.level.
	envLogLevel = "TTT_LOG_LEVEL"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		OneDrive: OneDriveConfig{
			TenantID: DefaultTenantID,
			ClientID: DefaultClientID,
			FileName: DefaultFileName,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Cache: CacheConfig{
			Path: defaultCachePath(),
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// ttt configuration – ~/.ttt/config.json
//
// All settings are optional; the built-in defaults shown below work out of
// the box. Edit this file to customise ttt behaviour.
{
  // ── OneDrive sync ────────────────────────────────────────────────────────
  "onedrive": {
    // Azure AD tenant ID.
    // • "common"  – personal Microsoft accounts and any organisation (default)
    // • Your organisation's tenant GUID
    "tenant_id": "common",

    // Azure application (client) ID used for the OAuth2 device code flow.
    // The built-in value is shared with the browser app so both see the
    // same app folder.
    "client_id": "569971d1-9f8c-4db3-bd24-f9efe5e07947",

    // Document name inside the OneDrive app folder.
    "file_name": "time-tracker-data.json",

    // Push the working copy to OneDrive after every change (needs
    // ttt onedrive login first).
    "auto_sync": false
  },

  // ── Diagnostics ──────────────────────────────────────────────────────────
  "log": {
    // debug, info, warn or error. TTT_LOG_LEVEL overrides this.
    "level": "info",
    // "console" for readable lines, "json" for structured output.
    "format": "console",
    // Write logs to this file instead of stderr.
    "file": ""
  },

  // ── Local working copy ───────────────────────────────────────────────────
  "cache": {
    // SQLite database holding the current document. Empty = ~/.ttt/cache.db
    "path": ""
  },

  // ── ttt serve ────────────────────────────────────────────────────────────
  "server": {
    "addr": "127.0.0.1:8080"
  }
}
`

// Dir returns ~/.ttt.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ttt"), nil
}

// configFilePath returns the path to ~/.ttt/config.json.
func configFilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func defaultCachePath() string {
	dir, err := Dir()
	if err != nil {
		return "cache.db"
	}
	return filepath.Join(dir, "cache.db")
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.ttt/config.json, creating it with annotated defaults on first
// run. Lines starting with // are treated as comments and stripped before
// JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		cfg := defaultConfig()
		applyEnv(&cfg)
		return cfg, nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	applyEnv(&cfg)
	return cfg, nil
}

// parse decodes a commented config and fills zero-value fields with the
// built-in defaults so callers always get a usable Config even if the user
// only partially fills in the file.
func parse(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
		return Config{}, err
	}

	def := defaultConfig()
	if cfg.OneDrive.TenantID == "" {
		cfg.OneDrive.TenantID = def.OneDrive.TenantID
	}
	if cfg.OneDrive.ClientID == "" {
		cfg.OneDrive.ClientID = def.OneDrive.ClientID
	}
	if cfg.OneDrive.FileName == "" {
		cfg.OneDrive.FileName = def.OneDrive.FileName
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = def.Cache.Path
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
