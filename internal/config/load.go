package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Overrides holds CLI flag values that take precedence over env/file/
// defaults. Only non-nil fields are applied.
type Overrides struct {
	Transport   *string
	ListenAddr  *string
	MCPPath     *string
	DocsBaseURL *string
	Journal     *bool
	JournalPath *string
	LogLevel    *string
}

// Options for loading config.
type Options struct {
	ConfigPath string
	Overrides  *Overrides
}

// Load builds config with precedence: defaults -> .docs2mcp.yaml -> dotenv/
// env vars -> Overrides. Returned errors carry a CONFIG_INVALID prefix and
// map to exit code 2.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	// Local dotenv files for developer ergonomics. Precedence stays:
	// explicit env > .env.local > .env.
	for _, path := range []string{".env.local", ".env"} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("CONFIG_INVALID: loading %s: %w", path, err)
		}
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = ".docs2mcp.yaml"
	}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("CONFIG_INVALID: malformed YAML in %s: %w", configPath, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("CONFIG_INVALID: cannot read config file %s: %w", configPath, err)
	}

	applyEnv(cfg)
	applyOverrides(cfg, opts.Overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DOCS2MCP_TRANSPORT"); v != "" {
		cfg.Transport = v
	}
	if v := os.Getenv("DOCS2MCP_LISTEN"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("DOCS2MCP_DOCS_BASE_URL"); v != "" {
		cfg.DocsBaseURL = v
	}
	if v := os.Getenv("DOCS2MCP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	// The token value itself is only ever read from the environment or a
	// dotenv file, never from the yaml file on disk.
	if cfg.AccessTokenEnv != "" {
		if v := os.Getenv(cfg.AccessTokenEnv); v != "" {
			cfg.AccessToken = v
		}
	}
}

func applyOverrides(cfg *Config, o *Overrides) {
	if o == nil {
		return
	}
	if o.Transport != nil {
		cfg.Transport = *o.Transport
	}
	if o.ListenAddr != nil {
		cfg.ListenAddr = *o.ListenAddr
	}
	if o.MCPPath != nil {
		cfg.MCPPath = *o.MCPPath
	}
	if o.DocsBaseURL != nil {
		cfg.DocsBaseURL = *o.DocsBaseURL
	}
	if o.Journal != nil {
		cfg.JournalEnabled = *o.Journal
	}
	if o.JournalPath != nil {
		cfg.JournalPath = *o.JournalPath
	}
	if o.LogLevel != nil {
		cfg.LogLevel = *o.LogLevel
	}
}
