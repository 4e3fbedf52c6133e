// Package config builds the runtime configuration with the precedence
// defaults < config file < dotenv/environment < CLI flag overrides.
package config

// Config is the fully resolved runtime configuration.
type Config struct {
	// Transport selects how the MCP server is exposed: "stdio" or "http".
	Transport string `yaml:"transport"`
	// ListenAddr and MCPPath apply only to the http transport.
	ListenAddr string `yaml:"listen_addr"`
	MCPPath    string `yaml:"mcp_path"`

	// DocsBaseURL points at the document store; overridable for testing
	// against a local fake.
	DocsBaseURL string `yaml:"docs_base_url"`
	// AccessToken is a runtime-only bearer token value. Not persisted.
	AccessToken string `yaml:"-"`
	// AccessTokenEnv names the environment variable read at call time
	// when AccessToken itself is unset.
	AccessTokenEnv string `yaml:"access_token_env"`

	// JournalEnabled turns on the local sqlite audit log at JournalPath.
	JournalEnabled bool   `yaml:"journal_enabled"`
	JournalPath    string `yaml:"journal_path"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration before any overlay.
func Default() *Config {
	return &Config{
		Transport:      "stdio",
		ListenAddr:     "127.0.0.1:8765",
		MCPPath:        "/mcp",
		DocsBaseURL:    "https://docs.googleapis.com",
		AccessTokenEnv: "GDOCS_ACCESS_TOKEN",
		JournalEnabled: false,
		JournalPath:    ".docs2mcp.journal.db",
		LogLevel:       "info",
	}
}
