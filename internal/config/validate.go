package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate rejects configurations the server cannot run with. Messages name
// the offending field so the fix is obvious from the error alone.
func (c *Config) Validate() error {
	switch c.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("CONFIG_INVALID: transport must be stdio or http, got %q", c.Transport)
	}
	if c.Transport == "http" {
		if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
			return fmt.Errorf("CONFIG_INVALID: listen_addr %q: %w", c.ListenAddr, err)
		}
		if !strings.HasPrefix(c.MCPPath, "/") {
			return fmt.Errorf("CONFIG_INVALID: mcp_path must start with /, got %q", c.MCPPath)
		}
	}
	u, err := url.Parse(c.DocsBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CONFIG_INVALID: docs_base_url %q is not an absolute URL", c.DocsBaseURL)
	}
	if c.AccessToken == "" && c.AccessTokenEnv == "" {
		return fmt.Errorf("CONFIG_INVALID: no credential source: set access_token_env or the token environment variable")
	}
	if c.JournalEnabled && c.JournalPath == "" {
		return fmt.Errorf("CONFIG_INVALID: journal_enabled requires journal_path")
	}
	if !logLevels[c.LogLevel] {
		return fmt.Errorf("CONFIG_INVALID: log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}
