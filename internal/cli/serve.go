package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"docs2mcp/internal/config"
	"docs2mcp/internal/gdocs"
	"docs2mcp/internal/journal"
	"docs2mcp/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	RunE:  runServe,
}

var (
	serveTransport   string
	serveListen      string
	serveMCPPath     string
	serveDocsBaseURL string
	serveJournal     bool
	serveJournalPath string
	serveLogLevel    string
)

func init() {
	serveCmd.Flags().StringVar(&serveTransport, "transport", "", "transport: stdio|http (default from config)")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "host:port for the http transport")
	serveCmd.Flags().StringVar(&serveMCPPath, "mcp-path", "", "HTTP path for the MCP endpoint")
	serveCmd.Flags().StringVar(&serveDocsBaseURL, "docs-base-url", "", "document store base URL")
	serveCmd.Flags().BoolVar(&serveJournal, "journal", false, "record tool invocations to a local sqlite journal")
	serveCmd.Flags().StringVar(&serveJournalPath, "journal-path", "", "journal database path")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "debug|info|warn|error")
}

func runServe(cmd *cobra.Command, _ []string) error {
	overrides := &config.Overrides{}
	if cmd.Flags().Changed("transport") {
		overrides.Transport = &serveTransport
	}
	if cmd.Flags().Changed("listen") {
		overrides.ListenAddr = &serveListen
	}
	if cmd.Flags().Changed("mcp-path") {
		overrides.MCPPath = &serveMCPPath
	}
	if cmd.Flags().Changed("docs-base-url") {
		overrides.DocsBaseURL = &serveDocsBaseURL
	}
	if cmd.Flags().Changed("journal") {
		overrides.Journal = &serveJournal
	}
	if cmd.Flags().Changed("journal-path") {
		overrides.JournalPath = &serveJournalPath
	}
	if cmd.Flags().Changed("log-level") {
		overrides.LogLevel = &serveLogLevel
	}

	cfg, err := config.Load(config.Options{ConfigPath: globalFlags.ConfigPath, Overrides: overrides})
	if err != nil {
		exitWith(ExitConfigInvalid, "ERROR: "+err.Error())
	}

	// stdout is reserved for JSON-RPC in stdio mode; all logging goes to
	// stderr regardless of transport.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	var tokens gdocs.TokenSource
	if cfg.AccessToken != "" {
		tokens = gdocs.StaticTokenSource(cfg.AccessToken)
	} else {
		tokens = gdocs.EnvTokenSource(cfg.AccessTokenEnv)
	}
	store := gdocs.NewClient(cfg.DocsBaseURL, tokens)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var jnl *journal.Journal
	if cfg.JournalEnabled {
		jnl = journal.New(cfg.JournalPath)
		if err := jnl.Init(ctx); err != nil {
			exitWith(ExitGenericError, "ERROR: opening journal: "+err.Error())
		}
		defer func() { _ = jnl.Close() }()
	}

	if cfg.Transport == "http" && !globalFlags.Quiet {
		st := newStyles(os.Stderr)
		fmt.Fprintln(os.Stderr, st.Header.Render("docs2mcp"))
		fmt.Fprintf(os.Stderr, "%s %s\n", st.Key.Render("endpoint"), st.URL.Render("http://"+cfg.ListenAddr+cfg.MCPPath))
		fmt.Fprintf(os.Stderr, "%s %s\n", st.Key.Render("store"), st.Value.Render(cfg.DocsBaseURL))
	}

	srv := mcp.NewServer(cfg, store, jnl, logger)
	if err := srv.Serve(ctx); err != nil {
		if strings.Contains(err.Error(), "address already in use") {
			exitWith(ExitBindFailure, "ERROR: cannot bind "+cfg.ListenAddr+": "+err.Error())
		}
		return err
	}
	return nil
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
