// Package mcp wires the document tools and resources into an MCP server and
// serves it over stdio or streamable HTTP.
package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"docs2mcp/internal/config"
	"docs2mcp/internal/gdocs"
	"docs2mcp/internal/journal"
)

const serverVersion = "0.3.0"

// Store is the document-store boundary the tools depend on. *gdocs.Client
// satisfies it; tests substitute a fake.
type Store interface {
	Get(ctx context.Context, documentID string) (*gdocs.Document, error)
	Create(ctx context.Context, title string) (*gdocs.Document, error)
	BatchUpdate(ctx context.Context, documentID string, requests []gdocs.Request) error
}

// Server owns the shared collaborators for all tool invocations. The store
// handle is created once at process start and only ever read afterwards, so
// concurrent tool calls need no locking here.
type Server struct {
	cfg     *config.Config
	store   Store
	journal *journal.Journal // nil when journaling is disabled
	log     *slog.Logger

	mcp *server.MCPServer
}

func NewServer(cfg *config.Config, store Store, jnl *journal.Journal, log *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		store:   store,
		journal: jnl,
		log:     log,
	}
	s.mcp = server.NewMCPServer(
		"docs2mcp",
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)
	s.registerTools()
	s.registerResources()
	return s
}

// Serve blocks until the transport shuts down. Stdio logs to stderr only;
// stdout carries the JSON-RPC stream. For HTTP, canceling ctx triggers a
// graceful shutdown.
func (s *Server) Serve(ctx context.Context) error {
	switch s.cfg.Transport {
	case "http":
		return s.serveHTTP(ctx)
	default:
		s.log.Info("mcp server ready", "transport", "stdio", "version", serverVersion)
		return server.ServeStdio(s.mcp)
	}
}

func (s *Server) serveHTTP(ctx context.Context) error {
	httpSrv := server.NewStreamableHTTPServer(s.mcp,
		server.WithEndpointPath(s.cfg.MCPPath),
	)
	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.Start(s.cfg.ListenAddr) }()
	s.log.Info("mcp server ready", "transport", "http", "listen", s.cfg.ListenAddr, "path", s.cfg.MCPPath)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
