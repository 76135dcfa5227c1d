// Package mcp exposes the weave renderer as a Model Context Protocol server,
// so agents can produce safely-encoded markup without implementing escaping
// themselves.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/weave"
	"github.com/aretw0/weave/internal/compiler"
	"github.com/aretw0/weave/pkg/encoders"
)

// Server wraps the document compiler and exposes it over MCP.
type Server struct {
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer() *Server {
	s := &Server{
		mcpServer: server.NewMCPServer("weave-mcp", strings.TrimSpace(weave.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	renderTool := mcp.NewTool("render_markup",
		mcp.WithDescription("Render a weave fragment document (YAML or JSON) into safely-encoded markup. Untrusted 'text' entries are escaped exactly once; 'raw' entries are emitted verbatim."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The fragment document, YAML or JSON")),
		mcp.WithString("encoder", mcp.Description("Target markup: html (default), markdown, or none")),
	)
	s.mcpServer.AddTool(renderTool, s.handleRender)

	s.mcpServer.AddTool(mcp.NewTool("list_encoders",
		mcp.WithDescription("List the available encoder names."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("html, markdown, none"), nil
	})
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docStr, err := request.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	enc, encName, ok := encoders.ByName(request.GetString("encoder", "html"))
	if !ok {
		return mcp.NewToolResultError("unknown encoder (expected html, markdown, or none)"), nil
	}

	doc, err := compiler.Parse([]byte(docStr))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
	}
	builder, err := doc.Build()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("compile failed: %v", err)), nil
	}
	out, err := builder.Render(enc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	slog.Debug("MCP render", "encoder", encName, "bytes", len(out))
	return mcp.NewToolResultText(out), nil
}
