package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/overlay"
	"github.com/aretw0/overlay/pkg/domain"
	"github.com/aretw0/overlay/pkg/render"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PagesURI is the resource listing every page.
const PagesURI = "overlay://pages"

// PagesResponse is the output of the list_pages tool.
type PagesResponse struct {
	Pages []domain.PageInfo `json:"pages" jsonschema_description:"Pages in sidebar order"`
}

// RenderResponse is the output of the render_page tool.
type RenderResponse struct {
	ID      string            `json:"id" jsonschema_description:"The rendered page"`
	Format  string            `json:"format" jsonschema_description:"Output format"`
	Content string            `json:"content" jsonschema_description:"Rendered page content"`
	TOC     []domain.TOCEntry `json:"toc" jsonschema_description:"Headings of the page with their anchors"`
}

// Site defines what the MCP server needs from an overlay site.
type Site interface {
	Pages(ctx context.Context) ([]domain.PageInfo, error)
	TOC(ctx context.Context, id string) ([]domain.TOCEntry, error)
	Render(ctx context.Context, id, format string) ([]byte, error)
}

// Server wraps a Site and exposes it as an MCP Server.
type Server struct {
	site      Site
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(site Site) *Server {
	s := &Server{
		site:      site,
		mcpServer: server.NewMCPServer("overlay-mcp", strings.TrimSpace(overlay.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
// It returns when ctx is cancelled or the listener fails.
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

	// Channel to listen for errors coming from the listener.
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	listTool := mcp.NewTool("list_pages",
		mcp.WithDescription("List the documentation pages in sidebar order."),
		mcp.WithOutputSchema[PagesResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListPages))

	renderTool := mcp.NewTool("render_page",
		mcp.WithDescription("Render a documentation page, applying its component overrides."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Page ID, e.g. fmu/general_preparations")),
		mcp.WithString("format", mcp.Description("Output format: "+strings.Join(render.FormatNames(), ", ")+" (default markdown)")),
		mcp.WithOutputSchema[RenderResponse](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRenderPage))
}

func (s *Server) handleListPages(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PagesResponse, error) {
	pages, err := s.site.Pages(ctx)
	if err != nil {
		return PagesResponse{}, fmt.Errorf("list failed: %w", err)
	}
	return PagesResponse{Pages: pages}, nil
}

func (s *Server) handleRenderPage(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RenderResponse, error) {
	raw, _ := args["id"].(string)
	id, err := domain.CleanID(raw)
	if err != nil {
		return RenderResponse{}, err
	}
	format, _ := args["format"].(string)
	if format == "" {
		format = render.FormatMarkdown
	}

	out, err := s.site.Render(ctx, id, format)
	if err != nil {
		return RenderResponse{}, fmt.Errorf("render failed: %w", err)
	}
	toc, err := s.site.TOC(ctx, id)
	if err != nil {
		return RenderResponse{}, fmt.Errorf("toc failed: %w", err)
	}

	return RenderResponse{
		ID:      id,
		Format:  format,
		Content: string(out),
		TOC:     toc,
	}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(PagesURI, "Documentation Pages",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		pages, err := s.site.Pages(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list pages: %w", err)
		}
		jsonBytes, _ := json.Marshal(pages)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      PagesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
