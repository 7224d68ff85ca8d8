package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/screenwalk"
	"github.com/aretw0/screenwalk/internal/logging"
	"github.com/aretw0/screenwalk/internal/presentation/graph"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GraphURI is the resource exposing the screen graph as Mermaid.
const GraphURI = "screenwalk://graph"

// Server exposes a live navigator as MCP tools, so an agent can drive the app.
type Server struct {
	nav       ports.Navigator
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server over nav.
func NewServer(nav ports.Navigator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		nav:       nav,
		logger:    logger,
		mcpServer: server.NewMCPServer("screenwalk-mcp", strings.TrimSpace(screenwalk.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP endpoints over SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
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

func names[T fmt.Stringer](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_screens",
		mcp.WithDescription("List the screens and actions of the navigation graph."),
	), s.handleListScreens)

	s.mcpServer.AddTool(mcp.NewTool("current_screen",
		mcp.WithDescription("Return the screen the navigator believes the app is on, and the navigation stack."),
	), s.handleCurrentScreen)

	s.mcpServer.AddTool(mcp.NewTool("goto",
		mcp.WithDescription("Walk the app to a screen along the shortest path."),
		mcp.WithString("screen", mcp.Required(), mcp.Description("Target screen"), mcp.Enum(names(domain.Screens())...)),
	), s.handleGoto)

	s.mcpServer.AddTool(mcp.NewTool("perform_action",
		mcp.WithDescription("Walk to a screen hosting the action and perform it."),
		mcp.WithString("action", mcp.Required(), mcp.Description("Action name"), mcp.Enum(names(domain.Actions())...)),
		mcp.WithNumber("rows", mcp.Description("Top sites rows for SelectTopSitesRows (1-4)")),
		mcp.WithString("url", mcp.Description("Address for LoadURL")),
		mcp.WithString("home_page", mcp.Description("Address for SetHomePageURL")),
	), s.handlePerformAction)

	s.mcpServer.AddTool(mcp.NewTool("open_url",
		mcp.WithDescription("Load an address in the current tab."),
		mcp.WithString("url", mcp.Required(), mcp.Description("Address to load")),
	), s.handleOpenURL)
}

type screensResponse struct {
	Launch  string   `json:"launch"`
	Screens []string `json:"screens"`
	Actions []string `json:"actions"`
}

func (s *Server) handleListScreens(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g := s.nav.Graph()
	if g == nil {
		return mcp.NewToolResultError(screenwalk.ErrNotStarted.Error()), nil
	}
	resp := screensResponse{
		Launch:  g.Launch.String(),
		Screens: names(g.ScreenList()),
		Actions: names(g.ActionList()),
	}
	return jsonResult(resp)
}

type positionResponse struct {
	Screen string   `json:"screen"`
	Stack  []string `json:"stack,omitempty"`
}

func (s *Server) position() positionResponse {
	resp := positionResponse{Screen: s.nav.Current().String()}
	if st, ok := s.nav.(interface{ Stack() []domain.Screen }); ok {
		resp.Stack = names(st.Stack())
	}
	return resp
}

func (s *Server) handleCurrentScreen(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.position())
}

func (s *Server) handleGoto(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("screen")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := domain.ParseScreen(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.nav.Goto(ctx, target); err != nil {
		s.logger.Warn("MCP goto failed", "screen", target, "err", err)
		return mcp.NewToolResultErrorFromErr("goto failed", err), nil
	}
	return jsonResult(s.position())
}

func (s *Server) handlePerformAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	action, err := domain.ParseAction(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state := domain.DefaultUserState()
	state.NumTopSitesRows = request.GetInt("rows", state.NumTopSitesRows)
	state.URL = request.GetString("url", "")
	state.HomePage = request.GetString("home_page", "")

	if err := s.nav.PerformAction(ctx, action, state); err != nil {
		s.logger.Warn("MCP perform_action failed", "action", action, "err", err)
		return mcp.NewToolResultErrorFromErr("perform_action failed", err), nil
	}
	return jsonResult(s.position())
}

func (s *Server) handleOpenURL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.nav.OpenURL(ctx, url); err != nil {
		s.logger.Warn("MCP open_url failed", "url", url, "err", err)
		return mcp.NewToolResultErrorFromErr("open_url failed", err), nil
	}
	return jsonResult(s.position())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Screen graph",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		g := s.nav.Graph()
		if g == nil {
			return nil, screenwalk.ErrNotStarted
		}
		overlay := &graph.Overlay{Current: s.nav.Current()}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GraphURI,
				MIMEType: "text/plain",
				Text:     graph.GenerateMermaid(g, overlay),
			},
		}, nil
	})
}
