package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/tramita"
	"github.com/aretw0/tramita/internal/dto"
	"github.com/aretw0/tramita/pkg/domain"
)

// Engine defines the interface required by the MCP server.
type Engine interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
	AvailableSteps(ctx context.Context, doc domain.Document) ([]domain.Step, error)
	AvailableUsers(ctx context.Context, doc domain.Document, stepID int64) ([]domain.User, error)
	Tree(ctx context.Context, history []domain.ExecutionRecord) (*domain.TreeResult, error)
	Timeline(ctx context.Context, doc domain.Document, history []domain.ExecutionRecord) (*domain.Timeline, error)
}

// StepsResponse is the structured output of the available_steps tool.
type StepsResponse struct {
	Steps []domain.Step `json:"steps" jsonschema_description:"Steps the document may be moved to"`
	Count int           `json:"count" jsonschema_description:"Number of available steps"`
}

// UsersResponse is the structured output of the available_users tool.
type UsersResponse struct {
	Users []domain.User `json:"users" jsonschema_description:"Users that may receive the document"`
	Count int           `json:"count" jsonschema_description:"Number of available users"`
}

// Server wraps the tramita Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("tramita-mcp", strings.TrimSpace(tramita.Version)),
	}
	s.registerTools()
	s.registerResources()
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
	// TOOL: available_steps
	stepsTool := mcp.NewTool("available_steps",
		mcp.WithDescription("Compute the steps a document may legally be moved to from its current step."),
		mcp.WithString("document", mcp.Required(), mcp.Description("JSON object with the document summary (pk, tt_type, what, who)")),
		mcp.WithOutputSchema[StepsResponse](),
	)
	s.mcpServer.AddTool(stepsTool, mcp.NewStructuredToolHandler(s.handleAvailableSteps))

	// TOOL: available_users
	usersTool := mcp.NewTool("available_users",
		mcp.WithDescription("Compute the users that may receive a document on a destination step."),
		mcp.WithString("document", mcp.Required(), mcp.Description("JSON object with the document summary")),
		mcp.WithString("step", mcp.Required(), mcp.Description("Destination step id")),
		mcp.WithOutputSchema[UsersResponse](),
	)
	s.mcpServer.AddTool(usersTool, mcp.NewStructuredToolHandler(s.handleAvailableUsers))

	// TOOL: build_tree
	treeTool := mcp.NewTool("build_tree",
		mcp.WithDescription("Assemble the process hierarchy into a forest annotated with a document's execution history."),
		mcp.WithString("history", mcp.Description("JSON array of execution records (what, who, when_start, memo)")),
		mcp.WithOutputSchema[domain.TreeResult](),
	)
	s.mcpServer.AddTool(treeTool, mcp.NewStructuredToolHandler(s.handleBuildTree))

	// TOOL: project_timeline
	timelineTool := mcp.NewTool("project_timeline",
		mcp.WithDescription("Project a document's executed/current/next timeline."),
		mcp.WithString("document", mcp.Required(), mcp.Description("JSON object with the document summary")),
		mcp.WithString("history", mcp.Description("JSON array of execution records")),
		mcp.WithOutputSchema[domain.Timeline](),
	)
	s.mcpServer.AddTool(timelineTool, mcp.NewStructuredToolHandler(s.handleProjectTimeline))
}

// Handler methods for structured tools

func (s *Server) handleAvailableSteps(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StepsResponse, error) {
	doc, err := parseDocument(args)
	if err != nil {
		return StepsResponse{}, err
	}

	steps, err := s.engine.AvailableSteps(ctx, doc)
	if err != nil {
		return StepsResponse{}, fmt.Errorf("resolve failed: %w", err)
	}
	return StepsResponse{Steps: steps, Count: len(steps)}, nil
}

func (s *Server) handleAvailableUsers(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (UsersResponse, error) {
	doc, err := parseDocument(args)
	if err != nil {
		return UsersResponse{}, err
	}

	stepID, ok := dto.ID(args["step"])
	if !ok {
		return UsersResponse{}, fmt.Errorf("invalid step id: %v", args["step"])
	}

	users, err := s.engine.AvailableUsers(ctx, doc, stepID)
	if err != nil {
		return UsersResponse{}, fmt.Errorf("resolve failed: %w", err)
	}
	return UsersResponse{Users: users, Count: len(users)}, nil
}

func (s *Server) handleBuildTree(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.TreeResult, error) {
	history, err := parseHistory(args)
	if err != nil {
		return domain.TreeResult{}, err
	}

	res, err := s.engine.Tree(ctx, history)
	if err != nil {
		return domain.TreeResult{}, fmt.Errorf("tree failed: %w", err)
	}
	return *res, nil
}

func (s *Server) handleProjectTimeline(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Timeline, error) {
	doc, err := parseDocument(args)
	if err != nil {
		return domain.Timeline{}, err
	}
	history, err := parseHistory(args)
	if err != nil {
		return domain.Timeline{}, err
	}

	tl, err := s.engine.Timeline(ctx, doc, history)
	if err != nil {
		return domain.Timeline{}, fmt.Errorf("timeline failed: %w", err)
	}
	return *tl, nil
}

func parseDocument(args map[string]interface{}) (domain.Document, error) {
	docStr, _ := args["document"].(string)
	if docStr == "" {
		return domain.Document{}, fmt.Errorf("document argument is required")
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(docStr), &raw); err != nil {
		return domain.Document{}, fmt.Errorf("invalid document JSON: %w", err)
	}
	return dto.Document(raw)
}

func parseHistory(args map[string]interface{}) ([]domain.ExecutionRecord, error) {
	histStr, _ := args["history"].(string)
	if histStr == "" {
		return nil, nil
	}

	var raw []any
	if err := json.Unmarshal([]byte(histStr), &raw); err != nil {
		return nil, fmt.Errorf("invalid history JSON: %w", err)
	}
	return dto.History(raw)
}

func (s *Server) registerResources() {
	// EXPOSE: tramita://metadata
	s.mcpServer.AddResource(mcp.NewResource("tramita://metadata", "Current Metadata Snapshot",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		snap, err := s.engine.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata: %w", err)
		}
		jsonBytes, _ := json.Marshal(snap)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "tramita://metadata",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
