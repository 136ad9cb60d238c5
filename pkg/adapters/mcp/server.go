// Package mcp exposes the graph store as an MCP server, so chat hosts can
// edit and inspect the workflow through tools instead of raw HTTP.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	chatflow "github.com/markdavemanansala/Chat-To-Flow-sub001"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/adapters/http"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
)

// Engine is the store surface the MCP tools operate on.
type Engine = http.Engine

// Server wraps the engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("chatflow-mcp", strings.TrimSpace(chatflow.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: apply_patch
	s.mcpServer.AddTool(mcp.NewTool("apply_patch",
		mcp.WithDescription("Apply a structural patch to the workflow graph. The patch is atomic: it either fully applies or leaves the graph untouched."),
		mcp.WithString("patch", mcp.Required(), mcp.Description("JSON patch object, e.g. {\"op\":\"ADD_NODE\",\"node\":{\"id\":\"t1\",\"kind\":\"trigger.schedule\"}}")),
	), s.handleApplyPatch)

	// TOOL: propose
	s.mcpServer.AddTool(mcp.NewTool("propose",
		mcp.WithDescription("Describe a change in plain language; the planner turns it into a patch and applies it when confident."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The requested change, e.g. 'add a schedule trigger'")),
	), s.handlePropose)

	// TOOL: undo / redo
	s.mcpServer.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Step back one committed change. A no-op at the oldest state."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g, moved := s.engine.Undo()
		return historyResult(g, moved)
	})
	s.mcpServer.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Step forward one undone change. A no-op at the newest state."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g, moved := s.engine.Redo()
		return historyResult(g, moved)
	})

	// TOOL: validate_graph
	s.mcpServer.AddTool(mcp.NewTool("validate_graph",
		mcp.WithDescription("Check the workflow topology: exactly one trigger, a reachable action, orphan and branch warnings."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.engine.Validate())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_summary
	s.mcpServer.AddTool(mcp.NewTool("get_summary",
		mcp.WithDescription("Get the short plain-text description of the current workflow."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(s.engine.Summary()), nil
	})
}

func (s *Server) handleApplyPatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	patchStr, err := request.RequireString("patch")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var p domain.Patch
	if err := json.Unmarshal([]byte(patchStr), &p); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid patch JSON: %v", err)), nil
	}

	res := s.engine.Apply(p)
	jsonBytes, _ := json.Marshal(res)
	if !res.OK {
		return mcp.NewToolResultError(string(jsonBytes)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handlePropose(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p, res, err := s.engine.Propose(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("planner failed: %v", err)), nil
	}
	if p == nil {
		return mcp.NewToolResultText("no confident interpretation; please rephrase"), nil
	}

	jsonBytes, _ := json.Marshal(map[string]any{"patch": p, "result": res})
	if !res.OK {
		return mcp.NewToolResultError(string(jsonBytes)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func historyResult(g domain.Graph, moved bool) (*mcp.CallToolResult, error) {
	jsonBytes, _ := json.Marshal(map[string]any{"moved": moved, "graph": g})
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: chatflow://graph
	s.mcpServer.AddResource(mcp.NewResource("chatflow://graph", "Current Workflow Graph",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := s.engine.Export()
		if err != nil {
			return nil, fmt.Errorf("failed to export graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "chatflow://graph",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
