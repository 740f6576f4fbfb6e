package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	stateResourceURI = "migration://state"
	scoreResourceURI = "migration://score"
)

// registerResources wires the read-only views of the engine. Reading one
// before a scan fails with the engine's precondition error.
func registerResources(srv *server.MCPServer, s *Server) {
	stateResource := mcp.NewResource(stateResourceURI,
		"Project State",
		mcp.WithResourceDescription("The current project snapshot: dependencies, imports, providers, hooks, styles, and entry points"),
		mcp.WithMIMEType("application/json"),
	)
	srv.AddResource(stateResource, s.readStateResource)

	scoreResource := mcp.NewResource(scoreResourceURI,
		"Migration Score",
		mcp.WithResourceDescription("The weighted 0-100 migration success score for the current snapshot"),
		mcp.WithMIMEType("application/json"),
	)
	srv.AddResource(scoreResource, s.readScoreResource)
}

func (s *Server) readStateResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	state, err := s.engine.State()
	if err != nil {
		return nil, err
	}
	return jsonResource(stateResourceURI, state)
}

func (s *Server) readScoreResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	score, err := s.engine.Score()
	if err != nil {
		return nil, err
	}
	return jsonResource(scoreResourceURI, score)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
