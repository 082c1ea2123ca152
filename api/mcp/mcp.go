// Package mcp exposes the arenito product catalog as MCP (Model Context
// Protocol) tools.
package mcp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/arenito/pkg/catalog"
	"github.com/papercomputeco/arenito/pkg/utils"
)

type Config struct {
	// Catalog is the product table served by the tools
	Catalog *catalog.Store

	// Logger is the configured slog logger
	Logger *slog.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the catalog tools.
func NewServer(c Config) (*Server, error) {
	if c.Catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "arenito",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        listCatalogToolName,
		Description: listCatalogDescription,
	}, s.handleListCatalog)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        findProductToolName,
		Description: findProductDescription,
	}, s.handleFindProduct)

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}
