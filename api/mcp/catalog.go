package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/arenito/pkg/catalog"
)

var (
	listCatalogToolName    = "list_catalog"
	listCatalogDescription = "List every sanitary-sand format sold, with its price in CLP (VAT included), in catalog order."

	findProductToolName    = "find_product"
	findProductDescription = "Look up the sanitary-sand format for an exact weight in kilograms. Fails when that weight is not sold."
)

// ListCatalogInput takes no arguments.
type ListCatalogInput struct{}

// ListCatalogOutput is the full price table.
type ListCatalogOutput struct {
	Products []catalog.Product `json:"products"`
	Count    int               `json:"count"`
}

// FindProductInput selects a format by weight.
type FindProductInput struct {
	WeightKg int `json:"weight_kg" jsonschema:"package weight in kilograms, e.g. 8, 20 or 40"`
}

// FindProductOutput is the matching catalog row.
type FindProductOutput struct {
	Product catalog.Product `json:"product"`
}

func (s *Server) handleListCatalog(_ context.Context, _ *mcp.CallToolRequest, _ ListCatalogInput) (*mcp.CallToolResult, ListCatalogOutput, error) {
	products := s.config.Catalog.List()

	s.config.Logger.Debug("MCP list_catalog request", "count", len(products))

	return nil, ListCatalogOutput{
		Products: products,
		Count:    len(products),
	}, nil
}

func (s *Server) handleFindProduct(_ context.Context, _ *mcp.CallToolRequest, input FindProductInput) (*mcp.CallToolResult, FindProductOutput, error) {
	s.config.Logger.Debug("MCP find_product request", "weight_kg", input.WeightKg)

	product, ok := s.config.Catalog.Find(input.WeightKg)
	if !ok {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Producto no encontrado: %d kg", input.WeightKg)},
			},
		}, FindProductOutput{}, nil
	}

	return nil, FindProductOutput{Product: product}, nil
}
