// Package api provides the arenito HTTP API: health probe, product catalog,
// chat turns and the MCP catalog tools.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8000")
	ListenAddr string
}
