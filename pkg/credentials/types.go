package credentials

// File is the on-disk layout of credentials.toml. Keys are indexed by
// provider name under the [providers] table.
type File struct {
	Version int            `toml:"version"`
	Keys    map[string]Key `toml:"providers"`
}

// Key is one stored provider API key.
type Key struct {
	APIKey string `toml:"api_key"`
}

// Entry describes a stored key for display. The key itself is masked.
type Entry struct {
	Provider string
	EnvVar   string
	Masked   string
}
