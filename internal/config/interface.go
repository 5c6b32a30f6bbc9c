package config

import "context"

// Loader is the interface for a format-specific task file loader.
type Loader interface {
	// Extensions lists the file extensions the loader understands,
	// including the leading dot.
	Extensions() []string
	// Load parses the given files and translates them into the
	// format-agnostic model. Tasks keep the order of files and, within a
	// file, the order of declaration.
	Load(ctx context.Context, files ...string) (*Model, error)
}
