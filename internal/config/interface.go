package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the configuration file at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Model, error)
}

// Registry maps lower-case file extensions (".hcl") to the Loader that
// understands them.
type Registry map[string]Loader

// LoaderFor picks the loader registered for path's extension.
func (r Registry) LoaderFor(path string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if loader, ok := r[ext]; ok {
		return loader, nil
	}
	return nil, fmt.Errorf("unsupported config file %q: extension %q is not one of %s", path, ext, r.extensions())
}

func (r Registry) extensions() string {
	exts := make([]string, 0, len(r))
	for ext := range r {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
