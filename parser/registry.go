// Package parser routes optical design files to the parser that
// understands their format, keyed by file extension.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/opd-ai/obb/model"
	"github.com/opd-ai/obb/zemax"
)

// DesignParser converts an external design file into a surface group.
type DesignParser interface {
	// Parse reads the file at path and returns the design it contains.
	Parse(path string) (*model.SurfaceGroup, error)
	// Extensions lists the file extensions (with leading dot, lower
	// case) this parser handles.
	Extensions() []string
}

// Registry maps file extensions to design parsers. The zero value is
// not usable; construct with NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]DesignParser
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]DesignParser)}
}

// DefaultRegistry returns a registry with all built-in parsers
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Built-in parsers never collide, so Register cannot fail here.
	_ = r.Register(zemax.NewParser())
	return r
}

// Register adds a parser for each extension it reports. Registering a
// second parser for an extension already claimed is an error.
func (r *Registry) Register(p DesignParser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range p.Extensions() {
		ext = strings.ToLower(ext)
		if _, exists := r.parsers[ext]; exists {
			return fmt.Errorf("parser already registered for extension %s", ext)
		}
		r.parsers[ext] = p
	}
	return nil
}

// ParserFor returns the parser registered for the file's extension.
func (r *Registry) ParserFor(path string) (DesignParser, error) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	p, ok := r.parsers[ext]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no parser registered for extension %q", ext)
	}
	return p, nil
}

// Parse routes the file to its parser and returns the parsed design.
func (r *Registry) Parse(path string) (*model.SurfaceGroup, error) {
	p, err := r.ParserFor(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(path)
}

// Extensions lists every registered extension in unspecified order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		exts = append(exts, ext)
	}
	return exts
}
