//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package dir provides a directory-based corpus source.
package dir

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ringside-ai/ringside/knowledge/document"
	"github.com/ringside-ai/ringside/knowledge/source"
	"github.com/ringside-ai/ringside/log"
)

// Verify that Source implements the source.Source interface.
var _ source.Source = (*Source)(nil)

// defaultFileExtensions are the extensions loaded when none are configured.
var defaultFileExtensions = []string{".md", ".txt"}

// Source reads plain-text documents from a directory on disk.
type Source struct {
	path           string
	name           string
	fileExtensions []string
	recursive      bool
	metadata       map[string]any
}

// Option represents a functional option for configuring the directory source.
type Option func(*Source)

// WithName sets the name of the directory source.
func WithName(name string) Option {
	return func(s *Source) {
		s.name = name
	}
}

// WithFileExtensions sets the file extensions to load. Extensions are
// matched case-insensitively and must include the leading dot.
func WithFileExtensions(extensions []string) Option {
	return func(s *Source) {
		s.fileExtensions = extensions
	}
}

// WithRecursive sets whether to process subdirectories recursively.
func WithRecursive(recursive bool) Option {
	return func(s *Source) {
		s.recursive = recursive
	}
}

// WithMetadataValue adds a single metadata key-value pair applied to
// every document produced by this source.
func WithMetadataValue(key string, value any) Option {
	return func(s *Source) {
		if s.metadata == nil {
			s.metadata = make(map[string]any)
		}
		s.metadata[key] = value
	}
}

// New creates a directory source rooted at path.
func New(path string, opts ...Option) *Source {
	s := &Source{
		path:           path,
		name:           filepath.Base(path),
		fileExtensions: defaultFileExtensions,
		recursive:      true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the source name.
func (s *Source) Name() string {
	return s.name
}

// ReadDocuments loads all matching files from the directory, one document
// per file. An unreadable directory or a directory yielding zero documents
// is an error: the corpus is required for the index to serve at all, and a
// silently empty index would be worse than failing at startup.
func (s *Source) ReadDocuments(ctx context.Context) ([]*document.Document, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("corpus directory %q: %w", s.path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus path %q is not a directory", s.path)
	}

	var docs []*document.Document
	walkErr := filepath.WalkDir(s.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if !s.recursive && path != s.path {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.matchesExtension(path) {
			return nil
		}
		doc, err := s.readFile(path)
		if err != nil {
			return err
		}
		if doc.IsEmpty() {
			log.Warnf("skipping empty corpus file: %s", path)
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("read corpus directory %q: %w", s.path, walkErr)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("corpus directory %q contains no readable documents", s.path)
	}

	log.Infof("loaded %d documents from %s", len(docs), s.path)
	return docs, nil
}

// matchesExtension reports whether the file should be loaded.
func (s *Source) matchesExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range s.fileExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// readFile loads a single file as a document.
func (s *Source) readFile(path string) (*document.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file %q: %w", path, err)
	}
	doc := document.New(filepath.Base(path), string(content))
	for k, v := range s.metadata {
		doc.Metadata[k] = v
	}
	doc.Metadata[document.MetaSource] = s.name
	doc.Metadata[document.MetaURI] = path
	return doc, nil
}
