package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/muurk/autodm/internal/catalog"
)

// CatalogFile is the on-disk shape of a post catalog.
//
//	posts:
//	  - id: "1"
//	    username: techguru
//	    caption: Amazing new tech trends!
//	    like_count: 1234
//	    comment_count: 89
type CatalogFile struct {
	Posts []catalog.Post `yaml:"posts" json:"posts"`
}

// ErrEmptyCatalog is returned for a catalog file without posts
var ErrEmptyCatalog = errors.New("catalog has no posts")

// LoadCatalog reads and validates a post catalog file.
func LoadCatalog(path string) ([]catalog.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog and validates it. Unknown keys are rejected.
func ParseCatalog(data []byte) ([]catalog.Post, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file CatalogFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := ValidateCatalog(file.Posts); err != nil {
		return nil, err
	}
	return file.Posts, nil
}

// ValidateCatalog checks that posts are individually valid and have unique ids.
func ValidateCatalog(posts []catalog.Post) error {
	if len(posts) == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(posts))
	for i, p := range posts {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("post #%d: %w", i+1, err)
		}
		if seen[p.ID] {
			return fmt.Errorf("post #%d: %w: %s", i+1, catalog.ErrDuplicatePost, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// WriteCatalog encodes posts in the CatalogFile format.
func WriteCatalog(w io.Writer, posts []catalog.Post) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(CatalogFile{Posts: posts}); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return enc.Close()
}

// Posts returns the configured catalog, or the built-in demo posts when none is set.
func (s *Settings) Posts() ([]catalog.Post, error) {
	if s.Catalog == "" {
		return catalog.DefaultPosts(), nil
	}
	return LoadCatalog(s.Catalog)
}
