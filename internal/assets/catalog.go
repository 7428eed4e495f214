package assets

import (
	"fmt"
	"sort"

	"github.com/tagurit/levelpack/internal/files/scanner"
)

// Entry is one shipped asset.
type Entry struct {
	Path   string // Slash-separated path relative to the asset root
	Size   int64
	SHA256 string
}

// Catalog is the set of assets the base game ships.
// The zero value is not usable; create catalogs with NewCatalog or LoadCatalog.
type Catalog struct {
	entries map[string]Entry
}

// NewCatalog creates a catalog holding entries.
func NewCatalog(entries ...Entry) *Catalog {
	c := &Catalog{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		c.Add(e)
	}
	return c
}

// LoadCatalog scans root and indexes every file below it.
func LoadCatalog(s *scanner.Scanner, root string) (*Catalog, error) {
	result, err := s.ScanDirectory(root)
	if err != nil {
		return nil, fmt.Errorf("failed to index base assets in %s: %w", root, err)
	}

	c := NewCatalog()
	for _, f := range result.Files {
		c.Add(Entry{Path: f.Path, Size: f.SizeBytes, SHA256: f.SHA256})
	}
	return c, nil
}

// Add indexes e, replacing an entry with the same path.
func (c *Catalog) Add(e Entry) {
	e.Path = scanner.NormalizePath(e.Path)
	c.entries[e.Path] = e
}

// Lookup returns the entry for an asset path.
func (c *Catalog) Lookup(p string) (Entry, bool) {
	e, ok := c.entries[scanner.NormalizePath(p)]
	return e, ok
}

// Contains reports whether the base game ships an asset at p.
func (c *Catalog) Contains(p string) bool {
	_, ok := c.Lookup(p)
	return ok
}

// Len returns the number of indexed assets.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Paths returns all indexed paths, sorted.
func (c *Catalog) Paths() []string {
	paths := make([]string, 0, len(c.entries))
	for p := range c.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
