package assets

import (
	"fmt"

	"github.com/tagurit/levelpack/internal/files/scanner"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

// Reference is an asset that level content depends on.
type Reference struct {
	// Path is the asset's path relative to the game's asset root.
	Path string

	// SourcePath is the local file providing the asset, if any.
	SourcePath string
}

// ReferenceScanner extracts the asset references from a level content file.
type ReferenceScanner interface {
	ScanReferences(contentPath string) ([]Reference, error)
}

// Missing returns the references the catalog does not contain, in input order
// and without repeated paths. A nil catalog contains nothing.
func Missing(catalog *Catalog, refs []Reference) []Reference {
	seen := make(map[string]bool, len(refs))
	var missing []Reference
	for _, ref := range refs {
		p := scanner.NormalizePath(ref.Path)
		if seen[p] {
			continue
		}
		seen[p] = true
		if catalog != nil && catalog.Contains(p) {
			continue
		}
		ref.Path = p
		missing = append(missing, ref)
	}
	return missing
}

// CatalogResolver implements levelpack.AssetResolver by scanning level
// content for references and keeping those the base game does not ship.
type CatalogResolver struct {
	catalog *Catalog
	scanner ReferenceScanner
}

// NewCatalogResolver creates a resolver. refScanner may be nil, in which case
// ResolveAssets reports levelpack.ErrNotImplemented.
func NewCatalogResolver(catalog *Catalog, refScanner ReferenceScanner) *CatalogResolver {
	return &CatalogResolver{catalog: catalog, scanner: refScanner}
}

// ResolveAssets implements levelpack.AssetResolver.
func (r *CatalogResolver) ResolveAssets(contentPath string) ([]levelpack.Asset, error) {
	if r.scanner == nil {
		return nil, fmt.Errorf("%w: scanning %s for asset references", levelpack.ErrNotImplemented, contentPath)
	}

	refs, err := r.scanner.ScanReferences(contentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for asset references: %w", contentPath, err)
	}

	missing := Missing(r.catalog, refs)
	result := make([]levelpack.Asset, 0, len(missing))
	for _, ref := range missing {
		if ref.SourcePath == "" {
			return nil, fmt.Errorf("%w: asset %s is not shipped with the base game and has no local source",
				levelpack.ErrArchiveIO, ref.Path)
		}
		result = append(result, levelpack.Asset{SourcePath: ref.SourcePath, ArchivePath: ref.Path})
	}
	return result, nil
}

// Verify CatalogResolver implements the interface at compile time
var _ levelpack.AssetResolver = (*CatalogResolver)(nil)
