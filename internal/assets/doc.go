// Package assets decides which assets a level has to carry in its archive.
//
// The base game ships a set of assets. A level may reference further assets,
// which must then be packaged under "assets/" in the level archive. This
// package provides both halves of that decision:
//
//   - Catalog indexes the shipped assets, built by scanning the base game's
//     asset directory.
//   - ReferenceScanner extracts the asset references from level content.
//     No scanner ships yet; without one, CatalogResolver reports
//     levelpack.ErrNotImplemented.
//
// CatalogResolver combines them into a levelpack.AssetResolver:
//
//	catalog, err := assets.LoadCatalog(scanner.NewScanner(checksum.New()), "game/assets")
//	resolver := assets.NewCatalogResolver(catalog, referenceScanner)
//	missing, err := resolver.ResolveAssets("levels/forest.lvl")
package assets
