// Package metadata validates level metadata and converts it to and from its
// on-disk forms.
//
// # Overview
//
// A level is described by a levelpack.LevelMetaData record. This package provides:
//   - Validation against a fixed, ordered rule set (first violation wins)
//   - The meta.ini descriptor written into every level archive
//   - Level manifests (level.yaml / level.toml) authored next to the level files
//   - Deterministic level identities derived from the archive name
//
// # Validation Rules
//
// Rules run in this order and stop at the first failure:
//  1. The record is present
//  2. Name is not blank
//  3. Description, if present, is not blank
//  4. Author is not blank
//  5. Thumbnail, if present, exists, is a regular file, has an allowed
//     extension and is at most 10 MiB
//  6. CreationTime is not in the future
//  7. LastUpdated is not in the future
//  8. LastUpdated is not before CreationTime
//  9. Version is at least 1
//
// # Descriptor Format
//
// meta.ini holds one key=value line per field, in fixed order, without escaping:
//
//	levelname=Forest Ruins
//	description=
//	author=Jane
//	created=2026-01-02T15:04:05Z
//	lastupdated=2026-01-02T15:04:05Z
//	version=1
//
// # Manifest Format
//
//	name: Forest Ruins
//	description: Overgrown temple
//	author: Jane
//	thumbnail: cover.png
//	created: 2026-01-02T15:04:05Z
//	updated: 2026-01-02T15:04:05Z
//	version: 1
//	content: forest.lvl
//
// Relative thumbnail and content paths are resolved against the manifest's directory.
//
// # Usage
//
//	manifest, err := metadata.LoadManifest(fsys, "levels/forest")
//	if err != nil {
//	    return err
//	}
//	if err := metadata.NewValidator(fsys, nil).Check(&manifest.Meta); err != nil {
//	    return err // *levelpack.ValidationError
//	}
package metadata
