package metadata

import (
	"strings"

	"github.com/google/uuid"
)

// NamespaceLevelIdentity is the fixed UUID namespace for level identities.
// It is the UUID v5 of "levelpack/level-identity/v1" in the URL namespace.
var NamespaceLevelIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("levelpack/level-identity/v1"))

// LevelID derives a deterministic identity from a level's archive name.
//
// The name is lowercased before hashing, so "Forest_Ruins.tab" and
// "forest_ruins.tab" share an identity, matching case-insensitive filesystems
// where both would name the same archive.
func LevelID(archiveName string) uuid.UUID {
	return uuid.NewSHA1(NamespaceLevelIdentity, []byte(strings.ToLower(archiveName)))
}
