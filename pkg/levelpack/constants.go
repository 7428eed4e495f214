package levelpack

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Command completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration, manifest or flags
	ExitValidationError = 11 // Level metadata failed validation
	ExitArchiveError    = 12 // Archive could not be written or read
	ExitOverwriteDenied = 13 // User denied overwrite approval
	ExitArchiveExists   = 14 // Destination exists and mode is "fail"
	ExitNotImplemented  = 15 // Requested packaging step is not available yet
)

// Archive layout.
const (
	// ArchiveExtension is the file extension of packaged level containers (without the dot).
	ArchiveExtension = "tab"

	// DescriptorEntryName is the archive entry holding the serialized metadata.
	DescriptorEntryName = "meta.ini"

	// ThumbnailEntryBase is the base name of the thumbnail entry; the source
	// file's extension (including the dot) is appended.
	ThumbnailEntryBase = "thumbnail"

	// ContentEntryBase is the base name of the level content entry.
	ContentEntryBase = "level"

	// AssetsEntryDir is the archive directory dependent assets are stored under.
	AssetsEntryDir = "assets/"
)

// Thumbnail limits.
const (
	// MaxThumbnailSize is the largest accepted thumbnail, in bytes (10 MiB, inclusive).
	MaxThumbnailSize int64 = 10 * 1024 * 1024
)

// AllowedThumbnailFormats lists the accepted thumbnail extensions.
// Matching is case-sensitive against the raw extension as stored in the path.
var AllowedThumbnailFormats = []string{"png", "jpg", "jpeg", "bmp", "gif", "webp"}

// Descriptor keys, in the order they are written to meta.ini.
const (
	DescriptorKeyName        = "levelname"
	DescriptorKeyDescription = "description"
	DescriptorKeyAuthor      = "author"
	DescriptorKeyCreated     = "created"
	DescriptorKeyLastUpdated = "lastupdated"
	DescriptorKeyVersion     = "version"
)

// DescriptorKeys returns the descriptor keys in write order.
func DescriptorKeys() []string {
	return []string{
		DescriptorKeyName,
		DescriptorKeyDescription,
		DescriptorKeyAuthor,
		DescriptorKeyCreated,
		DescriptorKeyLastUpdated,
		DescriptorKeyVersion,
	}
}
