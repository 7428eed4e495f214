// Package checksum provides content hashing for archive entries and published archives.
//
// Digests are hex-encoded SHA-256 values. They are reported by `levelpack compile`
// for the published archive, by `levelpack inspect` for every entry, and used by
// the asset catalog to identify shipped base-game files.
//
// # Example Usage
//
//	calculator := checksum.New()
//	digest := calculator.CalculateRaw(content)
//	digest, err := calculator.CalculateReader(file)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
