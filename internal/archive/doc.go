// Package archive writes and reads level archives (.tab files).
//
// A level archive is a zip container. Entries are Deflate-compressed with
// github.com/klauspost/compress/flate, and the archive comment records the
// level identity as "levelid=<uuid>".
//
// # Writing
//
// ZipProvider implements levelpack.ArchiveProvider. Every writer assembles the
// archive in a temporary file next to the destination and publishes it with a
// rename on Commit, so a failed compile never leaves a partial archive behind
// and never damages an archive that already exists:
//
//	w, err := archive.NewZipProvider().CreateForUpdate("out/Forest_Ruins.tab", levelpack.ExistingUpdate)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	entry, err := w.CreateEntry("meta.ini")
//	...
//	published, err := w.Commit()
//
// In update mode, entries of the existing archive that were not rewritten are
// carried over unchanged.
//
// # Reading
//
// Inspect lists the entries of an archive with sizes and digests, parses its
// meta.ini and reports the thumbnail's dimensions. ReadEntry returns the raw
// bytes of one entry.
package archive
