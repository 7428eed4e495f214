// Package compiler packages a level and its metadata into a level archive.
//
// LevelCompiler validates the metadata first and touches nothing when it is
// invalid. It then writes, in order:
//
//  1. meta.ini, the descriptor of the metadata
//  2. thumbnail<ext>, a raw copy of the thumbnail, when one is set
//  3. level<ext> and assets/<path>, when level content is compiled
//
// The archive is published atomically: a compile that fails at any step leaves
// the destination exactly as it was.
//
// # Usage
//
//	c := compiler.New("out", compiler.WithLogger(logger))
//	artifact, err := c.CompileLevel(&meta)
//	if errors.Is(err, levelpack.ErrValidation) {
//	    // report the violated rule
//	}
package compiler
