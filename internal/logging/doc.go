// Package logging provides concrete implementations of the levelpack.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: leveled stderr output through github.com/charmbracelet/log
//   - NullLogger: discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
