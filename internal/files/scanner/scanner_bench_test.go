package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/tagurit/levelpack/internal/checksum"
)

// BenchmarkScanDirectory benchmarks directory scanning with real filesystem
func BenchmarkScanDirectory(b *testing.B) {
	tempDir := b.TempDir()

	for i := 0; i < 10; i++ {
		dir := filepath.Join(tempDir, fmt.Sprintf("pack%d", i))
		if err := os.MkdirAll(dir, 0755); err != nil {
			b.Fatal(err)
		}
		for j := 0; j < 10; j++ {
			content := make([]byte, 16*1024)
			if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("tex%d.png", j)), content, 0644); err != nil {
				b.Fatal(err)
			}
		}
	}

	fileScanner := NewScanner(checksum.New())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fileScanner.ScanDirectory(tempDir); err != nil {
			b.Fatal(err)
		}
	}
}
