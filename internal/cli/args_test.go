package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/tagurit/levelpack/pkg/levelpack"
)

func TestRequireManifestPath(t *testing.T) {
	cmd := &cobra.Command{
		Use: "compile <manifest>",
	}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireManifestPath(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <manifest>") {
			t.Errorf("expected error to name the argument, got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "Example:") {
			t.Errorf("expected error to contain 'Example:', got: %s", err.Error())
		}
		if code := levelpack.ExitCodeForError(err); code != levelpack.ExitUsageError {
			t.Errorf("expected usage exit code, got %d", code)
		}
	})

	t.Run("returns nil when arg provided", func(t *testing.T) {
		if err := RequireManifestPath(cmd, []string{"./forest-ruins"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := RequireManifestPath(cmd, []string{"a", "b"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts 1 arg") {
			t.Errorf("unexpected error: %s", err.Error())
		}
	})
}

func TestRequireArchivePath(t *testing.T) {
	cmd := &cobra.Command{Use: "inspect <archive>"}

	err := RequireArchivePath(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "<archive>") {
		t.Fatalf("expected missing archive error, got %v", err)
	}
	if !strings.Contains(err.Error(), "build/Forest_Ruins.tab") {
		t.Errorf("expected example in error, got: %s", err.Error())
	}
}
