package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tagurit/levelpack/pkg/levelpack"
)

// ForcedApprover implements the Approver interface for non-interactive
// approval. It announces the overwrite and approves, used when the --force
// flag is provided.
type ForcedApprover struct {
	output io.Writer
}

// NewForcedApprover creates a new ForcedApprover writing to stderr.
func NewForcedApprover() *ForcedApprover {
	return &ForcedApprover{output: os.Stderr}
}

// RequestApproval approves unless ctx is already cancelled.
func (a *ForcedApprover) RequestApproval(ctx context.Context, archivePath string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(a.output, "⚠️  Overwriting existing archive %s (--force)\n", archivePath)
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ levelpack.Approver = (*ForcedApprover)(nil)
