package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tagurit/levelpack/pkg/levelpack"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. The user must answer "y" or "yes".
type InteractiveApprover struct {
	input  io.Reader
	output io.Writer
}

// NewInteractiveApprover creates an InteractiveApprover reading stdin and prompting on stderr.
func NewInteractiveApprover() *InteractiveApprover {
	return &InteractiveApprover{input: os.Stdin, output: os.Stderr}
}

// RequestApproval asks whether the existing archive may be replaced.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, archivePath string) (bool, error) {
	fmt.Fprintf(a.output, "\n⚠️  Archive %s already exists.\n", archivePath)
	fmt.Fprint(a.output, "Overwrite it? Entries not rebuilt by this compile are discarded. [y/N]: ")

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || input == "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		switch strings.ToLower(input) {
		case "y", "yes":
			fmt.Fprintln(a.output, "✓ Confirmed. Overwriting archive...")
			return true, nil
		}
		fmt.Fprintln(a.output, "✗ Overwrite declined. Operation cancelled.")
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ levelpack.Approver = (*InteractiveApprover)(nil)
