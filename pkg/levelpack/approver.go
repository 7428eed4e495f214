package levelpack

import "context"

// Approver handles user interaction before an existing archive is replaced.
//
// Implementations:
//   - ForcedApprover: Announces the overwrite and approves (--force)
//   - InteractiveApprover: Asks the user to confirm on the terminal
type Approver interface {
	// RequestApproval asks for confirmation before replacing the archive at archivePath.
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, archivePath string) (bool, error)
}
