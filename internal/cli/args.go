package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// requireOneArg validates that exactly one positional argument is provided.
// A missing argument is reported with usage and an example.
func requireOneArg(name, example string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return fmt.Errorf(`missing required argument: <%s>

Usage: %s

Example:
  %s %s`, name, cmd.UseLine(), cmd.CommandPath(), example)
		}
		if len(args) > 1 {
			return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
		}
		return nil
	}
}

// RequireManifestPath validates the <manifest> argument of validate and compile.
var RequireManifestPath = requireOneArg("manifest", "./forest-ruins")

// RequireArchivePath validates the <archive> argument of inspect.
var RequireArchivePath = requireOneArg("archive", "build/Forest_Ruins.tab")

// RequireTargetPath validates the <target_path> argument of init.
var RequireTargetPath = requireOneArg("target_path", "./forest-ruins")
