package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "levelpack",
	Short: "Package game levels into .tab archives",
	Long: banner + `

levelpack validates level metadata and compiles it into a .tab archive:
a zip holding meta.ini, the optional thumbnail and, when level content is
given, the content plus the assets the base game does not ship.

Level metadata lives in a level.yaml (or level.toml) manifest. Project
settings are read from levelpack.yaml and LEVELPACK_* environment variables.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or manifest
  11 - Level metadata failed validation
  12 - Archive or source file I/O failed
  13 - User denied overwrite approval
  14 - Archive exists and --mode fail was requested
  15 - Packaging step not implemented`,
	SilenceUsage: true,
}

const banner = `  _                _                  _
 | | _____   _____| |_ __   __ _  ___| | __
 | |/ _ \ \ / / _ \ | '_ \ / _' |/ __| |/ /
 | |  __/\ V /  __/ | |_) | (_| | (__|   <
 |_|\___| \_/ \___|_| .__/ \__,_|\___|_|\_\
                    |_|`

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
