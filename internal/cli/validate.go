package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tagurit/levelpack/internal/files/filesystem"
	"github.com/tagurit/levelpack/internal/metadata"
	"github.com/tagurit/levelpack/internal/tui"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest>",
	Short: "Validate level metadata",
	Long: `Load a level manifest and check its metadata against the packaging rules.

<manifest> is a level.yaml / level.toml file or a directory holding one.
Rules are checked in order and the first violation is reported:
name, description, author, thumbnail (exists, is a file, format, size),
creation time, last update, update order, version.

Nothing is written. Exit code 11 signals a rule violation.

Examples:
  levelpack validate ./forest-ruins
  levelpack validate ./forest-ruins/level.toml --json`,
	Args:              RequireManifestPath,
	RunE:              runValidate,
	ValidArgsFunction: completeDirectories,
}

var validateFlags struct {
	json bool
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateFlags.json, "json", false, "Output the validation result as JSON")
}

// validationReport is the --json output of validate.
type validationReport struct {
	Manifest string `json:"manifest"`
	Level    string `json:"level"`
	Valid    bool   `json:"valid"`
	Rule     string `json:"rule,omitempty"`
	Message  string `json:"message,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	fsys := filesystem.NewOSFileSystem()

	manifest, err := metadata.LoadManifest(fsys, args[0])
	if err != nil {
		return err
	}

	checkErr := metadata.NewValidator(fsys, nil).Check(&manifest.Meta)

	var violation *levelpack.ValidationError
	if checkErr != nil && !errors.As(checkErr, &violation) {
		return checkErr
	}

	if validateFlags.json {
		report := validationReport{
			Manifest: manifest.Path,
			Level:    manifest.Meta.Name,
			Valid:    violation == nil,
		}
		if violation != nil {
			report.Rule = violation.Rule
			report.Message = violation.Message
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return checkErr
	}

	if violation != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %s\n",
			tui.ErrorStyle.Render(tui.SymbolCross), manifest.Path, violation.Message)
		return checkErr
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s is valid (archive: %s)\n",
		tui.SuccessStyle.Render(tui.SymbolCheck), manifest.Path, manifest.Meta.ArchiveBaseName())
	return nil
}
