package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tagurit/levelpack/internal/logging"
	"github.com/tagurit/levelpack/internal/metadata"
	"github.com/tagurit/levelpack/internal/scaffold"
	"github.com/tagurit/levelpack/internal/tui"
	"github.com/tagurit/levelpack/internal/tui/wizards"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

var initCmd = &cobra.Command{
	Use:   "init <target_path>",
	Short: "Initialize a new level project",
	Long: `Initialize a level project into the specified directory.

The project holds:
- level.yaml (or level.toml) with the level metadata
- levelpack.yaml with compile settings
- .gitignore excluding the build output

Target directory must be empty or non-existent.

When attached to a terminal and --name is not given, a wizard asks for the
level metadata. Otherwise the flags are used and the level name defaults to
the target directory name.

Examples:
  levelpack init ./forest-ruins
  levelpack init ./forest-ruins --name "Forest Ruins" --author Jane
  levelpack init . --author Jane --format toml`,
	Args:              RequireTargetPath,
	RunE:              runInit,
	ValidArgsFunction: completeDirectories,
}

var initFlags struct {
	name        string
	author      string
	description string
	thumbnail   string
	format      string
}

// Hooks replaced in tests.
var (
	isInteractive  = tui.IsInteractive
	runLevelWizard = wizards.RunLevelWizard
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initFlags.name, "name", "", "Level name (default: target directory name)")
	initCmd.Flags().StringVar(&initFlags.author, "author", "", "Level author")
	initCmd.Flags().StringVar(&initFlags.description, "description", "", "Level description")
	initCmd.Flags().StringVar(&initFlags.thumbnail, "thumbnail", "", "Thumbnail image path, relative to the project")
	initCmd.Flags().StringVarP(&initFlags.format, "format", "f", string(metadata.FormatYAML), "Manifest format (yaml, toml)")

	_ = initCmd.RegisterFlagCompletionFunc("format", completeManifestFormats)
}

func runInit(cmd *cobra.Command, args []string) error {
	targetPath := args[0]
	verbose := getVerboseFlag(cmd)
	errOut := cmd.ErrOrStderr()

	format, err := metadata.ParseManifestFormat(initFlags.format)
	if err != nil {
		return err
	}

	opts := scaffold.ProjectOptions{
		Name:        initFlags.name,
		Author:      initFlags.author,
		Description: initFlags.description,
		Thumbnail:   initFlags.thumbnail,
		Format:      format,
	}
	if opts.Name == "" {
		opts.Name = defaultLevelName(targetPath)
	}

	if !cmd.Flags().Changed("name") && isInteractive() {
		result, err := runLevelWizard(opts)
		if err != nil {
			return err
		}
		if result.Cancelled {
			fmt.Fprintln(errOut, "Initialization cancelled.")
			return nil
		}
		opts = result.Options
	}

	if strings.TrimSpace(opts.Author) == "" {
		return fmt.Errorf("%w: --author is required", levelpack.ErrInvalidConfig)
	}

	scaffolder := scaffold.NewScaffolder(logging.NewConsoleLoggerWithWriter(errOut, verbose))
	manifestPath, err := scaffolder.CreateProject(targetPath, opts)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	tree, err := scaffold.BuildFileTree(targetPath)
	if err != nil {
		fmt.Fprintf(errOut, "\n%s Level project initialized in '%s'\n", tui.SymbolCheck, targetPath)
	} else {
		fmt.Fprintf(errOut, "\n%s Level project initialized (%s)\n\n", tui.SymbolCheck, filepath.Base(manifestPath))
		fmt.Fprintln(errOut, "Created structure:")
		fmt.Fprint(errOut, tree)
	}

	fmt.Fprintln(errOut, "\nNext steps:")
	if targetPath != "." {
		fmt.Fprintf(errOut, "  cd %s\n", targetPath)
	}
	fmt.Fprintln(errOut, "  levelpack validate .")
	fmt.Fprintln(errOut, "  levelpack compile .")
	return nil
}

// defaultLevelName derives a level name from the project directory.
func defaultLevelName(targetPath string) string {
	name := filepath.Base(targetPath)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		if cwd, err := os.Getwd(); err == nil {
			if abs, err := filepath.Abs(filepath.Join(cwd, targetPath)); err == nil {
				name = filepath.Base(abs)
			}
		}
	}
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "level"
	}
	return name
}
