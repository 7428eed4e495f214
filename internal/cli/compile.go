package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tagurit/levelpack/internal/archive"
	"github.com/tagurit/levelpack/internal/assets"
	"github.com/tagurit/levelpack/internal/checksum"
	"github.com/tagurit/levelpack/internal/compiler"
	"github.com/tagurit/levelpack/internal/config"
	"github.com/tagurit/levelpack/internal/files/filesystem"
	"github.com/tagurit/levelpack/internal/files/scanner"
	"github.com/tagurit/levelpack/internal/logging"
	"github.com/tagurit/levelpack/internal/metadata"
	"github.com/tagurit/levelpack/internal/tui"
	"github.com/tagurit/levelpack/internal/ui"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

var compileCmd = &cobra.Command{
	Use:   "compile <manifest>",
	Short: "Validate level metadata and package it into a .tab archive",
	Long: `Validate the level metadata of a manifest and write <name>.tab into the
output directory. The archive holds meta.ini and, when the manifest names
one, the thumbnail. With --content (or a content key in the manifest) the
level content and the assets it needs are packaged too.

<manifest> is a level.yaml / level.toml file or a directory holding one.

Settings are resolved in this order (later wins):
  defaults < levelpack.yaml < LEVELPACK_* environment (.env is loaded) < flags

Existing archives (--mode):
  update     Keep entries this compile does not rewrite (default)
  overwrite  Replace the archive; asks for confirmation unless --force
  fail       Refuse to touch an existing archive

The archive is written to a temporary file and moved into place only when
every step succeeded.

Examples:
  levelpack compile ./forest-ruins
  levelpack compile ./forest-ruins -o dist --mode overwrite --force
  levelpack compile ./forest-ruins/level.toml --compression-level 9`,
	Args:              RequireManifestPath,
	RunE:              runCompile,
	ValidArgsFunction: completeDirectories,
}

var compileFlags struct {
	outputDir        string
	mode             string
	force            bool
	content          string
	compressionLevel int
}

// approverFor picks how replacing an existing archive is confirmed.
// nil means nobody can confirm.
var approverFor = func(force bool) levelpack.Approver {
	if force {
		return ui.NewForcedApprover()
	}
	if tui.IsInteractive() {
		return ui.NewInteractiveApprover()
	}
	return nil
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileFlags.outputDir, "output", "o", "",
		"Output directory (default: build/ in the project)")
	compileCmd.Flags().StringVar(&compileFlags.mode, "mode", string(levelpack.ExistingUpdate),
		"How to treat an existing archive: update, overwrite or fail")
	compileCmd.Flags().BoolVar(&compileFlags.force, "force", false,
		"Skip the confirmation prompt of --mode overwrite")
	compileCmd.Flags().StringVar(&compileFlags.content, "content", "",
		"Level content file to package with its dependent assets")
	compileCmd.Flags().IntVar(&compileFlags.compressionLevel, "compression-level", archive.DefaultCompressionLevel,
		"Deflate level, -1 (default) or 0 (store) to 9 (best)")

	_ = compileCmd.RegisterFlagCompletionFunc("mode", completeExistingModes)
	_ = compileCmd.MarkFlagDirname("output")
}

func runCompile(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLoggerWithWriter(cmd.ErrOrStderr(), verbose)
	fsys := filesystem.NewOSFileSystem()

	manifest, err := metadata.LoadManifest(fsys, args[0])
	if err != nil {
		return err
	}
	logger.Verbose("Loaded manifest %s", manifest.Path)

	settings, err := resolveCompileSettings(cmd, manifest.Dir())
	if err != nil {
		return err
	}
	logger.Verbose("Output directory: %s, mode: %s, compression level: %d",
		settings.OutputDir, settings.Existing, settings.CompressionLevel)

	if compileFlags.force && settings.Existing != levelpack.ExistingOverwrite {
		return fmt.Errorf("%w: --force only applies to --mode overwrite (current mode: %s)",
			levelpack.ErrInvalidConfig, settings.Existing)
	}

	contentPath := manifest.ContentPath
	if cmd.Flags().Changed("content") {
		abs, err := filepath.Abs(compileFlags.content)
		if err != nil {
			return fmt.Errorf("failed to resolve content path: %w", err)
		}
		contentPath = levelpack.Some(abs)
	}

	provider := archive.NewZipProvider(
		archive.WithSourceFileSystem(fsys),
		archive.WithCompressionLevel(settings.CompressionLevel),
	)
	opts := []compiler.Option{
		compiler.WithFileSystem(fsys),
		compiler.WithArchiveProvider(provider),
		compiler.WithLogger(logger),
		compiler.WithExistingMode(settings.Existing),
	}
	if contentPath.IsPresent() {
		resolver, err := newAssetResolver(settings.BaseAssets, logger)
		if err != nil {
			return err
		}
		opts = append(opts, compiler.WithAssetResolver(resolver))
	}
	c := compiler.New(settings.OutputDir, opts...)

	meta := &manifest.Meta
	if settings.Existing == levelpack.ExistingOverwrite {
		if err := metadata.NewValidator(fsys, nil).Check(meta); err != nil {
			return err
		}
		if err := confirmOverwrite(cmd.Context(), c, meta); err != nil {
			return err
		}
	}

	var artifact *levelpack.Artifact
	if content, ok := contentPath.Get(); ok {
		artifact, err = c.CompileLevelContent(meta, content)
	} else {
		artifact, err = c.CompileLevel(meta)
	}
	if err != nil {
		return err
	}

	printArtifact(cmd, meta.Name, artifact)
	return nil
}

// resolveCompileSettings applies flags on top of the project configuration.
func resolveCompileSettings(cmd *cobra.Command, projectDir string) (config.Settings, error) {
	if err := config.LoadDotEnv(projectDir); err != nil {
		return config.Settings{}, err
	}

	cfg, err := config.Load(projectDir)
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return config.Settings{}, err
	}

	settings, err := config.Resolve(projectDir, cfg, os.LookupEnv)
	if err != nil {
		return config.Settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		abs, err := filepath.Abs(compileFlags.outputDir)
		if err != nil {
			return config.Settings{}, fmt.Errorf("failed to resolve output directory: %w", err)
		}
		settings.OutputDir = abs
	}
	if flags.Changed("mode") {
		if settings.Existing, err = levelpack.ParseExistingMode(compileFlags.mode); err != nil {
			return config.Settings{}, err
		}
	}
	if flags.Changed("compression-level") {
		if err := archive.ValidateCompressionLevel(compileFlags.compressionLevel); err != nil {
			return config.Settings{}, err
		}
		settings.CompressionLevel = compileFlags.compressionLevel
	}
	return settings, nil
}

// newAssetResolver indexes the base-game assets, when configured, for step 6.
func newAssetResolver(baseAssets string, logger levelpack.Logger) (levelpack.AssetResolver, error) {
	var catalog *assets.Catalog
	if baseAssets != "" {
		var err error
		catalog, err = assets.LoadCatalog(scanner.NewScanner(checksum.New()), baseAssets)
		if err != nil {
			return nil, err
		}
		logger.Verbose("Indexed %d base assets in %s", catalog.Len(), baseAssets)
	}
	return assets.NewCatalogResolver(catalog, nil), nil
}

// confirmOverwrite asks before an existing archive is replaced.
func confirmOverwrite(ctx context.Context, c *compiler.LevelCompiler, meta *levelpack.LevelMetaData) error {
	archivePath, err := c.ArchivePath(meta)
	if err != nil {
		return err
	}
	if _, err := os.Stat(archivePath); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	approver := approverFor(compileFlags.force)
	if approver == nil {
		return fmt.Errorf("%w: %s exists; use --force to replace it without a terminal",
			levelpack.ErrOverwriteDenied, archivePath)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	approved, err := approver.RequestApproval(ctx, archivePath)
	if err != nil {
		return fmt.Errorf("approval failed: %w", err)
	}
	if !approved {
		return fmt.Errorf("%w: %s", levelpack.ErrOverwriteDenied, archivePath)
	}
	return nil
}

func printArtifact(cmd *cobra.Command, levelName string, artifact *levelpack.Artifact) {
	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "\n%s Compiling '%s' completed successfully\n",
		tui.SuccessStyle.Render(tui.SymbolCheck), levelName)
	for _, entry := range artifact.Entries {
		fmt.Fprintf(errOut, "  %s %s\n", tui.SymbolBullet, entry)
	}
	fmt.Fprintf(errOut, "  level id: %s\n  sha256:   %s\n  size:     %d bytes\n",
		artifact.LevelID, artifact.SHA256, artifact.Size)

	// Archive path to stdout for pipeline consumption
	fmt.Fprintln(cmd.OutOrStdout(), artifact.Path)
}
