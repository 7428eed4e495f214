package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tagurit/levelpack/internal/archive"
	"github.com/tagurit/levelpack/internal/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive>",
	Short: "Show the contents of a level archive",
	Long: `Read back a .tab archive and report its entries, the parsed meta.ini and,
when present, the thumbnail's format and dimensions.

This is read-only reporting: the archive is not validated against the
metadata rules.

Examples:
  levelpack inspect build/Forest_Ruins.tab
  levelpack inspect build/Forest_Ruins.tab --json`,
	Args:              RequireArchivePath,
	RunE:              runInspect,
	ValidArgsFunction: completeArchives,
}

var inspectFlags struct {
	json bool
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectFlags.json, "json", false, "Output the archive report as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	info, err := archive.Inspect(args[0])
	if err != nil {
		return err
	}

	if inspectFlags.json {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printArchiveInfo(cmd.OutOrStdout(), info)
	return nil
}

func printArchiveInfo(w io.Writer, info *archive.Info) {
	row := func(key, value string) {
		fmt.Fprintf(w, "  %s %s\n", tui.KeyStyle.Render(key), value)
	}

	fmt.Fprintln(w, tui.TitleStyle.Render(info.Path))
	row("level id", info.LevelID)
	row("size", fmt.Sprintf("%d bytes", info.Size))
	row("sha256", info.SHA256)

	fmt.Fprintln(w)
	fmt.Fprintln(w, tui.SubtitleStyle.Render("meta.ini"))
	for _, field := range info.Descriptor {
		row(field.Key, field.Value)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, tui.SubtitleStyle.Render(fmt.Sprintf("entries (%d)", len(info.Entries))))
	for _, e := range info.Entries {
		fmt.Fprintf(w, "  %s %s %-10d %s\n", tui.SymbolBullet, e.SHA256[:12], e.Size, e.Name)
	}

	if t := info.Thumbnail; t != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, tui.SubtitleStyle.Render("thumbnail"))
		row("entry", t.Entry)
		if t.DecodeError != "" {
			row("decode", tui.WarningStyle.Render(t.DecodeError))
		} else {
			row("format", t.Format)
			row("dimensions", fmt.Sprintf("%dx%d", t.Width, t.Height))
		}
	}
}
