package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tagurit/levelpack/internal/scaffold"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

// completeManifestFormats provides shell completion for the --format flag.
func completeManifestFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	formats, err := scaffold.ListTemplates()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return filterPrefix(formats, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeExistingModes provides shell completion for the --mode flag.
func completeExistingModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var modes []string
	for _, m := range levelpack.ExistingModes() {
		modes = append(modes, string(m))
	}
	return filterPrefix(modes, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeArchives provides shell completion for .tab archive paths.
func completeArchives(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{levelpack.ArchiveExtension}, cobra.ShellCompDirectiveFilterFileExt
}

func filterPrefix(values []string, prefix string) []string {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}
