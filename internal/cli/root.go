// Package cli implements phrasectl, the command-line companion of the
// phrase service: local previews of phrase files and submission to the
// import endpoint.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekmp/osmosmjerka-sub000/internal/core"
	"github.com/bartekmp/osmosmjerka-sub000/internal/phrase"
)

// maxInputSize caps files read by preview and submit.
const maxInputSize = 5 << 20

var version = "dev"

// SetVersionInfo sets the version string shown by --version and the
// version command. Commit and date are optional.
func SetVersionInfo(v, commit, date string) {
	parts := []string{v}
	if commit != "" {
		parts = append(parts, commit)
	}
	if date != "" {
		if len(date) > 10 {
			date = date[:10]
		}
		parts = append(parts, date)
	}
	version = strings.Join(parts, " ")
}

// NewRootCmd builds the phrasectl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "phrasectl",
		Short: "Preview and import delimited phrase lists",
		Long: `phrasectl checks delimited phrase lists (categories, phrase, translation)
the same way the admin console does, and submits them to the phrase service.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newPreviewCmd(), newSubmitCmd(), newVersionCmd())
	return root
}

// Execute runs phrasectl and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "phrasectl: %v\n", err)
		os.Exit(1)
	}
}

// separatorFlag registers the shared --separator flag.
func separatorFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "separator", "s", "auto", `separator: auto, ";", ",", "|" or tab`)
}

// readInput reads the named file, or stdin when no file or "-" is given.
// A BOM is skipped and invalid UTF-8 replaced.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	return core.ReadContent(r, maxInputSize)
}

// userError renders err the way the admin console shows it.
func userError(err error) error {
	if core.IsUserFacing(err) {
		return fmt.Errorf("%s", core.FormatUserError(err))
	}
	return err
}

// parseMode wraps phrase.ParseMode with the user message.
func parseMode(label string) (phrase.Mode, error) {
	mode, err := phrase.ParseMode(label)
	if err != nil {
		return 0, userError(err)
	}
	return mode, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the phrasectl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "phrasectl %s\n", version)
		},
	}
}
