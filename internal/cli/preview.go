package cli

import (
	"github.com/spf13/cobra"

	"github.com/bartekmp/osmosmjerka-sub000/internal/phrase"
)

func newPreviewCmd() *cobra.Command {
	var separator string

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Preview how a phrase list will be parsed",
		Long: `Parse the first lines of a phrase list and show the detected separator,
whether a header line was found and how each line splits into
categories, phrase and translation.

Reads stdin when no file (or "-") is given. Exits non-zero when the
preview reports an error, so it can gate scripts before submit.

Examples:
  phrasectl preview animals.csv
  phrasectl preview --separator tab animals.tsv
  pbpaste | phrasectl preview`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseMode(separator)
			if err != nil {
				return err
			}
			content, err := readInput(cmd, args)
			if err != nil {
				return userError(err)
			}

			p := phrase.PreviewText(content, mode)
			renderPreview(cmd.OutOrStdout(), p)
			if p.Err != nil {
				return userError(p.Err)
			}
			return nil
		},
	}

	separatorFlag(cmd, &separator)
	return cmd
}
