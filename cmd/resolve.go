package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/textobjects/internal/presentation"
	"github.com/zjrosen/textobjects/internal/textobject"
)

type resolveFlags struct {
	positions        []string
	grapheme         bool
	includeDelimiter bool
	full             bool
	format           string
}

var resolveOpts resolveFlags

var resolveCmd = &cobra.Command{
	Use:   "resolve <text-object> [file]",
	Short: "Resolve a text object at one or more positions",
	Long: `Resolve a text object in a file (or stdin) at each --pos and print one
line per position: the range and a preview of the selected text, or <absent>
when the text object does not exist there.

Examples:
  # Inner parentheses at line 3, column 10
  textobjects resolve inner-paren main.go --pos 3:10

  # Several cursors at once
  textobjects resolve around-word notes.txt --pos 0:2 --pos 4:7

  # Read from stdin and emit JSON
  echo 'f(a, b)' | textobjects resolve inner-argument --pos 0:2 --format json

Run 'textobjects list' for every text object id.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 2 {
			path = args[1]
		}

		def, err := textobject.Lookup(textobject.ID(args[0]))
		if err != nil {
			return fmt.Errorf("%w (run 'textobjects list')", err)
		}

		doc, err := readDocument(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		positions, err := documentPositions(doc, resolveOpts.positions, resolveOpts.grapheme)
		if err != nil {
			return err
		}

		results := resolveResults(cmd.Context(), resolveRequest{
			def:       def,
			doc:       doc,
			positions: positions,
			opts:      cfg.Engine.Options(resolveOpts.includeDelimiter),
		})
		return resultFormatter(cmd.OutOrStdout(), resolveOpts).FormatResults(results, resolveOpts.format)
	},
}

// addResolveFlags registers the flags shared by resolve, pick and watch.
func addResolveFlags(cmd *cobra.Command, f *resolveFlags) {
	cmd.Flags().StringArrayVarP(&f.positions, "pos", "p", nil, "cursor position LINE:COLUMN, zero-based (repeatable)")
	cmd.Flags().BoolVar(&f.grapheme, "grapheme", false, "count columns in grapheme clusters instead of UTF-16 code units")
	cmd.Flags().BoolVar(&f.includeDelimiter, "include-delimiter", false, "include the adjacent comma in inner-argument")
	cmd.Flags().BoolVar(&f.full, "full", false, "print the whole selected text instead of a one-line preview")
	cmd.Flags().StringVarP(&f.format, "format", "f", presentation.FormatText, "output format: text or json")
}

func init() {
	addResolveFlags(resolveCmd, &resolveOpts)
	rootCmd.AddCommand(resolveCmd)
}
