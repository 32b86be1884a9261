package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/textobjects/internal/log"
	"github.com/zjrosen/textobjects/internal/picker"
	"github.com/zjrosen/textobjects/internal/textobject"
)

var pickOpts resolveFlags

var pickCmd = &cobra.Command{
	Use:   "pick <file>",
	Short: "Choose a text object interactively, then resolve it",
	Long: `Open a filterable list of text objects. Typing narrows the list by
shortcut first (case-sensitive, so iw and iW differ), then by label.
Enter resolves the chosen text object at every --pos; Esc exits quietly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		positions, err := documentPositions(doc, pickOpts.positions, pickOpts.grapheme)
		if err != nil {
			return err
		}

		item, chosen, err := picker.Run(cmd.Context(), picker.Config{
			Placeholder:     cfg.Picker.Placeholder,
			Items:           picker.ItemsFromDefinitions(textobject.Definitions()),
			MaxVisibleItems: cfg.Picker.MaxVisibleItems,
		})
		if err != nil {
			return err
		}
		if !chosen {
			log.Debug(log.CatPicker, "picker dismissed")
			return nil
		}

		def, err := textobject.Lookup(item.ID)
		if err != nil {
			return err
		}
		log.Debug(log.CatPicker, "picked", "id", def.ID)

		results := resolveResults(cmd.Context(), resolveRequest{
			def:       def,
			doc:       doc,
			positions: positions,
			opts:      cfg.Engine.Options(pickOpts.includeDelimiter),
		})
		return resultFormatter(cmd.OutOrStdout(), pickOpts).FormatResults(results, pickOpts.format)
	},
}

func init() {
	addResolveFlags(pickCmd, &pickOpts)
	rootCmd.AddCommand(pickCmd)
}
