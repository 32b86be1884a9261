package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/textobjects/internal/presentation"
	"github.com/zjrosen/textobjects/internal/textobject"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List every text object",
	Long: `List every registered text object with its id, label and Vim-style
shortcuts. Formats: table (default), markdown, yaml, json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		defs := presentation.FromDefinitions(textobject.Definitions())
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatDefinitions(defs, listFormat)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", presentation.FormatTable,
		"output format: table, markdown, yaml, json")
	rootCmd.AddCommand(listCmd)
}
