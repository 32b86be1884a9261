package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/textobjects/internal/doccache"
	"github.com/zjrosen/textobjects/internal/log"
	"github.com/zjrosen/textobjects/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer JSON-lines requests on stdin",
	Long: `Run a long-lived resolver for editor integrations. Each stdin line is a
JSON request; each stdout line is the matching JSON response.

  {"id":"1","method":"resolve","text_object":"inner-paren","path":"main.go","positions":[{"line":3,"column":10}]}
  {"id":"2","method":"apply","text_object":"around-word","path":"notes.txt","selections":[{"anchor":{"line":0,"column":0},"active":{"line":0,"column":3}}]}
  {"id":"3","method":"list"}
  {"id":"4","method":"filter","query":"ib"}

apply returns new selections, keeping any selection where the text object
has no non-empty match. Documents named by path are cached until their size or modification time
changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		srv := server.New(doccache.New(cfg.Cache), provider.Tracer(), cfg.Engine.Options(false))
		log.Info(log.CatServe, "serving", "cache", cfg.Cache.Enabled, "tracing", provider.Enabled())
		return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
