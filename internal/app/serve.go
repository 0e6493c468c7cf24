package app

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-tools/internal/server"
)

func (a *application) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long:  "Run the MCP server on stdin/stdout. It stops at the end of input or on interrupt.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log.WithFields(log.Fields{
				"version": a.info.Version,
				"commit":  a.info.GitCommit,
			}).Info("starting MCP server")

			ctx := cmd.Context()
			s := server.New(newCache(), a.info.Version)

			// A blocked stdin read does not observe ctx, so the loop is
			// abandoned on interrupt.
			done := make(chan error, 1)
			go func() {
				done <- s.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
			}()

			var err error
			select {
			case err = <-done:
			case <-ctx.Done():
			}
			log.Info("MCP server stopped")
			return err
		},
	}
}
