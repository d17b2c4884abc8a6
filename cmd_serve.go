package main

import (
	"github.com/spf13/cobra"

	"github.com/jacokyle01/critical-moves/server"
)

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.NewServer(cfg.Output.Dir, logger.Sugar())
	if err != nil {
		return err
	}
	return srv.ListenAndServe(cfg.Server.Addr)
}
