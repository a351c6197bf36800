package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/sackd/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the line protocol on stdin and stdout (default command)",
		Args:  cobra.NoArgs,
		RunE:  c.runServe,
	}
}

func (c *CLI) runServe(cmd *cobra.Command, _ []string) error {
	return c.app.Serve(cmd.Context(), app.ServeOptions{ConfigPath: configPath(cmd)})
}
