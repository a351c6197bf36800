package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/sackd/internal/app"
	"go.trai.ch/sackd/internal/core/domain"
)

func (c *CLI) newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "query <whatinstalled|whatavailable> <spec...>",
		Short:     "Answer a single query and print the response line",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: []string{domain.CmdWhatInstalled, domain.CmdWhatAvailable},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Query(cmd.Context(), app.QueryOptions{
				ConfigPath: configPath(cmd),
				Keyword:    args[0],
				Args:       args[1:],
			})
		},
	}
}
