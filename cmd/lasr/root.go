package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lasr",
		Short:         "Rank records against a free-text query",
		Long:          `lasr scores records by exact substring matches of a query and its tokens over selected fields.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	root.AddCommand(newServeCmd(), newQueryCmd(), newVersionCmd())
	return root
}
