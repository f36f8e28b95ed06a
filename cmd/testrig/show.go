package main

import (
	"github.com/spf13/cobra"

	"github.com/rwx-research/testrig-cli/internal/errors"
)

var showCmd = &cobra.Command{
	Use:   "show <build-id>",
	Short: "Show the results & errors of a stored build",
	Long:  descriptionShow,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := testrig.Show(cmd.Context(), args[0])
		return errors.WithStack(err)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
