package main

import (
	"github.com/spf13/cobra"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/errors"
)

var (
	detectStage string

	detectCmd = &cobra.Command{
		Use:   "detect",
		Short: "List the plugins that apply to a stage",
		Long:  descriptionDetect,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := testrig.Detect(cmd.Context(), cfg.BuildRoot, build.Stage(detectStage))
			return errors.WithStack(err)
		},
	}
)

func init() {
	detectCmd.Flags().StringVar(&detectStage, "stage", string(build.StageTest), "the stage to detect plugins for")

	rootCmd.AddCommand(detectCmd)
}
