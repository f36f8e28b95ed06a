package main

import (
	"github.com/spf13/cobra"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/cli"
	"github.com/rwx-research/testrig-cli/internal/errors"
)

var (
	runBuildID string
	runStages  []string

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the stages of a build",
		Long:  descriptionRun,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stages := make([]build.Stage, 0, len(runStages))
			for _, s := range runStages {
				stages = append(stages, build.Stage(s))
			}

			_, err := testrig.Run(cmd.Context(), cli.RunConfig{
				BuildRoot: cfg.BuildRoot,
				BuildID:   runBuildID,
				Stages:    stages,
			})

			return errors.WithStack(err)
		},
	}
)

func init() {
	runCmd.Flags().StringSliceVar(&runStages, "stage", nil, "only run these stages, in the given order")
	runCmd.Flags().StringVar(&runBuildID, "build-id", "", "continue the build with this ID instead of starting a new one")

	rootCmd.AddCommand(runCmd)
}
