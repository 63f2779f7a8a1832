package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline once and print the run summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.pipeline(cmd.Context())
		if err != nil {
			return err
		}

		res := p.Run(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), res.Summary(a.loc))
		if !res.OK {
			return errors.New("pipeline run failed")
		}
		return nil
	},
}
