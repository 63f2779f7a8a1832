package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/feedquiz/internal/storage"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the question store",
}

var storeInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the question table or bucket if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := storage.Provision(cmd.Context(), a.store); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Question store ready (%s backend)\n", a.cfg.Store.Backend)
		return nil
	},
}

func init() {
	storeCmd.AddCommand(storeInitCmd)
}
