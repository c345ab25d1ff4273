package main

import (
	"fmt"

	"github.com/gdg-garage/eventflow-api/internal/demo"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add the demo accounts and sample events",
	Long: `Add the demo student (student@gmail.com) and organizer
(organizer@gmail.com) accounts and, when no events exist yet, the sample
campus events.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		res, err := demo.Seed(cmd.Context(), a.accounts, a.catalog)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d users and %d events\n", res.Users, res.Events)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
