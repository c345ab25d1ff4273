package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/gdg-garage/eventflow-api/internal/events"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect events",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events by date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		all, err := a.catalog.GetAll(cmd.Context())
		if err != nil {
			return err
		}
		events.SortByDate(all)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tTIME\tTITLE\tSTATUS\tSEATS\tOPEN")
		for _, e := range all {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d/%d\t%t\n",
				e.ID, e.Date, e.Time, e.Title, e.Status, e.Attendees, e.Capacity, e.IsRegistrationOpen)
		}
		return w.Flush()
	},
}

func init() {
	eventsCmd.AddCommand(eventsListCmd)
	rootCmd.AddCommand(eventsCmd)
}
