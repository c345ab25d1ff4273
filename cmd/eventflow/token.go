package main

import (
	"fmt"

	"github.com/gdg-garage/eventflow-api/internal/token"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Encode and decode check-in tokens",
}

var tokenEncodeCmd = &cobra.Command{
	Use:   "encode <event-id> [registration-id]",
	Short: "Print the QR payload for an event or a registration",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registrationID := ""
		if len(args) == 2 {
			registrationID = args[1]
		}
		fmt.Fprintln(cmd.OutOrStdout(), token.Encode(args[0], registrationID))
		return nil
	},
}

var tokenDecodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Show the ids carried by a QR payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, ok := token.Decode(args[0])
		if !ok {
			return errors.New("not an EventFlow token")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "event:        %s\n", payload.EventID)
		if payload.RegistrationID != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "registration: %s\n", payload.RegistrationID)
		}
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenEncodeCmd, tokenDecodeCmd)
	rootCmd.AddCommand(tokenCmd)
}
