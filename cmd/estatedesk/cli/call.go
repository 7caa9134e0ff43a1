package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/estatedesk/estatedesk/internal/domain"
)

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Work with call logs",
}

var (
	callLogOutcome  string
	callLogDuration int
	callLogNotes    string
)

var callLogCmd = &cobra.Command{
	Use:   "log LEAD_ID",
	Short: "Record a call attempt against a lead",
	Long: `Record a call attempt against a lead.

Outcomes: connected, connected_callback, connected_not_interested,
no_answer, busy, switched_off, wrong_number

Examples:
  estatedesk call log 4f2c... --outcome connected --duration 180
  estatedesk call log 4f2c... --outcome no_answer`,
	Args: cobra.ExactArgs(1),
	RunE: runCallLog,
}

func init() {
	callLogCmd.Flags().StringVar(&callLogOutcome, "outcome", "", "How the call ended")
	callLogCmd.Flags().IntVar(&callLogDuration, "duration", 0, "Call duration in seconds")
	callLogCmd.Flags().StringVar(&callLogNotes, "notes", "", "Free-form call notes")
	callLogCmd.MarkFlagRequired("outcome")

	callCmd.AddCommand(callLogCmd)
}

func runCallLog(cmd *cobra.Command, args []string) error {
	outcome, err := domain.ParseCallOutcome(callLogOutcome)
	if err != nil {
		return err
	}

	client, err := NewClient()
	if err != nil {
		return err
	}

	if err := client.LogCall(cmd.Context(), args[0], outcome, callLogDuration, callLogNotes); err != nil {
		return fmt.Errorf("failed to log call: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Call logged (%s)\n", outcome)
	return nil
}
