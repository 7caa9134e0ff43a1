package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/estatedesk/estatedesk/internal/domain"
)

var visitCmd = &cobra.Command{
	Use:   "visit",
	Short: "Work with site visits",
}

var visitListStatus string

var visitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your site visits",
	Long: `List your site visits, soonest first.

Statuses: scheduled, completed, cancelled, rescheduled`,
	RunE: runVisitList,
}

func init() {
	visitListCmd.Flags().StringVar(&visitListStatus, "status", "scheduled", "Filter by visit status")

	visitCmd.AddCommand(visitListCmd)
}

func runVisitList(cmd *cobra.Command, args []string) error {
	if visitListStatus != "" {
		if _, err := domain.ParseVisitStatus(visitListStatus); err != nil {
			return err
		}
	}

	client, err := NewClient()
	if err != nil {
		return err
	}

	// The API scopes the list to the caller.
	path := "/api/v1/site-visits"
	if visitListStatus != "" {
		path += "?status=" + visitListStatus
	}
	var visits []struct {
		ID          string `json:"id"`
		LeadID      string `json:"lead_id"`
		ScheduledAt string `json:"scheduled_at"`
		Status      string `json:"status"`
		Notes       string `json:"notes"`
	}
	if err := client.do(cmd.Context(), "GET", path, nil, &visits); err != nil {
		return fmt.Errorf("failed to list site visits: %w", err)
	}

	if len(visits) == 0 {
		fmt.Fprintln(os.Stderr, "No site visits found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLEAD\tSCHEDULED\tSTATUS\tNOTES")
	for _, v := range visits {
		scheduled := v.ScheduledAt
		if len(scheduled) > 16 {
			scheduled = scheduled[:16]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortID(v.ID), shortID(v.LeadID), scheduled, v.Status, v.Notes)
	}
	w.Flush()

	return nil
}
