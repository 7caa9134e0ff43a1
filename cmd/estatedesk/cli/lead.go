package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/estatedesk/estatedesk/internal/dashboard"
	"github.com/estatedesk/estatedesk/internal/domain"
)

var leadCmd = &cobra.Command{
	Use:   "lead",
	Short: "Work with leads",
	Long: `List leads and move them through the pipeline.

Examples:
  estatedesk lead list
  estatedesk lead list --stage negotiation
  estatedesk lead list --followups
  estatedesk lead stage 4f2c... site_visit`,
}

var (
	leadListStage     string
	leadListFollowups bool
)

var leadListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your leads",
	RunE:  runLeadList,
}

var leadStageCmd = &cobra.Command{
	Use:   "stage LEAD_ID STAGE",
	Short: "Move a lead to a new pipeline stage",
	Long: `Move a lead to a new pipeline stage.

Stages: new, contacted, qualified, site_visit, negotiation, token, closed, lost`,
	Args: cobra.ExactArgs(2),
	RunE: runLeadStage,
}

func init() {
	leadListCmd.Flags().StringVar(&leadListStage, "stage", "", "Filter by pipeline stage")
	leadListCmd.Flags().BoolVar(&leadListFollowups, "followups", false, "Only leads needing a follow-up")

	leadCmd.AddCommand(leadListCmd)
	leadCmd.AddCommand(leadStageCmd)
}

func runLeadList(cmd *cobra.Command, args []string) error {
	if leadListStage != "" {
		if _, err := domain.ParseStage(leadListStage); err != nil {
			return err
		}
	}

	client, err := NewClient()
	if err != nil {
		return err
	}

	leads, err := client.ListLeads(cmd.Context(), leadListStage, leadListFollowups)
	if err != nil {
		return fmt.Errorf("failed to list leads: %w", err)
	}

	if len(leads) == 0 {
		fmt.Fprintln(os.Stderr, "No leads found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tSTAGE\tTEMP\tBUDGET\tNEXT FOLLOW-UP")
	for _, l := range leads {
		budget := "-"
		if l.Budget > 0 {
			budget = dashboard.FormatAmountListing(l.Budget)
		}
		followup := "-"
		if l.NextFollowupAt != nil {
			followup = l.NextFollowupAt.Local().Format("Jan 2 3:04 PM")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(l.ID), l.Name, l.Phone, l.Stage, l.Temperature, budget, followup)
	}
	w.Flush()

	return nil
}

func runLeadStage(cmd *cobra.Command, args []string) error {
	stage, err := domain.ParseStage(args[1])
	if err != nil {
		return err
	}

	client, err := NewClient()
	if err != nil {
		return err
	}

	lead, err := client.UpdateLeadStage(cmd.Context(), args[0], stage)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ %s moved to %s\n", lead.Name, lead.Stage.Label())
	return nil
}

// shortID trims a UUID to its first block for table output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
