package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/estatedesk/estatedesk/internal/db"
	"github.com/estatedesk/estatedesk/internal/report"
)

var (
	reportOut   string
	reportAgent string
	reportTitle string
	reportDB    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a PDF sales report",
	Long: `Generate a PDF sales report straight from the database.

This command connects to Postgres directly rather than going through the
API, so it needs DATABASE_URL (or --db) and works without a login.

Examples:
  estatedesk report --out sales.pdf
  estatedesk report --out mine.pdf --agent 4f2c1a...
  estatedesk report --out q3.pdf --title "Q3 Sales Review"`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportOut, "out", "report.pdf", "Output PDF path")
	reportCmd.Flags().StringVar(&reportAgent, "agent", "", "Restrict the report to one agent's book")
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "Report title (default \"Sales Report\")")
	reportCmd.Flags().StringVar(&reportDB, "db", "", "Postgres connection string (default $DATABASE_URL)")
}

func runReport(cmd *cobra.Command, args []string) error {
	databaseURL := reportDB
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("no database configured: set DATABASE_URL or pass --db")
	}

	ctx := cmd.Context()
	database, err := db.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("cannot connect to database: %w", err)
	}
	defer database.Close()

	leads, err := database.ListLeads(ctx, db.LeadFilter{})
	if err != nil {
		return err
	}
	deals, err := database.ListDeals(ctx, "")
	if err != nil {
		return err
	}
	calls, err := database.ListCallLogs(ctx, "", 0)
	if err != nil {
		return err
	}
	visits, err := database.ListSiteVisits(ctx, db.VisitFilter{})
	if err != nil {
		return err
	}

	f, err := os.Create(reportOut)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", reportOut, err)
	}
	defer f.Close()

	in := &report.Input{
		Leads:       leads,
		Deals:       deals,
		Calls:       calls,
		Visits:      visits,
		AgentID:     reportAgent,
		Title:       reportTitle,
		GeneratedAt: time.Now(),
	}
	if err := report.Generate(in, f); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", reportOut, err)
	}

	fmt.Fprintf(os.Stderr, "✓ Report written to %s (%d leads, %d deals)\n",
		reportOut, len(leads), len(deals))
	return nil
}
