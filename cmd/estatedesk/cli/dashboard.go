package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/estatedesk/estatedesk/internal/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your agent dashboard",
	Long: `Show your agent dashboard: today's site visits, overdue and upcoming
follow-ups, a synthesized task list, call outcomes, and progress against
your monthly target.`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	client, err := NewClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	me, err := client.Me(ctx)
	if err != nil {
		return fmt.Errorf("cannot resolve current user: %w", err)
	}

	data := dashboard.Load(ctx, client, me.ID)
	vm := dashboard.Build(time.Now(), data)

	fmt.Printf("Dashboard for %s\n\n", me.Name)

	fmt.Printf("Leads: %d total, %d hot, %d new this month\n",
		vm.Stats.TotalLeads, vm.Stats.HotLeads, vm.Stats.LeadsThisMonth)
	fmt.Printf("This month: %d calls, %d deals closed, %s revenue\n",
		vm.Stats.CallsThisMonth, vm.Stats.ClosedDealsMonth,
		dashboard.FormatAmount(vm.Stats.RevenueMonth))
	fmt.Printf("Monthly target: %d%%\n", vm.TargetPercent)
	if vm.CallsConnected+vm.CallsNotConnected > 0 {
		fmt.Printf("Recent calls: %d connected, %d not connected (%d%% connect rate)\n",
			vm.CallsConnected, vm.CallsNotConnected, vm.ConnectRate())
	}
	fmt.Println()

	if len(vm.TodayVisits) > 0 {
		fmt.Printf("Site visits today (%d):\n", len(vm.TodayVisits))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  TIME\tLEAD\tSTATUS")
		for _, v := range vm.TodayVisits {
			fmt.Fprintf(w, "  %s\t%s\t%s\n",
				v.ScheduledAt.Local().Format("3:04 PM"), v.LeadID, v.Status)
		}
		w.Flush()
		fmt.Println()
	}

	if len(vm.UpcomingVisits) > 0 {
		fmt.Printf("Upcoming visits: %d\n\n", len(vm.UpcomingVisits))
	}

	if len(vm.OverdueFollowUps) > 0 || len(vm.TodayFollowUps) > 0 {
		fmt.Printf("Follow-ups: %d overdue, %d due today\n",
			len(vm.OverdueFollowUps), len(vm.TodayFollowUps))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  NAME\tPHONE\tDUE\tTEMP")
		for _, l := range vm.OverdueFollowUps {
			fmt.Fprintf(w, "  %s\t%s\t%s (overdue)\t%s\n",
				l.Name, l.Phone, l.NextFollowupAt.Local().Format("Jan 2"), l.Temperature)
		}
		for _, l := range vm.TodayFollowUps {
			fmt.Fprintf(w, "  %s\t%s\ttoday\t%s\n", l.Name, l.Phone, l.Temperature)
		}
		w.Flush()
		fmt.Println()
	}

	if len(vm.Tasks) > 0 {
		fmt.Printf("Tasks (%d pending):\n", vm.PendingTasks())
		for _, t := range vm.Tasks {
			marker := " "
			if t.Done {
				marker = "x"
			}
			fmt.Printf("  [%s] %-6s %s\n", marker, t.Priority, t.Title)
		}
		fmt.Println()
	}

	if len(vm.Funnel) > 0 {
		fmt.Println("Pipeline:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, f := range vm.Funnel {
			fmt.Fprintf(w, "  %s\t%d\n", f.Stage.Label(), f.Count)
		}
		w.Flush()
	}

	return nil
}
