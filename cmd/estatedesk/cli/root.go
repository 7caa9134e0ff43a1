package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "estatedesk",
	Short: "EstateDesk — real estate sales CRM",
	Long: `EstateDesk is a sales CRM for real estate teams.
Track leads, site visits, calls, and deals from the command line,
and pull up your agent dashboard without leaving the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(leadCmd)
	rootCmd.AddCommand(visitCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}
