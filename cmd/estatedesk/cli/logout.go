package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored authentication token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := DeleteToken(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Logged out")
		return nil
	},
}
