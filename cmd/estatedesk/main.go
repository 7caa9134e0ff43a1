// EstateDesk CLI — work your lead book from the command line
//
// Usage:
//
//	estatedesk login --server https://crm.example.com --email agent@example.com
//	estatedesk dashboard
//	estatedesk lead list --followups
//	estatedesk lead stage <lead-id> visit_scheduled
//	estatedesk visit list --status scheduled
//	estatedesk call log <lead-id> --outcome connected --duration 180
//	estatedesk report --out sales.pdf
package main

import (
	"fmt"
	"os"

	"github.com/estatedesk/estatedesk/cmd/estatedesk/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
