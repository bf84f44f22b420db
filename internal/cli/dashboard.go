package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/crm/internal/wire"
)

// DashboardCmd returns the dashboard command
func DashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show client totals per status",
		Long: `Show the number of clients in total and per status, clients whose status
expires within the next 90 days, and the most recently updated records.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ClientAdapterWithOutput(cmd.OutOrStdout()).Dashboard(NewContext())
		},
	}
}
