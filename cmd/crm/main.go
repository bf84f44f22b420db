package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/example/crm/internal/cli"
	"github.com/example/crm/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "crm",
		Short:   "CRM - client records for an immigration practice",
		Version: version.String(),
		Long: `CRM is a CLI tool for keeping client records: contact details, immigration
status and status expiry dates, validated before they are stored.`,
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.ClientCmd())
	rootCmd.AddCommand(cli.DashboardCmd())
	rootCmd.AddCommand(cli.ConfigCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
