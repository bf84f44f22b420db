package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/crm/internal/config"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CRM configuration",
		Long: `Manage the CRM configuration file (config.yaml under ~/.crm, or $CRM_HOME).`,
	}

	cmd.AddCommand(configInitCmd())
	cmd.AddCommand(configShowCmd())

	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool
	var driver string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write config.yaml with default settings.

Examples:
  crm config init
  crm config init --driver file
  crm config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			dir, err := config.BaseDir()
			if err != nil {
				return err
			}
			path := config.Path(dir)

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			cfg := config.Default()
			if driver != "" {
				cfg.Storage.Driver = driver
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := config.SaveConfig(dir, cfg); err != nil {
				return err
			}

			fmt.Fprintf(out, "✓ Wrote config to %s\n", path)
			fmt.Fprintf(out, "  Storage: %s at %s\n", cfg.Storage.Driver, cfg.StoragePath(dir))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  crm client create --help")
			fmt.Fprintln(out, "  crm dashboard")

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.Flags().StringVar(&driver, "driver", "", "Storage driver (sqlite or file)")

	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			dir, err := config.BaseDir()
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig(dir)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			source := config.Path(dir)
			if _, err := os.Stat(source); err != nil {
				source = "defaults (no config file)"
			}

			fmt.Fprintf(out, "# source:  %s\n", source)
			fmt.Fprintf(out, "# storage: %s\n", cfg.StoragePath(dir))
			fmt.Fprint(out, string(data))

			return nil
		},
	}
}
