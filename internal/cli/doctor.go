package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/crm/internal/adapters/sqlite"
	"github.com/example/crm/internal/app"
	"github.com/example/crm/internal/config"
	"github.com/example/crm/internal/observability"
	"github.com/example/crm/internal/ports/secondary"
	"github.com/example/crm/internal/version"
	"github.com/example/crm/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate CRM configuration and storage",
		Long: `Health check for the CRM environment.

Validates:
- Config file (present and valid)
- Logging settings
- Storage backend (opens and reads the client slot)
- Stored client data (readable JSON list)

Examples:
  crm doctor              # Run full health check
  crm doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.BaseDir()
			if err != nil {
				return err
			}

			results := runChecks(NewContext(), dir)
			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				printResults(cmd.OutOrStdout(), results, hasErrors)
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// runChecks runs every check against the CRM home directory dir.
// Storage checks are skipped when the config cannot be loaded.
func runChecks(ctx context.Context, dir string) []CheckResult {
	cfg, result := checkConfig(dir)
	results := []CheckResult{result}
	if cfg == nil {
		return results
	}

	results = append(results, checkLogging(cfg))

	storage, data := checkStorage(ctx, cfg, dir)
	results = append(results, storage)
	if storage.Status != "✗" {
		results = append(results, checkClientData(data))
	}

	return results
}

func printResults(out io.Writer, results []CheckResult, hasErrors bool) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Check              Status")
	fmt.Fprintln(out, "─────────────────────────")
	for _, r := range results {
		fmt.Fprintf(out, "%-18s %s\n", r.Name, r.Status)
	}
	fmt.Fprintln(out)

	// Print details for non-passing checks
	hasDetails := false
	for _, r := range results {
		if r.Status != "✓" && r.Details != "" {
			if !hasDetails {
				fmt.Fprintln(out, "Details:")
				hasDetails = true
			}
			fmt.Fprintf(out, "\n%s:\n%s\n", r.Name, r.Details)
		}
	}

	if hasErrors {
		fmt.Fprintln(out, "\n⚠ Issues found.")
	} else {
		fmt.Fprintln(out, "All checks passed.")
	}
	fmt.Fprintf(out, "\n%s\n", version.String())
}

// checkConfig loads config.yaml; a missing file is a warning since the
// defaults apply.
func checkConfig(dir string) (*config.Config, CheckResult) {
	path := config.Path(dir)

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, CheckResult{
			Name:    "Config",
			Status:  "⚠",
			Details: fmt.Sprintf("  No config at %s; using defaults.\n  Run: crm config init", path),
		}
	}

	return cfg, CheckResult{Name: "Config", Status: "✓"}
}

// checkLogging validates the log level and format
func checkLogging(cfg *config.Config) CheckResult {
	if _, err := observability.NewLogger(io.Discard, cfg.Log.Level, cfg.Log.Format); err != nil {
		return CheckResult{Name: "Logging", Status: "✗", Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Logging", Status: "✓"}
}

// checkStorage reads the client slot from the configured backend without
// creating anything: a database that does not exist yet is reported, not opened.
func checkStorage(ctx context.Context, cfg *config.Config, dir string) (CheckResult, []byte) {
	path := cfg.StoragePath(dir)

	var slots secondary.SlotStore
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return CheckResult{
				Name:    "Storage",
				Status:  "⚠",
				Details: fmt.Sprintf("  Database %s not created yet; it is created on the first write", path),
			}, nil
		} else if err != nil {
			return CheckResult{Name: "Storage", Status: "✗", Details: "  " + err.Error()}, nil
		}

		database, err := wire.OpenDatabase(cfg, dir)
		if err != nil {
			return CheckResult{Name: "Storage", Status: "✗", Details: "  " + err.Error()}, nil
		}
		defer database.Close()
		slots = sqlite.NewSlotRepository(database)
	default:
		opened, err := wire.OpenSlotStore(cfg, dir)
		if err != nil {
			return CheckResult{Name: "Storage", Status: "✗", Details: "  " + err.Error()}, nil
		}
		slots = opened
	}

	data, err := slots.Load(ctx, cfg.Storage.Slot)
	if err != nil {
		return CheckResult{Name: "Storage", Status: "✗", Details: "  " + err.Error()}, nil
	}

	if data == nil {
		details := fmt.Sprintf("  Slot %q not written yet (%s at %s)", cfg.Storage.Slot, cfg.Storage.Driver, path)
		if repo, ok := slots.(*sqlite.SlotRepository); ok {
			if keys, err := repo.Keys(ctx); err == nil && len(keys) > 0 {
				details += "\n  Slots present: " + strings.Join(keys, ", ")
			}
		}
		return CheckResult{Name: "Storage", Status: "⚠", Details: details}, nil
	}

	return CheckResult{Name: "Storage", Status: "✓"}, data
}

// checkClientData reports whether the slot holds a readable client list.
// Unreadable data is a warning: it is replaced on the next write.
func checkClientData(data []byte) CheckResult {
	if data == nil {
		return CheckResult{Name: "Client Data", Status: "✓"}
	}

	if _, err := app.DecodeClients(data); err != nil {
		return CheckResult{
			Name:    "Client Data",
			Status:  "⚠",
			Details: fmt.Sprintf("  Stored clients are unreadable (%v).\n  The next create, update or delete starts from an empty list.", err),
		}
	}

	return CheckResult{Name: "Client Data", Status: "✓"}
}
