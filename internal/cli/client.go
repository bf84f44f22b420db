package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/crm/internal/core/client"
	"github.com/example/crm/internal/ports/primary"
	"github.com/example/crm/internal/wire"
)

// ClientCmd returns the client command
func ClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "Manage client records",
		Long:    `Create, list, view, edit and delete client records.`,
	}

	cmd.AddCommand(clientCreateCmd())
	cmd.AddCommand(clientListCmd())
	cmd.AddCommand(clientShowCmd())
	cmd.AddCommand(clientUpdateCmd())
	cmd.AddCommand(clientDeleteCmd())
	cmd.AddCommand(clientCheckCmd())

	return cmd
}

// clientFlags holds the form fields shared by create, update and check.
type clientFlags struct {
	name        string
	phone       string
	email       string
	address     string
	status      string
	dob         string
	expiry      string
	clearDOB    bool
	clearExpiry bool
}

func (f *clientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Legal name")
	cmd.Flags().StringVarP(&f.phone, "phone", "p", "", "Phone number (at least 10 digits)")
	cmd.Flags().StringVarP(&f.email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&f.address, "address", "a", "", "Current address")
	cmd.Flags().StringVarP(&f.status, "status", "s", "", "Status: "+strings.Join(client.StatusNames(), ", "))
	cmd.Flags().StringVar(&f.dob, "dob", "", "Date of birth (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.expiry, "expiry", "", "Status expiry date (YYYY-MM-DD)")
}

func (f *clientFlags) registerClears(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.clearDOB, "clear-dob", false, "Remove the date of birth")
	cmd.Flags().BoolVar(&f.clearExpiry, "clear-expiry", false, "Remove the status expiry date")
	cmd.MarkFlagsMutuallyExclusive("dob", "clear-dob")
	cmd.MarkFlagsMutuallyExclusive("expiry", "clear-expiry")
}

// fields collects the flag values as a candidate record. Status text is
// passed through raw so the validator can report an unknown value.
func (f *clientFlags) fields() (client.Fields, error) {
	dob, err := optionalDate("dob", f.dob)
	if err != nil {
		return client.Fields{}, err
	}
	expiry, err := optionalDate("expiry", f.expiry)
	if err != nil {
		return client.Fields{}, err
	}

	return client.Fields{
		LegalName:        f.name,
		DateOfBirth:      dob,
		Phone:            f.phone,
		Email:            f.email,
		CurrentAddress:   f.address,
		Status:           f.status,
		StatusExpiryDate: expiry,
	}, nil
}

// patch builds a patch from the flags the user actually passed.
func (f *clientFlags) patch(cmd *cobra.Command) (client.Patch, error) {
	var p client.Patch
	changed := cmd.Flags().Changed

	if changed("name") {
		p.LegalName = &f.name
	}
	if changed("phone") {
		p.Phone = &f.phone
	}
	if changed("email") {
		p.Email = &f.email
	}
	if changed("address") {
		p.CurrentAddress = &f.address
	}
	if changed("status") {
		status, err := client.ParseStatus(f.status)
		if err != nil {
			return client.Patch{}, fmt.Errorf("status must be one of: %s", strings.Join(client.StatusNames(), ", "))
		}
		p.Status = &status
	}

	dob, err := dateUpdate("dob", f.dob, changed("dob"), f.clearDOB)
	if err != nil {
		return client.Patch{}, err
	}
	p.DateOfBirth = dob

	expiry, err := dateUpdate("expiry", f.expiry, changed("expiry"), f.clearExpiry)
	if err != nil {
		return client.Patch{}, err
	}
	p.StatusExpiryDate = expiry

	return p, nil
}

func optionalDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := client.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return &t, nil
}

func dateUpdate(flag, value string, set, clear bool) (client.DateUpdate, error) {
	switch {
	case clear:
		return client.ClearDate(), nil
	case set:
		t, err := client.ParseDate(value)
		if err != nil {
			return client.DateUpdate{}, fmt.Errorf("--%s: %w", flag, err)
		}
		return client.SetDate(t), nil
	default:
		return client.DateUpdate{}, nil
	}
}

func clientCreateCmd() *cobra.Command {
	var flags clientFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new client record",
		Long: `Create a new client record. The record is validated before it is stored;
the first failing rule is reported and nothing is written.

Study and work permits need --expiry; citizens must not have one.

Examples:
  crm client create --name "Jane Doe" --phone "555 123 4567" --email jane@example.com \
    --address "1 Main St" --status "Study Permit" --expiry 2027-08-31
  crm client create -n "Bob Stone" -p 5559876543 -e bob@example.com -a "2 Ave" -s citizen`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := flags.fields()
			if err != nil {
				return err
			}

			return wire.ClientAdapterWithOutput(cmd.OutOrStdout()).Create(NewContext(), fields)
		},
	}

	flags.register(cmd)

	return cmd
}

func clientListCmd() *cobra.Command {
	var status string
	var search string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List client records",
		Long: `List client records in the order they were added.

Examples:
  crm client list
  crm client list --status "Work Permit"
  crm client list --search doe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := primary.ClientFilters{Search: search}
			if status != "" {
				parsed, err := client.ParseStatus(status)
				if err != nil {
					return fmt.Errorf("status must be one of: %s", strings.Join(client.StatusNames(), ", "))
				}
				filters.Status = parsed
			}

			return wire.ClientAdapterWithOutput(cmd.OutOrStdout()).List(NewContext(), filters)
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Filter by name or email (case-insensitive)")

	return cmd
}

func clientShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [client-id]",
		Short: "Show client details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ClientAdapterWithOutput(cmd.OutOrStdout()).Show(NewContext(), args[0])
		},
	}
}

func clientUpdateCmd() *cobra.Command {
	var flags clientFlags

	cmd := &cobra.Command{
		Use:   "update [client-id]",
		Short: "Edit a client record",
		Long: `Edit a client record. Only the flags you pass are changed; the edited record
must still pass validation.

Examples:
  crm client update 1b4e28ba --email new@example.com
  crm client update 1b4e28ba --status citizen --clear-expiry`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := flags.patch(cmd)
			if err != nil {
				return err
			}

			return wire.ClientAdapterWithOutput(cmd.OutOrStdout()).Update(NewContext(), args[0], patch)
		},
	}

	flags.register(cmd)
	flags.registerClears(cmd)

	return cmd
}

func clientDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [client-id]",
		Short: "Delete a client record",
		Long:  `Permanently delete a client record. Asks for confirmation unless --yes is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete client %s?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}

			return wire.ClientAdapterWithOutput(cmd.OutOrStdout()).Delete(NewContext(), id)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func clientCheckCmd() *cobra.Command {
	var flags clientFlags
	var field string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate client fields without saving",
		Long: `Validate candidate client fields without saving anything.

With --field, only the rules attached to that field are evaluated; the other
flags supply context (an expiry date is checked against --status).

Fields: legal-name, date-of-birth, phone, email, current-address, status,
status-expiry-date (short forms: name, dob, address, expiry).

Examples:
  crm client check --field email --email jane@example
  crm client check --field expiry --status "Work Permit" --expiry 2026-01-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var target client.Field
			if field != "" {
				parsed, err := client.ParseField(field)
				if err != nil {
					return err
				}
				target = parsed
			}

			fields, err := flags.fields()
			if err != nil {
				return err
			}

			return wire.ClientAdapterWithOutput(cmd.OutOrStdout()).Check(NewContext(), target, fields)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&field, "field", "f", "", "Validate a single field")

	return cmd
}
