// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/example/crm/internal/core/client"
	"github.com/example/crm/internal/ports/primary"
)

// toneColors maps every tone to a terminal colour; a missing entry fails to compile.
var toneColors = [...]color.Attribute{
	client.ToneNone:    color.FgWhite,
	client.ToneInfo:    color.FgCyan,
	client.ToneWarning: color.FgYellow,
	client.ToneSuccess: color.FgGreen,
	client.TonePrimary: color.FgBlue,
}

var _ = [1]struct{}{}[len(toneColors)-client.NumTones]

// ClientAdapter is a thin adapter that translates CLI operations to ClientService calls.
// It depends only on the ClientService interface, enabling easy testing with mocks.
type ClientAdapter struct {
	service primary.ClientService
	out     io.Writer
}

// NewClientAdapter creates a new ClientAdapter with the given service.
func NewClientAdapter(service primary.ClientService, out io.Writer) *ClientAdapter {
	return &ClientAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a new client.
func (a *ClientAdapter) Create(ctx context.Context, fields client.Fields) error {
	created, err := a.service.CreateClient(ctx, fields)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created client %s: %s\n", created.ID, created.PersonalInfo.LegalName)
	return nil
}

// List lists clients with optional filters.
func (a *ClientAdapter) List(ctx context.Context, filters primary.ClientFilters) error {
	clients, err := a.service.ListClients(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}

	if len(clients) == 0 {
		fmt.Fprintln(a.out, "No clients found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Add your first client:")
		fmt.Fprintln(a.out, `  crm client create --name "Jane Doe" --phone 5551234567 --email jane@example.com --address "1 Main St" --status citizen`)
		return nil
	}

	ids := shortIDs(clients)

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tEXPIRES\tPHONE\tEMAIL")
	fmt.Fprintln(w, "--\t----\t------\t-------\t-----\t-----")
	for i, c := range clients {
		expires := client.FormatDate(c.PersonalInfo.Status.ExpiryDate)
		if expires == "" {
			expires = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ids[i],
			c.PersonalInfo.LegalName,
			StatusChip(c.PersonalInfo.Status.Current),
			expires,
			c.PersonalInfo.Contact.Phone,
			c.PersonalInfo.Contact.Email,
		)
	}
	w.Flush()

	fmt.Fprintf(a.out, "\n%d client(s)\n", len(clients))
	return nil
}

// Show displays details for a single client.
func (a *ClientAdapter) Show(ctx context.Context, ref string) error {
	clientID, err := a.resolveID(ctx, ref)
	if err != nil {
		return err
	}
	if clientID == "" {
		return fmt.Errorf("client %s not found", ref)
	}

	c, err := a.service.GetClient(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}
	if c == nil {
		return fmt.Errorf("client %s not found", ref)
	}

	info := c.PersonalInfo
	fmt.Fprintf(a.out, "\nClient: %s\n", c.ID)
	fmt.Fprintf(a.out, "  Legal Name:      %s\n", info.LegalName)
	fmt.Fprintf(a.out, "  Date of Birth:   %s\n", orDash(client.FormatDate(info.DateOfBirth)))
	fmt.Fprintf(a.out, "  Phone:           %s\n", info.Contact.Phone)
	fmt.Fprintf(a.out, "  Email:           %s\n", info.Contact.Email)
	fmt.Fprintf(a.out, "  Current Address: %s\n", info.Contact.CurrentAddress)
	fmt.Fprintf(a.out, "  Status:          %s\n", StatusChip(info.Status.Current))
	if info.Status.ExpiryDate != nil {
		fmt.Fprintf(a.out, "  Status Expiry:   %s\n", client.FormatDate(info.Status.ExpiryDate))
	}
	fmt.Fprintf(a.out, "  Created:         %s\n", c.CreatedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(a.out, "  Updated:         %s\n", c.UpdatedAt.Local().Format(time.RFC3339))
	fmt.Fprintln(a.out)

	return nil
}

// Update applies a patch to a client.
func (a *ClientAdapter) Update(ctx context.Context, ref string, patch client.Patch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}

	clientID, err := a.resolveID(ctx, ref)
	if err != nil {
		return err
	}
	if clientID == "" {
		return fmt.Errorf("client %s not found", ref)
	}

	updated, err := a.service.UpdateClient(ctx, clientID, patch)
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("client %s not found", ref)
	}

	fmt.Fprintf(a.out, "✓ Updated client %s: %s\n", updated.ID, updated.PersonalInfo.LegalName)
	return nil
}

// Delete hard-deletes a client.
func (a *ClientAdapter) Delete(ctx context.Context, ref string) error {
	clientID, err := a.resolveID(ctx, ref)
	if err != nil {
		return err
	}
	if clientID == "" {
		fmt.Fprintf(a.out, "Client %s not found; nothing deleted\n", ref)
		return nil
	}

	removed, err := a.service.DeleteClient(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if !removed {
		fmt.Fprintf(a.out, "Client %s not found; nothing deleted\n", ref)
		return nil
	}

	fmt.Fprintf(a.out, "✓ Deleted client %s\n", clientID)
	return nil
}

// Check validates candidate fields, either as a whole record or for a single
// field, and reports the outcome. A failing check is returned as an error.
func (a *ClientAdapter) Check(ctx context.Context, field client.Field, fields client.Fields) error {
	var result client.GuardResult
	if field == "" {
		result = a.service.ValidateClient(fields)
	} else {
		result = a.service.ValidateField(field, fields)
	}

	if result.Allowed {
		target := "record"
		if field != "" {
			target = string(field)
		}
		fmt.Fprintf(a.out, "✓ %s is valid\n", target)
		return nil
	}

	fmt.Fprintf(a.out, "✗ %s: %s\n", result.Field, result.Reason)
	return result.Error()
}

// Dashboard prints totals per status, upcoming expiries and recent changes.
func (a *ClientAdapter) Dashboard(ctx context.Context) error {
	summary, err := a.service.Summary(ctx)
	if err != nil {
		return fmt.Errorf("failed to summarize clients: %w", err)
	}

	fmt.Fprintf(a.out, "\nTotal Clients: %d\n\n", summary.Total)

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	for _, s := range client.Statuses {
		fmt.Fprintf(w, "  %s\t%d\n", StatusChip(s), summary.ByStatus[s])
	}
	w.Flush()

	days := int(summary.ExpiryWindow.Hours() / 24)
	fmt.Fprintf(a.out, "\nExpiring in the next %d days:\n", days)
	if len(summary.ExpiringSoon) == 0 {
		fmt.Fprintln(a.out, "  none")
	}
	for _, c := range summary.ExpiringSoon {
		fmt.Fprintf(a.out, "  %s  %s (%s)\n",
			client.FormatDate(c.PersonalInfo.Status.ExpiryDate),
			c.PersonalInfo.LegalName,
			c.PersonalInfo.Status.Current,
		)
	}

	fmt.Fprintln(a.out, "\nRecent Updates:")
	if len(summary.RecentlyUpdated) == 0 {
		fmt.Fprintln(a.out, "  No recent updates")
	}
	for _, c := range summary.RecentlyUpdated {
		fmt.Fprintf(a.out, "  %s  %s\n", c.UpdatedAt.Local().Format("2006-01-02 15:04"), c.PersonalInfo.LegalName)
	}
	fmt.Fprintln(a.out)

	return nil
}

// StatusChip renders a status label in its tone's colour.
func StatusChip(s client.Status) string {
	label := s.String()
	if label == "" {
		label = "unknown"
	}
	return color.New(toneColors[s.Tone()]).Sprint(label)
}

// resolveID turns an exact id or a unique id prefix, as printed by List,
// into a full client id. It returns "" when nothing matches.
func (a *ClientAdapter) resolveID(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}

	exact, err := a.service.GetClient(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("failed to get client: %w", err)
	}
	if exact != nil {
		return exact.ID, nil
	}

	clients, err := a.service.ListClients(ctx, primary.ClientFilters{})
	if err != nil {
		return "", fmt.Errorf("failed to list clients: %w", err)
	}

	var matches []string
	for _, c := range clients {
		if strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("client id %s is ambiguous: matches %s", ref, strings.Join(matches, ", "))
	}
}

// shortIDs abbreviates each id to its first segment, falling back to the
// full id when another listed client shares that segment.
func shortIDs(clients []*client.Client) []string {
	counts := make(map[string]int, len(clients))
	for _, c := range clients {
		counts[shortID(c.ID)]++
	}

	ids := make([]string, len(clients))
	for i, c := range clients {
		ids[i] = shortID(c.ID)
		if counts[ids[i]] > 1 {
			ids[i] = c.ID
		}
	}
	return ids
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
