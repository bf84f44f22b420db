package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/crm/internal/core/client"
)

// parseFlags registers the client flags on a bare command and parses args.
func parseFlags(t *testing.T, withClears bool, args ...string) (*cobra.Command, *clientFlags) {
	t.Helper()
	var flags clientFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd)
	if withClears {
		flags.registerClears(cmd)
	}
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, &flags
}

func TestClientFlags_Fields(t *testing.T) {
	_, flags := parseFlags(t, false,
		"--name", "Jane Doe",
		"--phone", "555 123 4567",
		"--email", "jane@example.com",
		"--address", "1 Main St",
		"--status", "study permit",
		"--expiry", "2027-08-31",
	)

	fields, err := flags.fields()
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", fields.LegalName)
	assert.Equal(t, "study permit", fields.Status, "status text is passed through raw")
	assert.Nil(t, fields.DateOfBirth)
	require.NotNil(t, fields.StatusExpiryDate)
	assert.Equal(t, time.Date(2027, time.August, 31, 0, 0, 0, 0, time.UTC), *fields.StatusExpiryDate)
}

func TestClientFlags_FieldsBadDate(t *testing.T) {
	_, flags := parseFlags(t, false, "--dob", "14/02/1995")

	_, err := flags.fields()
	assert.ErrorContains(t, err, "--dob")
}

func TestClientFlags_Patch(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, p client.Patch)
		wantErr string
	}{
		{
			name: "no flags is an empty patch",
			check: func(t *testing.T, p client.Patch) {
				assert.True(t, p.IsEmpty())
			},
		},
		{
			name: "only passed flags are set",
			args: []string{"--email", "new@example.com"},
			check: func(t *testing.T, p client.Patch) {
				require.NotNil(t, p.Email)
				assert.Equal(t, "new@example.com", *p.Email)
				assert.Nil(t, p.LegalName)
				assert.Nil(t, p.Status)
				assert.False(t, p.StatusExpiryDate.Set)
			},
		},
		{
			name: "explicit empty value is still a change",
			args: []string{"--address", ""},
			check: func(t *testing.T, p client.Patch) {
				require.NotNil(t, p.CurrentAddress)
				assert.Empty(t, *p.CurrentAddress)
			},
		},
		{
			name: "status is parsed",
			args: []string{"--status", "work-permit"},
			check: func(t *testing.T, p client.Patch) {
				require.NotNil(t, p.Status)
				assert.Equal(t, client.StatusWorkPermit, *p.Status)
			},
		},
		{
			name:    "unknown status",
			args:    []string{"--status", "tourist"},
			wantErr: "status must be one of: Study Permit, Work Permit, PR, Citizen",
		},
		{
			name: "clear expiry",
			args: []string{"--status", "citizen", "--clear-expiry"},
			check: func(t *testing.T, p client.Patch) {
				assert.True(t, p.StatusExpiryDate.Set)
				assert.Nil(t, p.StatusExpiryDate.Value)
			},
		},
		{
			name: "set date of birth",
			args: []string{"--dob", "1990-01-02"},
			check: func(t *testing.T, p client.Patch) {
				require.True(t, p.DateOfBirth.Set)
				assert.Equal(t, "1990-01-02", client.FormatDate(p.DateOfBirth.Value))
			},
		},
		{
			name:    "bad expiry",
			args:    []string{"--expiry", "soon"},
			wantErr: "--expiry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, flags := parseFlags(t, true, tt.args...)

			patch, err := flags.patch(cmd)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, patch)
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yes", true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got := confirm(strings.NewReader(tt.input), &out, "Delete client abc?")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Delete client abc? [y/N]: ", out.String())
		})
	}
}
