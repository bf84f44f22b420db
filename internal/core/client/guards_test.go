package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 18, 15, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func validFields() Fields {
	return Fields{
		LegalName:        "Jane Doe",
		DateOfBirth:      date(1990, time.March, 4),
		Phone:            "(555) 123-4567",
		Email:            "jane@example.com",
		CurrentAddress:   "1 St",
		Status:           "Study Permit",
		StatusExpiryDate: date(2027, time.June, 30),
	}
}

func TestValidateClient(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(f *Fields)
		wantField  Field
		wantReason string
	}{
		{
			name:   "valid study permit",
			mutate: func(f *Fields) {},
		},
		{
			name: "valid citizen without expiry",
			mutate: func(f *Fields) {
				f.Status = "Citizen"
				f.StatusExpiryDate = nil
			},
		},
		{
			name: "valid PR without expiry or birth date",
			mutate: func(f *Fields) {
				f.Status = "PR"
				f.StatusExpiryDate = nil
				f.DateOfBirth = nil
			},
		},
		{
			name: "expiry today is not in the past",
			mutate: func(f *Fields) {
				f.StatusExpiryDate = date(2026, time.October, 18)
			},
		},
		{
			name: "birth date today is not in the future",
			mutate: func(f *Fields) {
				f.DateOfBirth = date(2026, time.October, 18)
			},
		},
		{
			name:       "empty legal name",
			mutate:     func(f *Fields) { f.LegalName = "" },
			wantField:  FieldLegalName,
			wantReason: "Legal Name is required",
		},
		{
			name:       "whitespace legal name",
			mutate:     func(f *Fields) { f.LegalName = "   " },
			wantField:  FieldLegalName,
			wantReason: "Legal Name is required",
		},
		{
			name:       "missing phone",
			mutate:     func(f *Fields) { f.Phone = "" },
			wantField:  FieldPhone,
			wantReason: "Phone is required",
		},
		{
			name:       "short phone",
			mutate:     func(f *Fields) { f.Phone = "555-1234" },
			wantField:  FieldPhone,
			wantReason: "Please enter a valid phone number (minimum 10 digits)",
		},
		{
			name:       "missing email",
			mutate:     func(f *Fields) { f.Email = "" },
			wantField:  FieldEmail,
			wantReason: "Email is required",
		},
		{
			name:       "email without dot after at",
			mutate:     func(f *Fields) { f.Email = "jane@example" },
			wantField:  FieldEmail,
			wantReason: "Please enter a valid email address",
		},
		{
			name:       "email with whitespace",
			mutate:     func(f *Fields) { f.Email = "jane doe@example.com" },
			wantField:  FieldEmail,
			wantReason: "Please enter a valid email address",
		},
		{
			name:       "email with no-break space",
			mutate:     func(f *Fields) { f.Email = "jane\u00a0doe@example.com" },
			wantField:  FieldEmail,
			wantReason: "Please enter a valid email address",
		},
		{
			name:       "email with ideographic space in domain",
			mutate:     func(f *Fields) { f.Email = "jane@exam\u3000ple.com" },
			wantField:  FieldEmail,
			wantReason: "Please enter a valid email address",
		},
		{
			name:       "email with vertical tab",
			mutate:     func(f *Fields) { f.Email = "jane@example.\vcom" },
			wantField:  FieldEmail,
			wantReason: "Please enter a valid email address",
		},
		{
			name:       "email with byte-order mark",
			mutate:     func(f *Fields) { f.Email = "\ufeffjane@example.com" },
			wantField:  FieldEmail,
			wantReason: "Please enter a valid email address",
		},
		{
			name:       "missing address",
			mutate:     func(f *Fields) { f.CurrentAddress = "" },
			wantField:  FieldCurrentAddress,
			wantReason: "Current Address is required",
		},
		{
			name:       "missing status",
			mutate:     func(f *Fields) { f.Status = "" },
			wantField:  FieldStatus,
			wantReason: "Status is required",
		},
		{
			name:       "unknown status",
			mutate:     func(f *Fields) { f.Status = "Visitor" },
			wantField:  FieldStatus,
			wantReason: "Status must be one of: Study Permit, Work Permit, PR, Citizen",
		},
		{
			name:       "birth date in the future",
			mutate:     func(f *Fields) { f.DateOfBirth = date(2026, time.October, 19) },
			wantField:  FieldDateOfBirth,
			wantReason: "Date of birth cannot be in the future",
		},
		{
			name:       "citizen with expiry",
			mutate:     func(f *Fields) { f.Status = "Citizen" },
			wantField:  FieldStatusExpiryDate,
			wantReason: "Citizens do not need a status expiry date",
		},
		{
			name:       "study permit without expiry",
			mutate:     func(f *Fields) { f.StatusExpiryDate = nil },
			wantField:  FieldStatus,
			wantReason: "Study Permit requires an expiry date",
		},
		{
			name: "work permit without expiry",
			mutate: func(f *Fields) {
				f.Status = "Work Permit"
				f.StatusExpiryDate = nil
			},
			wantField:  FieldStatus,
			wantReason: "Work Permit requires an expiry date",
		},
		{
			name:       "expiry in the past",
			mutate:     func(f *Fields) { f.StatusExpiryDate = date(2026, time.October, 17) },
			wantField:  FieldStatusExpiryDate,
			wantReason: "Status expiry date cannot be in the past",
		},
		{
			name: "first failing rule wins",
			mutate: func(f *Fields) {
				f.Phone = "1"
				f.Email = "nope"
				f.Status = ""
			},
			wantField:  FieldPhone,
			wantReason: "Please enter a valid phone number (minimum 10 digits)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.mutate(&f)

			result := ValidateClient(f, testNow)
			if tt.wantReason == "" {
				assert.True(t, result.Allowed, "unexpected reason %q", result.Reason)
				assert.NoError(t, result.Error())
				return
			}
			assert.False(t, result.Allowed)
			assert.Equal(t, tt.wantField, result.Field)
			assert.Equal(t, tt.wantReason, result.Reason)
		})
	}
}

func TestValidateClient_Scenarios(t *testing.T) {
	t.Run("empty legal name on a citizen", func(t *testing.T) {
		result := ValidateClient(Fields{
			LegalName:      "",
			Phone:          "5551234567",
			Email:          "a@b.com",
			CurrentAddress: "1 St",
			Status:         "Citizen",
		}, testNow)
		assert.Equal(t, "Legal Name is required", result.Reason)
	})

	t.Run("study permit with no expiry", func(t *testing.T) {
		result := ValidateClient(Fields{
			LegalName:      "Jane Doe",
			Phone:          "5551234567",
			Email:          "jane@example.com",
			CurrentAddress: "1 St",
			Status:         "StudyPermit",
		}, testNow)
		assert.Equal(t, "Study Permit requires an expiry date", result.Reason)
	})

	t.Run("citizen with expiry", func(t *testing.T) {
		result := ValidateClient(Fields{
			LegalName:        "Jane Doe",
			Phone:            "5551234567",
			Email:            "jane@example.com",
			CurrentAddress:   "1 St",
			Status:           "Citizen",
			StatusExpiryDate: date(2030, time.January, 1),
		}, testNow)
		assert.Equal(t, "Citizens do not need a status expiry date", result.Reason)
	})
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		name       string
		field      Field
		mutate     func(f *Fields)
		wantReason string
	}{
		{
			name:   "legal name ok",
			field:  FieldLegalName,
			mutate: func(f *Fields) {},
		},
		{
			name:       "legal name ignores other broken fields",
			field:      FieldLegalName,
			mutate: func(f *Fields) {
				f.LegalName = ""
				f.Phone = ""
			},
			wantReason: "Legal Name is required",
		},
		{
			name:   "phone only checks phone",
			field:  FieldPhone,
			mutate: func(f *Fields) { f.LegalName = "" },
		},
		{
			name:       "status requires expiry for permits",
			field:      FieldStatus,
			mutate: func(f *Fields) {
				f.Status = "Work Permit"
				f.StatusExpiryDate = nil
			},
			wantReason: "Work Permit requires an expiry date",
		},
		{
			name:       "expiry rejected for citizens",
			field:      FieldStatusExpiryDate,
			mutate:     func(f *Fields) { f.Status = "Citizen" },
			wantReason: "Citizens do not need a status expiry date",
		},
		{
			name:       "expiry in the past",
			field:      FieldStatusExpiryDate,
			mutate:     func(f *Fields) { f.StatusExpiryDate = date(2020, time.January, 1) },
			wantReason: "Status expiry date cannot be in the past",
		},
		{
			name:       "date of birth in the future",
			field:      FieldDateOfBirth,
			mutate:     func(f *Fields) { f.DateOfBirth = date(2030, time.January, 1) },
			wantReason: "Date of birth cannot be in the future",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.mutate(&f)

			result := ValidateField(tt.field, f, testNow)
			if tt.wantReason == "" {
				assert.True(t, result.Allowed, "unexpected reason %q", result.Reason)
				return
			}
			assert.False(t, result.Allowed)
			assert.Equal(t, tt.field, result.Field)
			assert.Equal(t, tt.wantReason, result.Reason)
		})
	}
}

// The field-scoped check on the field owning the first failure must report
// the same reason as whole-record validation.
func TestValidateField_AgreesWithValidateClient(t *testing.T) {
	candidates := []Fields{
		{},
		{LegalName: "A"},
		{LegalName: "A", Phone: "123"},
		{LegalName: "A", Phone: "1234567890", Email: "x@y"},
		{LegalName: "A", Phone: "1234567890", Email: "x@y.z"},
		{LegalName: "A", Phone: "1234567890", Email: "x@y.z", CurrentAddress: "here", Status: "??"},
		{LegalName: "A", Phone: "1234567890", Email: "x@y.z", CurrentAddress: "here", Status: "PR", DateOfBirth: date(2099, 1, 1)},
		{LegalName: "A", Phone: "1234567890", Email: "x@y.z", CurrentAddress: "here", Status: "Citizen", StatusExpiryDate: date(2099, 1, 1)},
		{LegalName: "A", Phone: "1234567890", Email: "x@y.z", CurrentAddress: "here", Status: "Work Permit"},
		{LegalName: "A", Phone: "1234567890", Email: "x@y.z", CurrentAddress: "here", Status: "PR", StatusExpiryDate: date(2001, 1, 1)},
	}

	for _, f := range candidates {
		whole := ValidateClient(f, testNow)
		require.False(t, whole.Allowed, "candidate %+v should fail", f)

		single := ValidateField(whole.Field, f, testNow)
		assert.False(t, single.Allowed)
		assert.Equal(t, whole.Reason, single.Reason)
	}
}

func TestGuardResult_Error(t *testing.T) {
	t.Run("allowed result returns nil error", func(t *testing.T) {
		result := GuardResult{Allowed: true}
		assert.NoError(t, result.Error())
	})

	t.Run("not allowed result returns a validation error", func(t *testing.T) {
		result := GuardResult{Allowed: false, Field: FieldEmail, Reason: "test reason"}
		err := result.Error()
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, FieldEmail, verr.Field)
		assert.Equal(t, "test reason", err.Error())
	})
}

func TestParseField(t *testing.T) {
	tests := map[string]Field{
		"legalName":          FieldLegalName,
		"legal-name":         FieldLegalName,
		"name":               FieldLegalName,
		"dob":                FieldDateOfBirth,
		"current_address":    FieldCurrentAddress,
		"status-expiry-date": FieldStatusExpiryDate,
		"expiry":             FieldStatusExpiryDate,
		"EMAIL":              FieldEmail,
	}
	for in, want := range tests {
		got, err := ParseField(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseField("nickname")
	assert.Error(t, err)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "15551234567", NormalizePhone("+1 (555) 123-4567"))
	assert.Equal(t, "", NormalizePhone("call me"))
}
