package client

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Field   Field
	Reason  string
}

// Error converts the guard result to a *ValidationError if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return &ValidationError{Field: r.Field, Reason: r.Reason}
}

// ValidationError reports the first rule a candidate record failed.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Field names a form field that rules are attached to.
type Field string

// Form fields, named as the form collects them.
const (
	FieldLegalName        Field = "legalName"
	FieldDateOfBirth      Field = "dateOfBirth"
	FieldPhone            Field = "phone"
	FieldEmail            Field = "email"
	FieldCurrentAddress   Field = "currentAddress"
	FieldStatus           Field = "status"
	FieldStatusExpiryDate Field = "statusExpiryDate"
)

// Fields in form order.
var AllFields = []Field{
	FieldLegalName,
	FieldDateOfBirth,
	FieldPhone,
	FieldEmail,
	FieldCurrentAddress,
	FieldStatus,
	FieldStatusExpiryDate,
}

var fieldAliases = map[string]Field{
	"name":    FieldLegalName,
	"dob":     FieldDateOfBirth,
	"address": FieldCurrentAddress,
	"expiry":  FieldStatusExpiryDate,
}

// ParseField resolves a field name, accepting the CLI's kebab-case spelling
// and the short flag names (name, dob, address, expiry).
func ParseField(name string) (Field, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	for _, f := range AllFields {
		if strings.ToLower(string(f)) == key {
			return f, nil
		}
	}
	if f, ok := fieldAliases[key]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown field %q", name)
}

const minPhoneDigits = 10

// emailPattern rejects Unicode whitespace (\p{Z}, \v, U+FEFF) as well as ASCII.
var emailPattern = regexp.MustCompile(`^[^\s\x{0B}\x{FEFF}\p{Z}@]+@[^\s\x{0B}\x{FEFF}\p{Z}@]+\.[^\s\x{0B}\x{FEFF}\p{Z}@]+$`)

// rule is one entry of the validation table. check returns "" when the
// candidate passes.
type rule struct {
	fields []Field
	check  func(f Fields, today civilDate) string
}

// rules are evaluated in order; the first failure determines the reason.
var rules = []rule{
	{
		fields: []Field{FieldLegalName},
		check: func(f Fields, _ civilDate) string {
			if isBlank(f.LegalName) {
				return "Legal Name is required"
			}
			return ""
		},
	},
	{
		fields: []Field{FieldPhone},
		check: func(f Fields, _ civilDate) string {
			if isBlank(f.Phone) {
				return "Phone is required"
			}
			if countDigits(f.Phone) < minPhoneDigits {
				return fmt.Sprintf("Please enter a valid phone number (minimum %d digits)", minPhoneDigits)
			}
			return ""
		},
	},
	{
		fields: []Field{FieldEmail},
		check: func(f Fields, _ civilDate) string {
			if isBlank(f.Email) {
				return "Email is required"
			}
			if !emailPattern.MatchString(f.Email) {
				return "Please enter a valid email address"
			}
			return ""
		},
	},
	{
		fields: []Field{FieldCurrentAddress},
		check: func(f Fields, _ civilDate) string {
			if isBlank(f.CurrentAddress) {
				return "Current Address is required"
			}
			return ""
		},
	},
	{
		fields: []Field{FieldStatus},
		check: func(f Fields, _ civilDate) string {
			if isBlank(f.Status) {
				return "Status is required"
			}
			if _, err := ParseStatus(f.Status); err != nil {
				return "Status must be one of: " + strings.Join(StatusNames(), ", ")
			}
			return ""
		},
	},
	{
		fields: []Field{FieldDateOfBirth},
		check: func(f Fields, today civilDate) string {
			if f.DateOfBirth != nil && dateOf(*f.DateOfBirth).after(today) {
				return "Date of birth cannot be in the future"
			}
			return ""
		},
	},
	{
		fields: []Field{FieldStatusExpiryDate, FieldStatus},
		check: func(f Fields, _ civilDate) string {
			s, _ := ParseStatus(f.Status)
			if s.ForbidsExpiry() && f.StatusExpiryDate != nil {
				return "Citizens do not need a status expiry date"
			}
			return ""
		},
	},
	{
		fields: []Field{FieldStatus, FieldStatusExpiryDate},
		check: func(f Fields, _ civilDate) string {
			s, _ := ParseStatus(f.Status)
			if s.RequiresExpiry() && f.StatusExpiryDate == nil {
				return fmt.Sprintf("%s requires an expiry date", s)
			}
			return ""
		},
	},
	{
		fields: []Field{FieldStatusExpiryDate},
		check: func(f Fields, today civilDate) string {
			if f.StatusExpiryDate != nil && dateOf(*f.StatusExpiryDate).before(today) {
				return "Status expiry date cannot be in the past"
			}
			return ""
		},
	},
}

// ValidateClient evaluates whether a candidate record may be stored.
// Rules (first failure wins):
// - Legal name must not be empty
// - Phone must not be empty and must contain at least 10 digits
// - Email must not be empty and must look like local@domain.tld
// - Current address must not be empty
// - Status must be one of the four categories
// - Date of birth, if present, must not be after today
// - Citizens must not carry an expiry date
// - Study and work permits must carry an expiry date
// - Expiry date, if present, must not be before today
func ValidateClient(f Fields, now time.Time) GuardResult {
	today := dateOf(now)
	for _, r := range rules {
		if reason := r.check(f, today); reason != "" {
			return GuardResult{Allowed: false, Field: r.fields[0], Reason: reason}
		}
	}
	return GuardResult{Allowed: true}
}

// ValidateField evaluates only the rules attached to field, for live
// feedback while a form is being filled. The other values in f supply the
// context some rules need (status for the expiry date and vice versa).
func ValidateField(field Field, f Fields, now time.Time) GuardResult {
	today := dateOf(now)
	for _, r := range rules {
		if !r.appliesTo(field) {
			continue
		}
		if reason := r.check(f, today); reason != "" {
			return GuardResult{Allowed: false, Field: field, Reason: reason}
		}
	}
	return GuardResult{Allowed: true}
}

func (r rule) appliesTo(field Field) bool {
	for _, f := range r.fields {
		if f == field {
			return true
		}
	}
	return false
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func countDigits(s string) int {
	return len(NormalizePhone(s))
}

// NormalizePhone strips everything but digits.
func NormalizePhone(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
