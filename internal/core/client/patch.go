package client

import "time"

// DateUpdate overrides an optional date field.
// The zero value leaves the field untouched.
type DateUpdate struct {
	Set   bool
	Value *time.Time // nil together with Set clears the field
}

// SetDate returns an update that stores t.
func SetDate(t time.Time) DateUpdate {
	return DateUpdate{Set: true, Value: &t}
}

// ClearDate returns an update that removes the date.
func ClearDate() DateUpdate {
	return DateUpdate{Set: true}
}

// Patch lists the fields update may override. Nil pointers and unset
// DateUpdates are omissions; ID and CreatedAt are never patchable.
type Patch struct {
	LegalName        *string
	DateOfBirth      DateUpdate
	Phone            *string
	Email            *string
	CurrentAddress   *string
	Status           *Status
	StatusExpiryDate DateUpdate
}

// IsEmpty reports whether the patch overrides nothing.
func (p Patch) IsEmpty() bool {
	return p.LegalName == nil && !p.DateOfBirth.Set && p.Phone == nil &&
		p.Email == nil && p.CurrentAddress == nil && p.Status == nil &&
		!p.StatusExpiryDate.Set
}

// Apply merges the patch into c field by field and returns the result.
// Timestamps are left for the caller to stamp.
func (p Patch) Apply(c Client) Client {
	out := c.Clone()
	info := &out.PersonalInfo

	if p.LegalName != nil {
		info.LegalName = *p.LegalName
	}
	if p.DateOfBirth.Set {
		info.DateOfBirth = copyTime(p.DateOfBirth.Value)
	}
	if p.Phone != nil {
		info.Contact.Phone = *p.Phone
	}
	if p.Email != nil {
		info.Contact.Email = *p.Email
	}
	if p.CurrentAddress != nil {
		info.Contact.CurrentAddress = *p.CurrentAddress
	}
	if p.Status != nil {
		info.Status.Current = *p.Status
	}
	if p.StatusExpiryDate.Set {
		info.Status.ExpiryDate = copyTime(p.StatusExpiryDate.Value)
	}

	return out
}
