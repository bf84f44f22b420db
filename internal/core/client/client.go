// Package client contains the pure business logic for client records.
// This is part of the Functional Core - no I/O, only pure functions.
package client

import (
	"strings"
	"time"
)

// Client is a single client's stored record.
type Client struct {
	ID           string       `json:"id"`
	PersonalInfo PersonalInfo `json:"personalInfo"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// PersonalInfo groups the identity, contact and residency details of a client.
type PersonalInfo struct {
	LegalName   string     `json:"legalName"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Contact     Contact    `json:"contact"`
	Status      StatusInfo `json:"status"`
}

// Contact holds how to reach a client.
type Contact struct {
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	CurrentAddress string `json:"currentAddress"`
}

// StatusInfo is the client's residency status and its optional expiry.
type StatusInfo struct {
	Current    Status     `json:"current"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
}

// Fields is the flat set of values a client form collects.
// Status is the raw text entered so that an unknown value can be reported.
type Fields struct {
	LegalName        string
	DateOfBirth      *time.Time
	Phone            string
	Email            string
	CurrentAddress   string
	Status           string
	StatusExpiryDate *time.Time
}

// NewClient builds a record from already validated fields.
// Unparseable status text leaves Current at its zero value.
func NewClient(id string, f Fields, now time.Time) Client {
	status, _ := ParseStatus(f.Status)
	return Client{
		ID: id,
		PersonalInfo: PersonalInfo{
			LegalName:   f.LegalName,
			DateOfBirth: copyTime(f.DateOfBirth),
			Contact: Contact{
				Phone:          f.Phone,
				Email:          f.Email,
				CurrentAddress: f.CurrentAddress,
			},
			Status: StatusInfo{
				Current:    status,
				ExpiryDate: copyTime(f.StatusExpiryDate),
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Fields flattens the record back into form values.
func (c Client) Fields() Fields {
	return Fields{
		LegalName:        c.PersonalInfo.LegalName,
		DateOfBirth:      copyTime(c.PersonalInfo.DateOfBirth),
		Phone:            c.PersonalInfo.Contact.Phone,
		Email:            c.PersonalInfo.Contact.Email,
		CurrentAddress:   c.PersonalInfo.Contact.CurrentAddress,
		Status:           c.PersonalInfo.Status.Current.String(),
		StatusExpiryDate: copyTime(c.PersonalInfo.Status.ExpiryDate),
	}
}

// Clone returns a deep copy so callers cannot alias stored dates.
func (c Client) Clone() Client {
	out := c
	out.PersonalInfo.DateOfBirth = copyTime(c.PersonalInfo.DateOfBirth)
	out.PersonalInfo.Status.ExpiryDate = copyTime(c.PersonalInfo.Status.ExpiryDate)
	return out
}

// Matches reports whether the query appears in the client's name or email,
// ignoring case. An empty query matches everything.
func (c Client) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.PersonalInfo.LegalName), q) ||
		strings.Contains(strings.ToLower(c.PersonalInfo.Contact.Email), q)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
