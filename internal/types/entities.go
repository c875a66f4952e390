// Package types defines the domain entities shared across the finnadmin
// client: the primary entities administered through the wizards (agencies,
// TCC/custodian entities, clients, IOBs), the related users provisioned
// against them, and the aggregate form state a wizard session owns.
package types

import "strings"

// EntityKind identifies which primary-entity resource a wizard operates on.
type EntityKind string

const (
	KindAgence EntityKind = "agence"
	KindTCC    EntityKind = "tcc"
	KindClient EntityKind = "client"
	KindIOB    EntityKind = "iob"
)

// Secondary resources referenced by the primary entities.
const (
	KindFinancialInstitution EntityKind = "financial-institution"
	KindIssuer               EntityKind = "issuer"
)

// Path returns the REST path segment for the resource, e.g. "/agence".
func (k EntityKind) Path() string {
	return "/" + string(k)
}

// Title returns the human-facing resource name used in headings and
// notifications.
func (k EntityKind) Title() string {
	switch k {
	case KindAgence:
		return "Agency"
	case KindTCC:
		return "TCC"
	case KindClient:
		return "Client"
	case KindIOB:
		return "IOB"
	case KindFinancialInstitution:
		return "Financial Institution"
	case KindIssuer:
		return "Issuer"
	}
	return strings.ToUpper(string(k))
}

// Valid reports whether k is one of the wizard-managed primary kinds.
func (k EntityKind) Valid() bool {
	switch k {
	case KindAgence, KindTCC, KindClient, KindIOB:
		return true
	}
	return false
}

// UserStatus is the lifecycle state of a related user.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
	UserPending  UserStatus = "pending"
)

// ValidUserStatus reports whether s is a known status value.
func ValidUserStatus(s UserStatus) bool {
	switch s {
	case UserActive, UserInactive, UserPending:
		return true
	}
	return false
}

// FormValues holds one sub-form's field values keyed by field name.
// Values are kept as entered; typing and normalization happen at the
// gateway boundary when the payload is built.
type FormValues map[string]string

// Clone returns an independent copy so a reducer can hand values out
// without sharing the underlying map.
func (v FormValues) Clone() FormValues {
	if v == nil {
		return nil
	}
	out := make(FormValues, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Get returns the value for field, or "" when unset.
func (v FormValues) Get(field string) string {
	if v == nil {
		return ""
	}
	return v[field]
}

// RelatedUser is a person attached to a primary entity, provisioned as a
// backend sub-resource. Password is write-only: it is sent on create and
// never rehydrated on edit.
type RelatedUser struct {
	// LocalID gives the row a stable client-side identity before (and
	// independent of) remote persistence. Assigned with uuid on creation.
	LocalID string

	// RemoteID is the backend identifier, empty until the user has been
	// provisioned.
	RemoteID string

	FullName     string
	Email        string
	Password     string
	Phone        string
	Position     string
	Organization string
	Roles        []string
	Status       UserStatus
}

// Persisted reports whether the user exists on the backend.
func (u RelatedUser) Persisted() bool {
	return u.RemoteID != ""
}

// CombinedFormValues is the aggregate a wizard session owns: the primary
// entity's field values, the related-user set, and the remote identity of
// the primary entity once the first checkpoint succeeds. Only the session
// reducer mutates it.
type CombinedFormValues struct {
	Primary   FormValues
	Users     []RelatedUser
	PrimaryID string
}

// Clone returns a deep copy of the aggregate.
func (c CombinedFormValues) Clone() CombinedFormValues {
	out := CombinedFormValues{
		Primary:   c.Primary.Clone(),
		PrimaryID: c.PrimaryID,
	}
	if c.Users != nil {
		out.Users = make([]RelatedUser, len(c.Users))
		copy(out.Users, c.Users)
		for i := range out.Users {
			if c.Users[i].Roles != nil {
				out.Users[i].Roles = append([]string(nil), c.Users[i].Roles...)
			}
		}
	}
	return out
}

// UserByLocalID returns the index of the user with the given local id,
// or -1 when absent.
func (c CombinedFormValues) UserByLocalID(localID string) int {
	for i := range c.Users {
		if c.Users[i].LocalID == localID {
			return i
		}
	}
	return -1
}
