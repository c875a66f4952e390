package gateway

import (
	"encoding/json"
	"strings"
)

// Wire shapes for the backend's JSON bodies. The backend is mid-
// migration, so some fields arrive under more than one name; each
// tolerated variant is an explicit field or an explicit raw-document
// lookup, never a blind type assertion at a call site.

// WireRef is a nested foreign-key object, e.g. {"id": "fi-9"}.
type WireRef struct {
	ID string `json:"id"`
}

// WireEntity is a primary entity as returned by GET /{resource}/{id}.
type WireEntity struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Label         string `json:"label"`
	Address       string `json:"address"`
	CodeSwift     string `json:"code_swift"`
	DirectorName  string `json:"director_name"`
	DirectorEmail string `json:"director_email"`
	DirectorPhone string `json:"director_phone"`
	Status        string `json:"status"`

	// The financial-institution reference arrives either nested or flat
	// depending on backend version.
	FinancialInstitution   *WireRef `json:"financialInstitution"`
	FinancialInstitutionID string   `json:"financialInstitutionId"`

	// Users stays undecoded so one malformed nested user cannot abort
	// decoding the whole entity; see DecodeUser.
	Users []json.RawMessage `json:"users"`

	// raw keeps the undecoded document for the defensive last-resort
	// lookup in FinancialInstitutionRef.
	raw map[string]json.RawMessage
}

// UnmarshalJSON decodes the typed fields and additionally captures the
// raw document for fallback lookups.
func (w *WireEntity) UnmarshalJSON(data []byte) error {
	type alias WireEntity
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*w = WireEntity(a)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err == nil {
		w.raw = raw
	}
	return nil
}

// FinancialInstitutionRef resolves the financial-institution id through
// the fallback chain: nested object, flat camelCase field, then a
// defensive scan of known legacy keys in the raw document. Returns ""
// when nothing is populated.
func (w *WireEntity) FinancialInstitutionRef() string {
	if w.FinancialInstitution != nil && w.FinancialInstitution.ID != "" {
		return w.FinancialInstitution.ID
	}
	if w.FinancialInstitutionID != "" {
		return w.FinancialInstitutionID
	}
	for _, key := range []string{"financial_institution_id", "financialInstitutionID", "fi_id"} {
		if msg, ok := w.raw[key]; ok {
			var s string
			if err := json.Unmarshal(msg, &s); err == nil && s != "" {
				return s
			}
		}
	}
	return ""
}

// RoleList tolerates the role field arriving as a scalar or an array and
// always normalizes to a slice.
type RoleList []string

// UnmarshalJSON accepts "x", ["a","b"], or null.
func (r *RoleList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*r = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*r = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*r = nil
		return nil
	}
	*r = RoleList{single}
	return nil
}

// WireUser is a related user nested under an entity or returned by the
// sub-user endpoints. Password never appears in responses.
type WireUser struct {
	ID           string   `json:"id"`
	FullName     string   `json:"fullname"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Position     string   `json:"position"`
	Organization string   `json:"organisation"`
	Status       string   `json:"status"`
	Role         RoleList `json:"role"`
	Roles        RoleList `json:"roles"`
}

// MergedRoles combines the two role field variants, preferring the
// plural form when both are present.
func (u WireUser) MergedRoles() []string {
	if len(u.Roles) > 0 {
		return []string(u.Roles)
	}
	return []string(u.Role)
}

// DecodeUser decodes one nested user document. Callers iterate
// WireEntity.Users and decide per user what a decode failure means.
func DecodeUser(raw json.RawMessage) (WireUser, error) {
	var u WireUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return WireUser{}, err
	}
	return u, nil
}

// UserPayload is the request body for create/update sub-user calls.
type UserPayload struct {
	FullName     string   `json:"fullname"`
	Email        string   `json:"email"`
	Password     string   `json:"password,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Position     string   `json:"position,omitempty"`
	Organization string   `json:"organisation,omitempty"`
	Status       string   `json:"status,omitempty"`
	Roles        []string `json:"roles"`
}

// RolePayload is the request body for the role-update endpoint.
type RolePayload struct {
	Roles []string `json:"roles"`
}

// idResponse unwraps create/update responses that return the persisted
// identity.
type idResponse struct {
	ID string `json:"id"`
}
