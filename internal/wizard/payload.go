package wizard

import (
	"strings"

	"finnadmin/internal/gateway"
	"finnadmin/internal/types"
	"finnadmin/internal/validation"
)

// payloadFromForm shapes the primary sub-form into the wire body the
// backend expects. Optional fields are omitted rather than sent empty.
func payloadFromForm(kind types.EntityKind, v types.FormValues) map[string]any {
	payload := map[string]any{
		"code":    strings.TrimSpace(v.Get(validation.FieldCode)),
		"address": strings.TrimSpace(v.Get(validation.FieldAddress)),
	}

	optional := map[string]string{
		"label":          v.Get(validation.FieldLabel),
		"code_swift":     v.Get(validation.FieldCodeSwift),
		"director_name":  v.Get(validation.FieldDirectorName),
		"director_email": v.Get(validation.FieldDirectorEmail),
		"director_phone": v.Get(validation.FieldDirectorPhone),
	}
	for key, val := range optional {
		if val = strings.TrimSpace(val); val != "" {
			payload[key] = val
		}
	}

	if fi := strings.TrimSpace(v.Get(validation.FieldFinancialInst)); fi != "" {
		payload["financialInstitutionId"] = fi
	}

	status := strings.TrimSpace(v.Get(validation.FieldStatus))
	if status == "" {
		status = "active"
	}
	payload["status"] = status

	return payload
}

// userPayload shapes a related user for the sub-user endpoints. The
// password travels only when set; it is never rehydrated, so an empty
// password on edit means "unchanged".
func userPayload(u types.RelatedUser) gateway.UserPayload {
	status := u.Status
	if status == "" {
		status = types.UserPending
	}
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return gateway.UserPayload{
		FullName:     strings.TrimSpace(u.FullName),
		Email:        strings.TrimSpace(u.Email),
		Password:     u.Password,
		Phone:        strings.TrimSpace(u.Phone),
		Position:     strings.TrimSpace(u.Position),
		Organization: strings.TrimSpace(u.Organization),
		Status:       string(status),
		Roles:        roles,
	}
}
