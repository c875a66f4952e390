package wizard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"finnadmin/internal/gateway"
	"finnadmin/internal/logging"
	"finnadmin/internal/types"
	"finnadmin/internal/validation"
)

// IsEditMode is the canonical create-vs-edit rule for a route id: a
// non-empty id that is not the literal "new" means edit.
func IsEditMode(id string) bool {
	return id != "" && id != "new"
}

// Rehydrator reconstructs form defaults from a persisted entity's wire
// representation when a wizard opens in edit mode.
type Rehydrator struct {
	gw  Gateway
	log *zap.Logger
}

// NewRehydrator creates a rehydrator over the given gateway.
func NewRehydrator(gw Gateway) *Rehydrator {
	return &Rehydrator{gw: gw, log: logging.L(logging.CategoryWizard)}
}

// Load fetches the entity and transforms wire shape into form shape.
// A not-found error propagates for the caller to notify and return to
// the list view. Individual malformed nested users are logged and
// skipped; they never abort the rehydration.
func (r *Rehydrator) Load(ctx context.Context, id string) (types.CombinedFormValues, error) {
	entity, err := r.gw.FetchOne(ctx, id)
	if err != nil {
		return types.CombinedFormValues{}, fmt.Errorf("load entity %s: %w", id, err)
	}

	values := types.CombinedFormValues{
		Primary:   primaryFormFromWire(entity),
		PrimaryID: entity.ID,
	}
	if values.PrimaryID == "" {
		values.PrimaryID = id
	}

	for _, raw := range entity.Users {
		wu, decErr := gateway.DecodeUser(raw)
		if decErr != nil {
			r.log.Error("skipping malformed nested user",
				zap.String("entity_id", id), zap.Error(decErr))
			continue
		}
		values.Users = append(values.Users, userFromWire(wu))
	}

	return values, nil
}

// primaryFormFromWire maps wire field names to form field names. The
// financial-institution reference goes through the wire type's fallback
// chain and stays empty when no variant is populated.
func primaryFormFromWire(e *gateway.WireEntity) types.FormValues {
	form := types.FormValues{
		validation.FieldCode:          e.Code,
		validation.FieldAddress:       e.Address,
		validation.FieldCodeSwift:     e.CodeSwift,
		validation.FieldDirectorName:  e.DirectorName,
		validation.FieldDirectorEmail: e.DirectorEmail,
		validation.FieldDirectorPhone: e.DirectorPhone,
		validation.FieldFinancialInst: e.FinancialInstitutionRef(),
	}
	if e.Label != "" {
		form[validation.FieldLabel] = e.Label
	}
	if e.Status != "" {
		form[validation.FieldStatus] = e.Status
	}
	return form
}

// userFromWire converts a nested wire user into form shape. The password
// is always empty (write-only, never round-tripped) and the role field
// variants are merged into one normalized slice.
func userFromWire(wu gateway.WireUser) types.RelatedUser {
	status := types.UserStatus(wu.Status)
	if !types.ValidUserStatus(status) {
		status = types.UserPending
	}
	return types.RelatedUser{
		LocalID:      uuid.NewString(),
		RemoteID:     wu.ID,
		FullName:     wu.FullName,
		Email:        wu.Email,
		Password:     "",
		Phone:        wu.Phone,
		Position:     wu.Position,
		Organization: wu.Organization,
		Roles:        wu.MergedRoles(),
		Status:       status,
	}
}
