package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"finnadmin/internal/types"
	"finnadmin/internal/validation"
)

// Related-user sub-provisioning. Two policies apply depending on whether
// the primary entity already has a backend identity when a user is
// added:
//
//   - persisted entity: the user is pushed to the backend immediately;
//     only on success does the local list change, so a failure leaves
//     the dialog input re-editable as entered.
//   - unpersisted entity: the user is held in the local aggregate only.
//     No later batch submission exists; see DESIGN.md.

// ErrDuplicateEmail rejects a user whose email collides (case-
// insensitively) with another local user's.
var ErrDuplicateEmail = errors.New("a user with this email already exists")

// ErrBadEmail rejects an email the RFC-lite pattern refuses. Checked
// independently of the schema as defense in depth.
var ErrBadEmail = errors.New("invalid email address")

// ErrRoleNotAllowed rejects a role outside the entity type's vocabulary.
var ErrRoleNotAllowed = errors.New("role not allowed for this entity type")

// checkUserLocal enforces the local invariants that must hold before any
// remote call. excludeLocalID skips the row being edited in the
// uniqueness scan.
func (o *Orchestrator) checkUserLocal(user types.RelatedUser, excludeLocalID string) error {
	email := strings.TrimSpace(user.Email)
	if !validation.ValidEmail(email) {
		return ErrBadEmail
	}

	lower := strings.ToLower(email)
	for _, existing := range o.session.Values().Users {
		if existing.LocalID == excludeLocalID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(existing.Email)) == lower {
			return ErrDuplicateEmail
		}
	}

	for _, role := range user.Roles {
		if !types.RoleAllowed(o.kind, role) {
			return fmt.Errorf("%w: %s", ErrRoleNotAllowed, role)
		}
	}
	return nil
}

// AddUser attaches a user to the primary entity. With a persisted
// entity the creation is pushed remotely at once (at-least-once attempt,
// no retry); otherwise the user is kept in the aggregate only.
func (o *Orchestrator) AddUser(ctx context.Context, user types.RelatedUser) error {
	if err := o.checkUserLocal(user, ""); err != nil {
		o.notify.Error(localUserMessage(err))
		return err
	}

	if user.LocalID == "" {
		user.LocalID = uuid.NewString()
	}
	if user.Status == "" {
		user.Status = types.UserPending
	}

	entityID := o.session.PrimaryID()
	if entityID != "" {
		remoteID, err := o.gw.CreateUser(ctx, entityID, userPayload(user))
		if err != nil {
			o.log.Warn("user provisioning failed",
				zap.String("entity_id", entityID),
				zap.String("email", user.Email),
				zap.Error(err))
			o.notify.Error(userMessage(err, "create the user"))
			return err
		}
		user.RemoteID = remoteID
		o.notify.Success("User " + user.Email + " created.")
	}

	o.session.Apply(UserAdded{User: user})
	return nil
}

// UpdateUser rewrites an existing row. A user already persisted is
// updated remotely first (attributes, then the role set when it
// changed); local-only users are just replaced in the aggregate.
func (o *Orchestrator) UpdateUser(ctx context.Context, localID string, user types.RelatedUser) error {
	values := o.session.Values()
	idx := values.UserByLocalID(localID)
	if idx < 0 {
		return fmt.Errorf("no user with local id %s", localID)
	}
	current := values.Users[idx]

	if err := o.checkUserLocal(user, localID); err != nil {
		o.notify.Error(localUserMessage(err))
		return err
	}

	user.LocalID = current.LocalID
	user.RemoteID = current.RemoteID
	if user.Status == "" {
		user.Status = current.Status
	}

	entityID := o.session.PrimaryID()
	if entityID != "" && current.Persisted() {
		if err := o.gw.UpdateUser(ctx, entityID, current.RemoteID, userPayload(user)); err != nil {
			o.notify.Error(userMessage(err, "update the user"))
			return err
		}
		if !equalRoles(current.Roles, user.Roles) {
			if err := o.gw.UpdateUserRole(ctx, entityID, current.RemoteID, user.Roles); err != nil {
				o.notify.Error(userMessage(err, "update the user's roles"))
				return err
			}
		}
		o.notify.Success("User " + user.Email + " updated.")
	}

	o.session.Apply(UserReplaced{LocalID: localID, User: user})
	return nil
}

func equalRoles(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func localUserMessage(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return "A user with this email already exists."
	case errors.Is(err, ErrBadEmail):
		return "Please enter a valid email address."
	case errors.Is(err, ErrRoleNotAllowed):
		return "One of the selected roles is not available for this entity type."
	}
	return err.Error()
}
