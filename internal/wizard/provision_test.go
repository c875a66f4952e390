package wizard

import (
	"context"
	"errors"
	"testing"

	"finnadmin/internal/gateway"
	"finnadmin/internal/types"
)

func persistedOrchestrator(gw *fakeGateway, notify Notifier) *Orchestrator {
	o := New(types.KindAgence, gw, notify)
	o.Session().Apply(IDAssigned{ID: "ag-1"})
	return o
}

func TestAddUserRejectsCaseInsensitiveDuplicateEmailLocally(t *testing.T) {
	gw := &fakeGateway{}
	o := persistedOrchestrator(gw, nil)

	if err := o.AddUser(context.Background(), types.RelatedUser{
		FullName: "A", Email: "a@x.com", Roles: []string{types.RoleAgenceViewer},
	}); err != nil {
		t.Fatalf("first AddUser: %v", err)
	}

	err := o.AddUser(context.Background(), types.RelatedUser{
		FullName: "B", Email: "A@X.com", Roles: []string{types.RoleAgenceViewer},
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if gw.createUserCalls != 1 {
		t.Errorf("duplicate must be rejected before any network call; calls = %d", gw.createUserCalls)
	}
	if got := len(o.Session().Values().Users); got != 1 {
		t.Errorf("user list length = %d, want 1", got)
	}
}

func TestAddUserRejectsMalformedEmail(t *testing.T) {
	gw := &fakeGateway{}
	o := persistedOrchestrator(gw, nil)

	err := o.AddUser(context.Background(), types.RelatedUser{FullName: "A", Email: "not-an-email"})
	if !errors.Is(err, ErrBadEmail) {
		t.Fatalf("expected ErrBadEmail, got %v", err)
	}
	if gw.createUserCalls != 0 {
		t.Error("malformed email must never reach the gateway")
	}
}

func TestAddUserRejectsRoleOutsideVocabulary(t *testing.T) {
	o := persistedOrchestrator(&fakeGateway{}, nil)

	err := o.AddUser(context.Background(), types.RelatedUser{
		FullName: "A", Email: "a@x.com", Roles: []string{types.RoleTCCSettler},
	})
	if !errors.Is(err, ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed, got %v", err)
	}
}

func TestAddUserPersistedEntityPushesImmediately(t *testing.T) {
	var gotEntityID string
	var gotPayload gateway.UserPayload
	gw := &fakeGateway{
		createUserFn: func(_ context.Context, entityID string, user gateway.UserPayload) (string, error) {
			gotEntityID = entityID
			gotPayload = user
			return "u-9", nil
		},
	}
	notify := &recordingNotifier{}
	o := persistedOrchestrator(gw, notify)

	err := o.AddUser(context.Background(), types.RelatedUser{
		FullName: "Jane Ops",
		Email:    "jane@x.com",
		Password: "s3cret-pass",
		Roles:    []string{types.RoleAgenceClientManager},
	})
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}

	if gotEntityID != "ag-1" {
		t.Errorf("entity id = %q, want ag-1", gotEntityID)
	}
	if gotPayload.Email != "jane@x.com" || gotPayload.Password != "s3cret-pass" {
		t.Errorf("unexpected payload: %+v", gotPayload)
	}

	users := o.Session().Values().Users
	if len(users) != 1 {
		t.Fatalf("user list length = %d, want 1", len(users))
	}
	if users[0].RemoteID != "u-9" {
		t.Errorf("remote id = %q, want u-9", users[0].RemoteID)
	}
	if users[0].LocalID == "" {
		t.Error("local id must be assigned")
	}
	if len(notify.successes) == 0 {
		t.Error("success notification expected")
	}
}

func TestAddUserUnpersistedEntityStaysLocal(t *testing.T) {
	gw := &fakeGateway{}
	o := New(types.KindAgence, gw, nil) // no primary id yet

	err := o.AddUser(context.Background(), types.RelatedUser{
		FullName: "A", Email: "a@x.com", Roles: []string{types.RoleAgenceViewer},
	})
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if gw.createUserCalls != 0 {
		t.Error("no remote call without a persisted entity")
	}
	users := o.Session().Values().Users
	if len(users) != 1 || users[0].Persisted() {
		t.Errorf("expected one unpersisted local user, got %+v", users)
	}
}

func TestPartialFailureIsolation(t *testing.T) {
	// First creation succeeds, second fails with a duplicate-email 400.
	calls := 0
	gw := &fakeGateway{
		createUserFn: func(_ context.Context, _ string, user gateway.UserPayload) (string, error) {
			calls++
			if calls == 1 {
				return "u1", nil
			}
			return "", &gateway.Error{
				Kind:    gateway.KindDuplicateEmail,
				Status:  400,
				Message: "Email already in use",
			}
		},
	}
	notify := &recordingNotifier{}
	o := persistedOrchestrator(gw, notify)

	if err := o.AddUser(context.Background(), types.RelatedUser{
		FullName: "First", Email: "first@x.com", Roles: []string{types.RoleAgenceViewer},
	}); err != nil {
		t.Fatalf("first AddUser: %v", err)
	}

	err := o.AddUser(context.Background(), types.RelatedUser{
		FullName: "Second", Email: "second@x.com", Roles: []string{types.RoleAgenceViewer},
	})
	if !gateway.IsKind(err, gateway.KindDuplicateEmail) {
		t.Fatalf("expected duplicate-email failure, got %v", err)
	}

	users := o.Session().Values().Users
	if len(users) != 1 {
		t.Fatalf("user list length = %d, want exactly the first user", len(users))
	}
	if users[0].RemoteID != "u1" {
		t.Errorf("surviving user = %+v, want the first (u1)", users[0])
	}
	if got := notify.lastError(t); got != "This email address is already in use." {
		t.Errorf("error message = %q, want the specific duplicate-email text", got)
	}
}

func TestUpdateUserAllowsKeepingOwnEmail(t *testing.T) {
	o := persistedOrchestrator(&fakeGateway{}, nil)

	if err := o.AddUser(context.Background(), types.RelatedUser{
		FullName: "A", Email: "a@x.com", Roles: []string{types.RoleAgenceViewer},
	}); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	localID := o.Session().Values().Users[0].LocalID

	// Same email on the row being edited is not a collision.
	err := o.UpdateUser(context.Background(), localID, types.RelatedUser{
		FullName: "A Renamed", Email: "A@x.com", Roles: []string{types.RoleAgenceViewer},
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if got := o.Session().Values().Users[0].FullName; got != "A Renamed" {
		t.Errorf("full name = %q, want A Renamed", got)
	}
}

func TestUpdateUserPushesRoleChangeSeparately(t *testing.T) {
	var roleCalls int
	var gotRoles []string
	gw := &fakeGateway{
		updateUserRoleFn: func(_ context.Context, entityID, userID string, roles []string) error {
			roleCalls++
			gotRoles = roles
			if entityID != "ag-1" || userID != "u-1" {
				t.Errorf("role update addressed %s/%s", entityID, userID)
			}
			return nil
		},
	}
	o := persistedOrchestrator(gw, nil)

	if err := o.AddUser(context.Background(), types.RelatedUser{
		FullName: "A", Email: "a@x.com", Roles: []string{types.RoleAgenceViewer},
	}); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	localID := o.Session().Values().Users[0].LocalID

	// Attribute-only change: no role call.
	if err := o.UpdateUser(context.Background(), localID, types.RelatedUser{
		FullName: "A2", Email: "a@x.com", Roles: []string{types.RoleAgenceViewer},
	}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if roleCalls != 0 {
		t.Fatalf("unchanged roles must not trigger a role update, got %d calls", roleCalls)
	}

	// Role change goes through the dedicated endpoint.
	if err := o.UpdateUser(context.Background(), localID, types.RelatedUser{
		FullName: "A2", Email: "a@x.com", Roles: []string{types.RoleAgenceAdmin},
	}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if roleCalls != 1 {
		t.Fatalf("role update calls = %d, want 1", roleCalls)
	}
	if len(gotRoles) != 1 || gotRoles[0] != types.RoleAgenceAdmin {
		t.Errorf("roles sent = %v", gotRoles)
	}
}

func TestUpdateUserRemoteFailureLeavesListUnchanged(t *testing.T) {
	gw := &fakeGateway{
		updateUserFn: func(context.Context, string, string, gateway.UserPayload) error {
			return &gateway.Error{Kind: gateway.KindTransient}
		},
	}
	o := persistedOrchestrator(gw, nil)

	if err := o.AddUser(context.Background(), types.RelatedUser{
		FullName: "A", Email: "a@x.com", Roles: []string{types.RoleAgenceViewer},
	}); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	localID := o.Session().Values().Users[0].LocalID

	err := o.UpdateUser(context.Background(), localID, types.RelatedUser{
		FullName: "Changed", Email: "a@x.com", Roles: []string{types.RoleAgenceViewer},
	})
	if err == nil {
		t.Fatal("expected remote failure")
	}
	if got := o.Session().Values().Users[0].FullName; got != "A" {
		t.Errorf("full name = %q, local state must be unchanged on failure", got)
	}
}
