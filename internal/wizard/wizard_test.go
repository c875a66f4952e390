package wizard

import (
	"context"
	"encoding/json"
	"testing"

	"finnadmin/internal/gateway"
	"finnadmin/internal/types"
	"finnadmin/internal/validation"
)

// fakeGateway records calls and delegates to the configured funcs.
type fakeGateway struct {
	createOrUpdateCalls int
	createUserCalls     int

	createOrUpdateFn func(ctx context.Context, payload map[string]any, existingID string) (string, error)
	createUserFn     func(ctx context.Context, entityID string, user gateway.UserPayload) (string, error)
	updateUserFn     func(ctx context.Context, entityID, userID string, user gateway.UserPayload) error
	updateUserRoleFn func(ctx context.Context, entityID, userID string, roles []string) error
	fetchOneFn       func(ctx context.Context, id string) (*gateway.WireEntity, error)
}

func (f *fakeGateway) CreateOrUpdate(ctx context.Context, payload map[string]any, existingID string) (string, error) {
	f.createOrUpdateCalls++
	if f.createOrUpdateFn == nil {
		return "id-1", nil
	}
	return f.createOrUpdateFn(ctx, payload, existingID)
}

func (f *fakeGateway) CreateUser(ctx context.Context, entityID string, user gateway.UserPayload) (string, error) {
	f.createUserCalls++
	if f.createUserFn == nil {
		return "u-1", nil
	}
	return f.createUserFn(ctx, entityID, user)
}

func (f *fakeGateway) UpdateUser(ctx context.Context, entityID, userID string, user gateway.UserPayload) error {
	if f.updateUserFn == nil {
		return nil
	}
	return f.updateUserFn(ctx, entityID, userID, user)
}

func (f *fakeGateway) UpdateUserRole(ctx context.Context, entityID, userID string, roles []string) error {
	if f.updateUserRoleFn == nil {
		return nil
	}
	return f.updateUserRoleFn(ctx, entityID, userID, roles)
}

func (f *fakeGateway) FetchOne(ctx context.Context, id string) (*gateway.WireEntity, error) {
	if f.fetchOneFn == nil {
		return &gateway.WireEntity{ID: id}, nil
	}
	return f.fetchOneFn(ctx, id)
}

// recordingNotifier captures the user-facing outcome messages.
type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func (n *recordingNotifier) lastError(t *testing.T) string {
	t.Helper()
	if len(n.errors) == 0 {
		t.Fatal("expected an error notification")
	}
	return n.errors[len(n.errors)-1]
}

// wellFormedAgence mirrors the reference input from the acceptance
// criteria for the agency form.
func wellFormedAgence() types.FormValues {
	return types.FormValues{
		validation.FieldCode:          "A1",
		validation.FieldAddress:       "X",
		validation.FieldCodeSwift:     "SWIFT1",
		validation.FieldDirectorName:  "D",
		validation.FieldDirectorEmail: "d@x.com",
		validation.FieldDirectorPhone: "0550123456",
		validation.FieldFinancialInst: "fi-1",
	}
}

// wireEntityFromJSON builds a WireEntity the way the gateway does, so
// tests exercise the real decode path including the raw capture.
func wireEntityFromJSON(t *testing.T, body string) *gateway.WireEntity {
	t.Helper()
	var e gateway.WireEntity
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		t.Fatalf("decode wire entity: %v", err)
	}
	return &e
}
