package wizard

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"finnadmin/internal/gateway"
	"finnadmin/internal/logging"
	"finnadmin/internal/types"
	"finnadmin/internal/validation"
)

// Gateway is the slice of the remote entity gateway the wizard needs.
// gateway.Resource satisfies it; tests substitute fakes.
type Gateway interface {
	CreateOrUpdate(ctx context.Context, payload map[string]any, existingID string) (string, error)
	CreateUser(ctx context.Context, entityID string, user gateway.UserPayload) (string, error)
	UpdateUser(ctx context.Context, entityID, userID string, user gateway.UserPayload) error
	UpdateUserRole(ctx context.Context, entityID, userID string, roles []string) error
	FetchOne(ctx context.Context, id string) (*gateway.WireEntity, error)
}

// Notifier receives the user-facing outcome messages (toasts in the
// browser original, status lines in the TUI).
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// ErrBusy is returned when a transition is requested while a remote
// checkpoint is already in flight.
var ErrBusy = errors.New("a remote operation is already in progress")

// ErrNoEntityID is returned by Submit when the primary entity was never
// persisted.
var ErrNoEntityID = errors.New("no entity id: the primary entity has not been created")

// ValidationError blocks a forward transition. The per-field result is
// rendered inline by the form.
type ValidationError struct {
	Result validation.Result
}

func (e *ValidationError) Error() string {
	return e.Result.Error().Error()
}

// Orchestrator sequences the wizard: it owns the session, gates forward
// transitions on validation, performs the primary-entity checkpoint at
// the step 0->1 boundary, and aggregates final submission.
type Orchestrator struct {
	kind    types.EntityKind
	session *Session
	schema  validation.Schema
	gw      Gateway
	notify  Notifier
	log     *zap.Logger
}

// New creates an orchestrator with a fresh session.
func New(kind types.EntityKind, gw Gateway, notify Notifier) *Orchestrator {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Orchestrator{
		kind:    kind,
		session: NewSession(kind),
		schema:  validation.ForEntity(kind),
		gw:      gw,
		notify:  notify,
		log:     logging.L(logging.CategoryWizard),
	}
}

// Session exposes the session for reads and event dispatch by the UI.
func (o *Orchestrator) Session() *Session { return o.session }

// Schema returns the primary-entity schema (the UI labels inputs from it).
func (o *Orchestrator) Schema() validation.Schema { return o.schema }

// UpdatePrimary is the designated update callback for the primary
// sub-form: dispatched on every field change with the whole value set.
func (o *Orchestrator) UpdatePrimary(values types.FormValues) {
	o.session.Apply(PrimaryChanged{Values: values})
}

// ValidatePrimary runs the primary schema against the current values.
func (o *Orchestrator) ValidatePrimary() validation.Result {
	return o.schema.Validate(o.session.Values().Primary)
}

// NextStep advances the wizard. Leaving step 0 requires the primary
// sub-form to validate and the entity to be persisted: with no backend
// id yet the entity is created; with one, updated. On any failure the
// step index is unchanged and no partial progress is recorded.
func (o *Orchestrator) NextStep(ctx context.Context) error {
	if o.session.Busy() {
		return ErrBusy
	}
	if o.session.StepIndex() >= StepCount-1 {
		return nil
	}

	if o.session.StepIndex() == StepPrimary {
		if res := o.ValidatePrimary(); !res.Valid() {
			o.notify.Error("Please correct the highlighted fields.")
			return &ValidationError{Result: res}
		}
		if err := o.persistPrimary(ctx); err != nil {
			return err
		}
	}

	o.session.Apply(StepAdvanced{})
	return nil
}

// persistPrimary runs the step-0 checkpoint. No idempotency key is
// attached; a retry after a transport failure may create a duplicate
// remote entity.
func (o *Orchestrator) persistPrimary(ctx context.Context) error {
	values := o.session.Values()
	payload := payloadFromForm(o.kind, values.Primary)

	o.session.Apply(CreationStarted{})
	defer o.session.Apply(CreationFinished{})

	id, err := o.gw.CreateOrUpdate(ctx, payload, values.PrimaryID)
	if err != nil {
		o.log.Warn("primary checkpoint failed",
			zap.String("kind", string(o.kind)),
			zap.String("existing_id", values.PrimaryID),
			zap.Error(err))
		o.notify.Error(userMessage(err, "save the "+o.kind.Title()))
		return err
	}

	o.session.Apply(IDAssigned{ID: id})
	if values.PrimaryID == "" {
		o.log.Info("primary entity created",
			zap.String("kind", string(o.kind)), zap.String("id", id))
		o.notify.Success(o.kind.Title() + " created.")
	}
	return nil
}

// PrevStep moves back one step. Never touches the network.
func (o *Orchestrator) PrevStep() {
	o.session.Apply(StepRetreated{})
}

// Submit finalizes the wizard. Related users were already persisted
// individually as they were added, so beyond the id precondition there
// is no further remote effect; the caller navigates back to the list
// view on success.
func (o *Orchestrator) Submit(ctx context.Context) error {
	if o.session.Busy() {
		return ErrBusy
	}
	if o.session.StepIndex() != StepCount-1 {
		return fmt.Errorf("submit is only available on the final step")
	}
	if o.session.PrimaryID() == "" {
		o.notify.Error("Cannot submit: the " + o.kind.Title() + " was never created.")
		return ErrNoEntityID
	}

	o.session.Apply(SubmitStarted{})
	defer o.session.Apply(SubmitFinished{})

	o.notify.Success(o.kind.Title() + " saved.")
	return nil
}

// userMessage maps a remote failure to the user-facing text, switching
// on the gateway's error kind only.
func userMessage(err error, action string) string {
	var ge *gateway.Error
	if !errors.As(err, &ge) {
		return "Failed to " + action + "."
	}
	switch ge.Kind {
	case gateway.KindDuplicateEmail:
		return "This email address is already in use."
	case gateway.KindValidation:
		if ge.Message != "" {
			return ge.Message
		}
		return "The backend rejected the submitted values."
	case gateway.KindNotFound:
		return "The record no longer exists."
	case gateway.KindAuth:
		return "Your session has expired. Please sign in again."
	case gateway.KindTransient:
		return "Failed to " + action + ": the backend is unreachable. Your input was kept; try again."
	}
	return "Failed to " + action + "."
}
