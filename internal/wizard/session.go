// Package wizard implements the multi-step entity creation/edit workflow:
// a session holding the combined form aggregate, an orchestrator that
// gates step transitions on validation and drives the remote checkpoints,
// related-user sub-provisioning, and the edit-mode rehydrator.
//
// All aggregate state flows through a single reducer: forms and remote
// callbacks dispatch typed events, and Session.Apply is the only writer.
package wizard

import (
	"finnadmin/internal/types"
)

// Step layout shared by all entity wizards.
const (
	StepPrimary = 0 // primary-entity sub-form
	StepUsers   = 1 // related-user provisioning
	StepReview  = 2 // review + submit
	StepCount   = 3
)

// StepLabels returns the labels shown in the progress indicator.
func StepLabels(kind types.EntityKind) []string {
	return []string{kind.Title() + " Details", "Users", "Review"}
}

// Event is a state change dispatched into the session reducer.
type Event interface{ isEvent() }

// PrimaryChanged replaces the primary sub-form values. Dispatched on
// every field change, not debounced.
type PrimaryChanged struct{ Values types.FormValues }

// IDAssigned records the backend identity returned by the first
// successful checkpoint.
type IDAssigned struct{ ID string }

// UserAdded appends a related user to the aggregate.
type UserAdded struct{ User types.RelatedUser }

// UserReplaced rewrites the user with the matching local id.
type UserReplaced struct {
	LocalID string
	User    types.RelatedUser
}

// AggregateReset replaces the whole aggregate. Used when edit-mode
// defaults arrive after mount: a full reset, never a merge, so stale
// values (notably the financial-institution selection) cannot survive an
// entity switch.
type AggregateReset struct{ Values types.CombinedFormValues }

// StepAdvanced and StepRetreated move the step cursor within bounds.
type StepAdvanced struct{}
type StepRetreated struct{}

// CreationStarted/Finished bracket the primary-entity checkpoint call;
// SubmitStarted/Finished bracket final submission. While either is in
// flight the session reports Busy and the UI disables its triggers.
type CreationStarted struct{}
type CreationFinished struct{}
type SubmitStarted struct{}
type SubmitFinished struct{}

func (PrimaryChanged) isEvent()   {}
func (IDAssigned) isEvent()       {}
func (UserAdded) isEvent()        {}
func (UserReplaced) isEvent()     {}
func (AggregateReset) isEvent()   {}
func (StepAdvanced) isEvent()     {}
func (StepRetreated) isEvent()    {}
func (CreationStarted) isEvent()  {}
func (CreationFinished) isEvent() {}
func (SubmitStarted) isEvent()    {}
func (SubmitFinished) isEvent()   {}

// Session is the transient per-wizard state: one per form visit, created
// on entry, discarded on exit, never persisted locally.
type Session struct {
	kind            types.EntityKind
	stepIndex       int
	creatingPrimary bool
	submitting      bool
	values          types.CombinedFormValues
}

// NewSession creates a session at step 0 with an empty aggregate.
func NewSession(kind types.EntityKind) *Session {
	return &Session{
		kind: kind,
		values: types.CombinedFormValues{
			Primary: types.FormValues{},
		},
	}
}

// Apply is the single writer for session state.
func (s *Session) Apply(ev Event) {
	switch e := ev.(type) {
	case PrimaryChanged:
		s.values.Primary = e.Values.Clone()
	case IDAssigned:
		s.values.PrimaryID = e.ID
	case UserAdded:
		s.values.Users = append(s.values.Users, e.User)
	case UserReplaced:
		if i := s.values.UserByLocalID(e.LocalID); i >= 0 {
			s.values.Users[i] = e.User
		}
	case AggregateReset:
		s.values = e.Values.Clone()
		if s.values.Primary == nil {
			s.values.Primary = types.FormValues{}
		}
	case StepAdvanced:
		if s.stepIndex < StepCount-1 {
			s.stepIndex++
		}
	case StepRetreated:
		if s.stepIndex > 0 {
			s.stepIndex--
		}
	case CreationStarted:
		s.creatingPrimary = true
	case CreationFinished:
		s.creatingPrimary = false
	case SubmitStarted:
		s.submitting = true
	case SubmitFinished:
		s.submitting = false
	}
}

// Kind returns the entity kind this session edits.
func (s *Session) Kind() types.EntityKind { return s.kind }

// StepIndex returns the current zero-based step.
func (s *Session) StepIndex() int { return s.stepIndex }

// Busy reports whether a remote checkpoint is in flight. Advisory: the
// UI disables its triggers while true.
func (s *Session) Busy() bool { return s.creatingPrimary || s.submitting }

// CreatingPrimary reports whether the step-0 checkpoint is in flight.
func (s *Session) CreatingPrimary() bool { return s.creatingPrimary }

// Submitting reports whether final submission is in flight.
func (s *Session) Submitting() bool { return s.submitting }

// Values returns a snapshot of the aggregate. Mutating the snapshot does
// not affect the session.
func (s *Session) Values() types.CombinedFormValues {
	return s.values.Clone()
}

// PrimaryID returns the entity's backend identity, "" until the first
// checkpoint succeeds.
func (s *Session) PrimaryID() string { return s.values.PrimaryID }
