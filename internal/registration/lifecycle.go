package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"youthcouncil/internal/model"
)

var (
	ErrProgramNotFound     = errors.New("program not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrNotFound            = errors.New("registration not found")
	ErrInvalidStatus       = errors.New("invalid registration status")
	ErrTransitionDenied    = errors.New("status transition denied")
)

// DuplicateError reports an attempt to register a (participant, program)
// pair that already has a row, carrying the existing registration so the
// caller can surface its current status.
type DuplicateError struct {
	Existing model.Registration
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("already applied (status %s)", e.Existing.Status)
}

// IncompleteProfileError lists the human-readable names of the required
// profile fields that are empty.
type IncompleteProfileError struct {
	Missing []string
}

func (e *IncompleteProfileError) Error() string {
	return "incomplete profile: missing " + strings.Join(e.Missing, ", ")
}

// Store is the transactional boundary the lifecycle runs against. Uniqueness
// of the (program, participant) pair is enforced inside CreateRegistration's
// transaction, and UpdateStatus fails with ErrNotFound instead of creating a
// row, so the lifecycle never has to do a racy check-then-write of its own.
type Store interface {
	GetParticipant(ctx context.Context, id int64) (*model.Participant, error)
	GetProgram(ctx context.Context, id int64) (*model.Program, error)
	GetRegistration(ctx context.Context, programID, participantID int64) (*model.Registration, error)
	CreateRegistration(ctx context.Context, programID, participantID int64, status string, date time.Time) (*model.Registration, error)
	UpdateStatus(ctx context.Context, programID, participantID int64, status string) (*model.Registration, error)
	DeleteParticipantCascade(ctx context.Context, participantID int64) error
	DeleteProgramCascade(ctx context.Context, programID int64) error
}

// Policy decides whether one registration status may replace another.
type Policy func(from, to string) bool

// Permissive allows any status to be set from any status at any time, so an
// admin can re-approve a rejected registration or waitlist an approved one.
// This is deliberate configuration, not an absent check.
func Permissive(string, string) bool { return true }

func ValidStatus(s string) bool {
	switch s {
	case model.RegistrationPending, model.RegistrationApproved,
		model.RegistrationRejected, model.RegistrationWaitlisted:
		return true
	}
	return false
}

// MissingProfileFields returns the display names of required profile fields
// the participant has not filled in.
func MissingProfileFields(p *model.Participant) []string {
	var missing []string
	if strings.TrimSpace(p.FirstName) == "" {
		missing = append(missing, "First Name")
	}
	if strings.TrimSpace(p.LastName) == "" {
		missing = append(missing, "Last Name")
	}
	if p.Age == 0 {
		missing = append(missing, "Age")
	}
	if strings.TrimSpace(p.Contact) == "" {
		missing = append(missing, "Contact Number")
	}
	return missing
}

// Lifecycle applies the registration rules on top of a Store.
type Lifecycle struct {
	store  Store
	policy Policy
	now    func() time.Time
}

func NewLifecycle(store Store, policy Policy) *Lifecycle {
	if policy == nil {
		policy = Permissive
	}
	return &Lifecycle{store: store, policy: policy, now: time.Now}
}

// Apply is the participant self-service join. The profile must have first
// name, last name, age and contact filled in; the new row starts Pending.
func (l *Lifecycle) Apply(ctx context.Context, participantID, programID int64) (*model.Registration, error) {
	p, err := l.store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if missing := MissingProfileFields(p); len(missing) > 0 {
		return nil, &IncompleteProfileError{Missing: missing}
	}
	if _, err := l.store.GetProgram(ctx, programID); err != nil {
		return nil, err
	}
	return l.store.CreateRegistration(ctx, programID, participantID, model.RegistrationPending, l.now())
}

// AdminAdd registers a participant on an admin's behalf; the row starts
// Approved. The profile completeness check applies to self-service only.
func (l *Lifecycle) AdminAdd(ctx context.Context, participantID, programID int64) (*model.Registration, error) {
	if _, err := l.store.GetParticipant(ctx, participantID); err != nil {
		return nil, err
	}
	if _, err := l.store.GetProgram(ctx, programID); err != nil {
		return nil, err
	}
	return l.store.CreateRegistration(ctx, programID, participantID, model.RegistrationApproved, l.now())
}

// SetStatus replaces the pair's status in place. The prior value is not
// retained anywhere. A missing row fails with ErrNotFound rather than
// silently creating one. Concurrent writers race and the last one wins;
// that is a preserved limitation, not a bug.
func (l *Lifecycle) SetStatus(ctx context.Context, programID, participantID int64, newStatus string) (*model.Registration, error) {
	if !ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}
	current, err := l.store.GetRegistration(ctx, programID, participantID)
	if err != nil {
		return nil, err
	}
	if !l.policy(current.Status, newStatus) {
		return nil, ErrTransitionDenied
	}
	return l.store.UpdateStatus(ctx, programID, participantID, newStatus)
}

// RemoveParticipant deletes the participant and its registrations, dependents
// first, in one transaction; a partial failure leaves the parent intact.
func (l *Lifecycle) RemoveParticipant(ctx context.Context, participantID int64) error {
	return l.store.DeleteParticipantCascade(ctx, participantID)
}

// RemoveProgram deletes the program with its expenses and registrations.
func (l *Lifecycle) RemoveProgram(ctx context.Context, programID int64) error {
	return l.store.DeleteProgramCascade(ctx, programID)
}

// UpdateOptimistic mirrors the UI contract for status changes: the visible
// value flips before the write completes, and a failed write restores the
// captured prior value before the error is reported.
func UpdateOptimistic(view *string, newStatus string, write func() error) error {
	prior := *view
	*view = newStatus
	if err := write(); err != nil {
		*view = prior
		return err
	}
	return nil
}
