package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youthcouncil/internal/model"
)

type pairKey struct {
	programID     int64
	participantID int64
}

// fakeStore keeps everything in maps and enforces pair uniqueness inside
// CreateRegistration, the same guarantee the database store gives.
type fakeStore struct {
	participants  map[int64]*model.Participant
	programs      map[int64]*model.Program
	registrations map[pairKey]*model.Registration
	nextID        int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		participants:  make(map[int64]*model.Participant),
		programs:      make(map[int64]*model.Program),
		registrations: make(map[pairKey]*model.Registration),
	}
}

func (f *fakeStore) addParticipant(p model.Participant) *model.Participant {
	f.nextID++
	p.ID = f.nextID
	f.participants[p.ID] = &p
	return &p
}

func (f *fakeStore) addProgram(p model.Program) *model.Program {
	f.nextID++
	p.ID = f.nextID
	f.programs[p.ID] = &p
	return &p
}

func (f *fakeStore) GetParticipant(_ context.Context, id int64) (*model.Participant, error) {
	p, ok := f.participants[id]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	return p, nil
}

func (f *fakeStore) GetProgram(_ context.Context, id int64) (*model.Program, error) {
	p, ok := f.programs[id]
	if !ok {
		return nil, ErrProgramNotFound
	}
	return p, nil
}

func (f *fakeStore) GetRegistration(_ context.Context, programID, participantID int64) (*model.Registration, error) {
	r, ok := f.registrations[pairKey{programID, participantID}]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (f *fakeStore) CreateRegistration(_ context.Context, programID, participantID int64, status string, date time.Time) (*model.Registration, error) {
	key := pairKey{programID, participantID}
	if existing, ok := f.registrations[key]; ok {
		return nil, &DuplicateError{Existing: *existing}
	}
	f.nextID++
	r := &model.Registration{
		ID:               f.nextID,
		ProgramID:        programID,
		ParticipantID:    participantID,
		Status:           status,
		RegistrationDate: date,
	}
	f.registrations[key] = r
	return r, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, programID, participantID int64, status string) (*model.Registration, error) {
	r, ok := f.registrations[pairKey{programID, participantID}]
	if !ok {
		return nil, ErrNotFound
	}
	r.Status = status
	return r, nil
}

func (f *fakeStore) DeleteParticipantCascade(_ context.Context, participantID int64) error {
	if _, ok := f.participants[participantID]; !ok {
		return ErrParticipantNotFound
	}
	for key := range f.registrations {
		if key.participantID == participantID {
			delete(f.registrations, key)
		}
	}
	delete(f.participants, participantID)
	return nil
}

func (f *fakeStore) DeleteProgramCascade(_ context.Context, programID int64) error {
	if _, ok := f.programs[programID]; !ok {
		return ErrProgramNotFound
	}
	for key := range f.registrations {
		if key.programID == programID {
			delete(f.registrations, key)
		}
	}
	delete(f.programs, programID)
	return nil
}

func completeParticipant() model.Participant {
	return model.Participant{
		FirstName: "Ada",
		LastName:  "Reyes",
		Age:       16,
		Contact:   "555-0101",
	}
}

func TestApplyStartsPending(t *testing.T) {
	store := newFakeStore()
	p := store.addParticipant(completeParticipant())
	prog := store.addProgram(model.Program{Name: "Summer Camp", Status: model.ProgramActive})
	lc := NewLifecycle(store, Permissive)

	reg, err := lc.Apply(context.Background(), p.ID, prog.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationPending, reg.Status)
	assert.Equal(t, prog.ID, reg.ProgramID)
	assert.Equal(t, p.ID, reg.ParticipantID)
	assert.False(t, reg.RegistrationDate.IsZero())
}

func TestApplyDuplicateKeepsOriginal(t *testing.T) {
	store := newFakeStore()
	p := store.addParticipant(completeParticipant())
	prog := store.addProgram(model.Program{Name: "Summer Camp"})
	lc := NewLifecycle(store, Permissive)

	first, err := lc.Apply(context.Background(), p.ID, prog.ID)
	require.NoError(t, err)

	// flip the status so the duplicate error must carry the current one
	_, err = lc.SetStatus(context.Background(), prog.ID, p.ID, model.RegistrationApproved)
	require.NoError(t, err)

	_, err = lc.Apply(context.Background(), p.ID, prog.ID)
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.ID, dup.Existing.ID)
	assert.Equal(t, model.RegistrationApproved, dup.Existing.Status)

	require.Len(t, store.registrations, 1, "duplicate apply must not create a second row")
}

func TestApplyIncompleteProfile(t *testing.T) {
	store := newFakeStore()
	p := store.addParticipant(model.Participant{FirstName: "Ada"})
	prog := store.addProgram(model.Program{Name: "Summer Camp"})
	lc := NewLifecycle(store, Permissive)

	_, err := lc.Apply(context.Background(), p.ID, prog.ID)
	var inc *IncompleteProfileError
	require.ErrorAs(t, err, &inc)
	assert.Equal(t, []string{"Last Name", "Age", "Contact Number"}, inc.Missing)
	assert.Empty(t, store.registrations)
}

func TestApplyWhitespaceOnlyFieldsAreMissing(t *testing.T) {
	p := model.Participant{FirstName: "  ", LastName: "Reyes", Age: 16, Contact: "\t"}
	assert.Equal(t, []string{"First Name", "Contact Number"}, MissingProfileFields(&p))
}

func TestApplyUnknownProgram(t *testing.T) {
	store := newFakeStore()
	p := store.addParticipant(completeParticipant())
	lc := NewLifecycle(store, Permissive)

	_, err := lc.Apply(context.Background(), p.ID, 999)
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestApplyUnknownParticipant(t *testing.T) {
	store := newFakeStore()
	prog := store.addProgram(model.Program{Name: "Summer Camp"})
	lc := NewLifecycle(store, Permissive)

	_, err := lc.Apply(context.Background(), 999, prog.ID)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestAdminAddStartsApproved(t *testing.T) {
	store := newFakeStore()
	// admin-added participants skip the profile completeness check
	p := store.addParticipant(model.Participant{FirstName: "Ada"})
	prog := store.addProgram(model.Program{Name: "Summer Camp"})
	lc := NewLifecycle(store, Permissive)

	reg, err := lc.AdminAdd(context.Background(), p.ID, prog.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationApproved, reg.Status)
}

func TestSetStatusAnyTransitionAllowed(t *testing.T) {
	store := newFakeStore()
	p := store.addParticipant(completeParticipant())
	prog := store.addProgram(model.Program{Name: "Summer Camp"})
	lc := NewLifecycle(store, Permissive)

	_, err := lc.Apply(context.Background(), p.ID, prog.ID)
	require.NoError(t, err)

	for _, status := range []string{
		model.RegistrationApproved,
		model.RegistrationRejected,
		model.RegistrationWaitlisted,
		model.RegistrationApproved, // re-approve after waitlisting
		model.RegistrationPending,
	} {
		reg, err := lc.SetStatus(context.Background(), prog.ID, p.ID, status)
		require.NoError(t, err, "transition to %s", status)
		assert.Equal(t, status, reg.Status)
	}
	require.Len(t, store.registrations, 1)
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	store := newFakeStore()
	lc := NewLifecycle(store, Permissive)

	_, err := lc.SetStatus(context.Background(), 1, 1, "Cancelled")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetStatusMissingPairNeverCreates(t *testing.T) {
	store := newFakeStore()
	p := store.addParticipant(completeParticipant())
	prog := store.addProgram(model.Program{Name: "Summer Camp"})
	lc := NewLifecycle(store, Permissive)

	_, err := lc.SetStatus(context.Background(), prog.ID, p.ID, model.RegistrationApproved)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.registrations)
}

func TestSetStatusHonorsPolicy(t *testing.T) {
	store := newFakeStore()
	p := store.addParticipant(completeParticipant())
	prog := store.addProgram(model.Program{Name: "Summer Camp"})

	noReopen := func(from, to string) bool {
		return from != model.RegistrationRejected
	}
	lc := NewLifecycle(store, noReopen)

	_, err := lc.Apply(context.Background(), p.ID, prog.ID)
	require.NoError(t, err)
	_, err = lc.SetStatus(context.Background(), prog.ID, p.ID, model.RegistrationRejected)
	require.NoError(t, err)

	_, err = lc.SetStatus(context.Background(), prog.ID, p.ID, model.RegistrationApproved)
	assert.ErrorIs(t, err, ErrTransitionDenied)

	reg, err := store.GetRegistration(context.Background(), prog.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationRejected, reg.Status)
}

func TestRemoveParticipantCascade(t *testing.T) {
	store := newFakeStore()
	p := store.addParticipant(completeParticipant())
	other := store.addParticipant(completeParticipant())
	progA := store.addProgram(model.Program{Name: "Camp A"})
	progB := store.addProgram(model.Program{Name: "Camp B"})
	lc := NewLifecycle(store, Permissive)

	_, err := lc.Apply(context.Background(), p.ID, progA.ID)
	require.NoError(t, err)
	_, err = lc.Apply(context.Background(), p.ID, progB.ID)
	require.NoError(t, err)
	_, err = lc.Apply(context.Background(), other.ID, progA.ID)
	require.NoError(t, err)

	require.NoError(t, lc.RemoveParticipant(context.Background(), p.ID))

	_, err = store.GetParticipant(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
	_, err = store.GetRegistration(context.Background(), progA.ID, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// the other participant's registration survives
	_, err = store.GetRegistration(context.Background(), progA.ID, other.ID)
	assert.NoError(t, err)
}

func TestRemoveProgramCascade(t *testing.T) {
	store := newFakeStore()
	p := store.addParticipant(completeParticipant())
	prog := store.addProgram(model.Program{Name: "Summer Camp"})
	lc := NewLifecycle(store, Permissive)

	_, err := lc.Apply(context.Background(), p.ID, prog.ID)
	require.NoError(t, err)

	require.NoError(t, lc.RemoveProgram(context.Background(), prog.ID))
	_, err = store.GetProgram(context.Background(), prog.ID)
	assert.ErrorIs(t, err, ErrProgramNotFound)
	assert.Empty(t, store.registrations)

	// the participant itself is untouched
	_, err = store.GetParticipant(context.Background(), p.ID)
	assert.NoError(t, err)
}

func TestUpdateOptimisticCommits(t *testing.T) {
	view := model.RegistrationPending
	err := UpdateOptimistic(&view, model.RegistrationApproved, func() error { return nil })
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationApproved, view)
}

func TestUpdateOptimisticRollsBackOnFailure(t *testing.T) {
	view := model.RegistrationPending
	writeErr := errors.New("write failed")

	var seen string
	err := UpdateOptimistic(&view, model.RegistrationApproved, func() error {
		seen = view
		return writeErr
	})
	assert.ErrorIs(t, err, writeErr)
	assert.Equal(t, model.RegistrationApproved, seen, "view flips before the write")
	assert.Equal(t, model.RegistrationPending, view, "failed write restores prior value")
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		model.RegistrationPending, model.RegistrationApproved,
		model.RegistrationRejected, model.RegistrationWaitlisted,
	} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("Cancelled"))
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus(""))
}
