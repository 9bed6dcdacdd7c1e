package services

import (
	"context"
	"errors"
	"testing"

	"teampulse/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_SnapshotsMission(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	andrea := env.createAgent(t, "Andrea", "Editor")
	mission := env.createMission(t, "Excelente Video", 10, "positive")

	entry, err := env.actions.Register(ctx, &RegisterActionInput{TargetUserID: andrea.ID, MissionID: mission.ID}, "")
	require.NoError(t, err)

	_, err = env.missions.Update(ctx, mission.ID, &MissionInput{Title: "Video Normal", Points: 3, Type: "positive"})
	require.NoError(t, err)

	stored, err := env.store.Ledger().GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Excelente Video", stored.MissionTitle)
	assert.Equal(t, 10, stored.Points)
}

func TestRegister_UsesClockMonth(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	a := env.createAgent(t, "Andrea", "Editor")
	m := env.createMission(t, "Excelente Video", 10, "positive")

	entry, err := env.actions.Register(ctx, &RegisterActionInput{TargetUserID: a.ID, MissionID: m.ID}, "")
	require.NoError(t, err)
	assert.Equal(t, domain.MonthTag("2026-01"), entry.MonthTag)
}

func TestRegister_AttributesCreator(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	a := env.createAgent(t, "Andrea", "Editor")
	m := env.createMission(t, "Excelente Video", 10, "positive")

	entry, err := env.actions.Register(ctx, &RegisterActionInput{TargetUserID: a.ID, MissionID: m.ID}, "")
	require.NoError(t, err)
	assert.Equal(t, a.ID, entry.CreatedBy, "missing actor falls back to the target")

	entry, err = env.actions.Register(ctx, &RegisterActionInput{TargetUserID: a.ID, MissionID: m.ID}, "boss")
	require.NoError(t, err)
	assert.Equal(t, "boss", entry.CreatedBy)
	assert.Equal(t, "Andrea", entry.TargetName)
}

func TestRegister_Rejections(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	editor := env.createAgent(t, "Andrea", "Editor")
	designer := env.createAgent(t, "Valentina", "Designer")
	gone := env.createAgent(t, "Pedro", "Editor")
	require.NoError(t, env.agents.Deactivate(ctx, gone.ID, editor.ID))

	positive := env.createMission(t, "Excelente Video", 10, "positive")
	editorOnly, err := env.missions.Create(ctx, &MissionInput{Title: "Corte limpio", Points: 5, Type: "positive", TargetTitle: ptr("Editor")})
	require.NoError(t, err)
	retired := env.createMission(t, "Vieja", 1, "positive")
	require.NoError(t, env.missions.Deactivate(ctx, retired.ID))

	tests := []struct {
		name  string
		input RegisterActionInput
		want  error
	}{
		{"missing ids", RegisterActionInput{}, domain.ErrInvalidInput},
		{"unknown agent", RegisterActionInput{TargetUserID: "nope", MissionID: positive.ID}, domain.ErrAgentNotFound},
		{"inactive agent", RegisterActionInput{TargetUserID: gone.ID, MissionID: positive.ID}, domain.ErrAgentInactive},
		{"unknown mission", RegisterActionInput{TargetUserID: editor.ID, MissionID: "nope"}, domain.ErrMissionNotFound},
		{"inactive mission", RegisterActionInput{TargetUserID: editor.ID, MissionID: retired.ID}, domain.ErrMissionInactive},
		{"wrong title", RegisterActionInput{TargetUserID: designer.ID, MissionID: editorOnly.ID}, domain.ErrMissionNotApplicable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, err := env.actions.Register(ctx, &input, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}

	entries, err := env.store.Ledger().ListByMonth(ctx, testMonth)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = env.actions.Register(ctx, &RegisterActionInput{TargetUserID: editor.ID, MissionID: editorOnly.ID}, "")
	assert.NoError(t, err)
}

func TestRegister_StrictPenaltyRequiresNote(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	a := env.createAgent(t, "Andrea", "Editor")
	penalty := env.createMission(t, "Retraso Grave", 10, "negative")

	_, err := env.settings.Update(ctx, &UpdateSettingsInput{StrictPenaltyMode: ptr(true)})
	require.NoError(t, err)

	_, err = env.actions.Register(ctx, &RegisterActionInput{TargetUserID: a.ID, MissionID: penalty.ID, Note: ptr("   ")}, "")
	assert.ErrorIs(t, err, domain.ErrNoteRequired)

	entry, err := env.actions.Register(ctx, &RegisterActionInput{TargetUserID: a.ID, MissionID: penalty.ID, Note: ptr(" llegó tarde ")}, "")
	require.NoError(t, err)
	assert.Equal(t, -10, entry.Points)
	require.NotNil(t, entry.Note)
	assert.Equal(t, "llegó tarde", *entry.Note)
}

func TestRegister_ClosedMonth(t *testing.T) {
	ctx := context.Background()
	env := newSampleEnv(t)

	_, err := env.archives.CloseMonth(ctx, testMonth, "admin")
	require.NoError(t, err)

	_, err = env.actions.Register(ctx, &RegisterActionInput{TargetUserID: "1", MissionID: "m1"}, "")
	assert.ErrorIs(t, err, domain.ErrMonthClosed)
}

func TestDeleteEntry_RemovesOnlyThatRow(t *testing.T) {
	ctx := context.Background()
	env := newSampleEnv(t)

	before, err := env.store.Ledger().ListByMonth(ctx, testMonth)
	require.NoError(t, err)

	require.NoError(t, env.actions.DeleteEntry(ctx, "102", ConfirmIrreversible))

	after, err := env.store.Ledger().ListByMonth(ctx, testMonth)
	require.NoError(t, err)
	require.Len(t, after, len(before)-1)
	for _, e := range after {
		assert.NotEqual(t, "102", e.ID)
	}

	_, err = env.store.Ledger().GetByID(ctx, "102")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)

	err = env.actions.DeleteEntry(ctx, "102", ConfirmIrreversible)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)

	assert.Contains(t, env.publisher.types(), domain.EventActionDeleted)
}

func TestDeleteEntry_Guards(t *testing.T) {
	ctx := context.Background()
	env := newSampleEnv(t)

	err := env.actions.DeleteEntry(ctx, "101", false)
	assert.ErrorIs(t, err, domain.ErrDeletionNotConfirmed)

	_, err = env.archives.CloseMonth(ctx, testMonth, "admin")
	require.NoError(t, err)

	err = env.actions.DeleteEntry(ctx, "101", ConfirmIrreversible)
	assert.ErrorIs(t, err, domain.ErrMonthClosed)

	_, err = env.store.Ledger().GetByID(ctx, "101")
	assert.NoError(t, err)
}

func TestAuthorizeRegistration(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	assert.NoError(t, env.actions.AuthorizeRegistration(ctx, domain.RoleAdmin))
	assert.ErrorIs(t, env.actions.AuthorizeRegistration(ctx, domain.RoleMember), domain.ErrForbidden)

	_, err := env.settings.Update(ctx, &UpdateSettingsInput{AllowMemberActions: ptr(true)})
	require.NoError(t, err)
	assert.NoError(t, env.actions.AuthorizeRegistration(ctx, domain.RoleMember))
}

func TestRegister_PublishFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	env := newSampleEnv(t)
	env.publisher.err = errors.New("broker down")

	entry, err := env.actions.Register(ctx, &RegisterActionInput{TargetUserID: "3", MissionID: "m1"}, "")
	require.NoError(t, err)

	stored, err := env.store.Ledger().GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sara", stored.TargetName)
}

func TestListRecent(t *testing.T) {
	ctx := context.Background()
	env := newSampleEnv(t)

	recent, err := env.actions.ListRecent(ctx, 2, nil)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "101", recent[0].ID)
	assert.Equal(t, "Andrea", recent[0].TargetName)
	assert.Equal(t, "102", recent[1].ID)

	all, err := env.actions.ListRecent(ctx, 0, nil)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
