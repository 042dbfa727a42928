package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmi-competition/portal-api/internal/domain"
)

func members(n int) []domain.Member {
	result := make([]domain.Member, n)
	for i := range result {
		result[i] = domain.Member{Name: "Member", Class: "XI"}
	}

	return result
}

func TestTeamService_Register(t *testing.T) {
	teams := newFakeTeams()
	svc := NewTeamService(teams, testCatalog())

	team, err := svc.Register(context.Background(), school, "TANDU_DARURAT", "  Melati  ", members(4))
	require.NoError(t, err)

	assert.NotEmpty(t, team.ID)
	assert.Equal(t, "Melati", team.Name)
	assert.Equal(t, int64(150000), team.Fee)
	assert.Equal(t, domain.PaymentPending, team.PaymentStatus)
	assert.Equal(t, school.ID, team.UserID)
	assert.Equal(t, school.SchoolName, team.SchoolName)
	assert.Empty(t, team.OrderID)
}

func TestTeamService_Register_Errors(t *testing.T) {
	svc := NewTeamService(newFakeTeams(), testCatalog())

	tests := []struct {
		name    string
		user    domain.User
		eventID string
		members int
		wantErr error
	}{
		{name: "admin", user: admin, eventID: "TANDU_DARURAT", members: 4, wantErr: ErrSchoolOnly},
		{name: "unknown event", user: school, eventID: "NOPE", members: 4, wantErr: ErrUnknownEvent},
		{name: "too few", user: school, eventID: "TANDU_DARURAT", members: 3, wantErr: ErrInvalidMemberCount},
		{name: "too many", user: school, eventID: "PENYULUHAN", members: 4, wantErr: ErrInvalidMemberCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.user, tt.eventID, "Tim", members(tt.members))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTeamService_List(t *testing.T) {
	teams := newFakeTeams(
		domain.Team{ID: "t1", UserID: school.ID, EventID: "TANDU_DARURAT", PaymentStatus: domain.PaymentPaid},
		domain.Team{ID: "t2", UserID: school.ID, EventID: "PENYULUHAN", PaymentStatus: domain.PaymentPending},
		domain.Team{ID: "t3", UserID: otherSchool.ID, EventID: "PENYULUHAN", PaymentStatus: domain.PaymentPaid},
	)
	svc := NewTeamService(teams, testCatalog())

	mine, err := svc.ListByUser(context.Background(), school.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	paid, err := svc.List(context.Background(), "", domain.PaymentPaid)
	require.NoError(t, err)
	assert.Len(t, paid, 2)

	penyuluhanPaid, err := svc.List(context.Background(), "PENYULUHAN", domain.PaymentPaid)
	require.NoError(t, err)
	require.Len(t, penyuluhanPaid, 1)
	assert.Equal(t, "t3", penyuluhanPaid[0].ID)

	_, err = svc.List(context.Background(), "NOPE", "")
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestTeamService_Competitions(t *testing.T) {
	svc := NewTeamService(newFakeTeams(), testCatalog())

	events := svc.Competitions()
	assert.Len(t, events, 2)
}
