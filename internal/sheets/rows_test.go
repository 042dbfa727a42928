package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pmi-competition/portal-api/internal/domain"
)

func TestOverallRows(t *testing.T) {
	rows := OverallRows([]domain.OverallRanking{
		{
			Rank:                     1,
			SchoolName:               "SMA 1",
			TotalPoints:              17.666666,
			AvgScore:                 8.833333,
			CompetitionsParticipated: 2,
			TeamsCount:               2,
			Medals:                   domain.Medals{Gold: 1, Bronze: 1},
		},
	})

	assert.Len(t, rows, 2)
	assert.Equal(t, overallHeader, rows[0])
	assert.Equal(t, []interface{}{1, "SMA 1", 17.67, 8.83, 2, 2, 1, 0, 1}, rows[1])
}

func TestOverallRows_Empty(t *testing.T) {
	assert.Equal(t, [][]interface{}{overallHeader}, OverallRows(nil))
}

func TestTeamRows(t *testing.T) {
	catalog := domain.NewCatalog([]domain.Event{{ID: "PENYULUHAN", Name: "Penyuluhan"}})

	rows := TeamRows([]domain.Team{
		{
			Name:          "Alpha",
			SchoolName:    "SMA 1",
			EventID:       "PENYULUHAN",
			Members:       []domain.Member{{Name: "Ani"}, {Name: "Budi"}},
			Fee:           150000,
			PaymentStatus: domain.PaymentPaid,
			OrderID:       "PMI-1-abc",
		},
		{
			Name:          "Beta",
			SchoolName:    "SMA 2",
			EventID:       "RETIRED_EVENT",
			PaymentStatus: domain.PaymentPending,
		},
	}, catalog)

	assert.Len(t, rows, 3)
	assert.Equal(t, []interface{}{"Alpha", "SMA 1", "Penyuluhan", "Ani, Budi", int64(150000), "PAID", "PMI-1-abc"}, rows[1])
	assert.Equal(t, "RETIRED_EVENT", rows[2][2])
	assert.Equal(t, "", rows[2][3])
}
