package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmi-competition/portal-api/internal/domain"
)

func finalScore(id, eventID, school, team string, total float64) domain.TeamScore {
	return domain.TeamScore{
		ID:         id,
		TeamID:     "team-" + id,
		TeamName:   team,
		SchoolName: school,
		EventID:    eventID,
		TotalScore: total,
		Status:     domain.ScoreFinal,
	}
}

func newRankingFixture(scores ...domain.TeamScore) (*RankingService, *fakeRankings) {
	rankings := &fakeRankings{}
	svc := NewRankingService(newFakeScores(scores...), rankings)
	svc.now = func() time.Time { return testNow }

	return svc, rankings
}

func TestRankingService_CompetitionRanking(t *testing.T) {
	pending := finalScore("s5", "TANDU_DARURAT", "SMAN 5", "Pending", 10)
	pending.Status = domain.ScorePendingApproval

	svc, _ := newRankingFixture(
		finalScore("s1", "TANDU_DARURAT", "SMAN 1", "A", 8),
		finalScore("s2", "TANDU_DARURAT", "SMAN 2", "B", 9),
		finalScore("s3", "TANDU_DARURAT", "SMAN 3", "C", 8),
		finalScore("s4", "PENYULUHAN", "SMAN 4", "D", 10),
		pending,
	)

	ranking, err := svc.CompetitionRanking(context.Background(), "TANDU_DARURAT")
	require.NoError(t, err)

	require.Len(t, ranking.Rankings, 3)
	assert.Equal(t, "s2", ranking.Rankings[0].ID)
	assert.Equal(t, 1, ranking.Rankings[0].Rank)
	assert.Equal(t, "s1", ranking.Rankings[1].ID)
	assert.Equal(t, 2, ranking.Rankings[1].Rank)
	assert.Equal(t, "s3", ranking.Rankings[2].ID)
	assert.Equal(t, 2, ranking.Rankings[2].Rank)
	assert.Equal(t, 3, ranking.TotalParticipants)
	assert.InDelta(t, 25.0/3, ranking.AverageScore, 1e-9)
	assert.Equal(t, 9.0, ranking.TopScore)
	assert.Equal(t, testNow, ranking.UpdatedAt)
}

func TestRankingService_CompetitionRanking_Empty(t *testing.T) {
	svc, _ := newRankingFixture()

	ranking, err := svc.CompetitionRanking(context.Background(), "TANDU_DARURAT")
	require.NoError(t, err)
	assert.Empty(t, ranking.Rankings)
	assert.Zero(t, ranking.TotalParticipants)
	assert.Zero(t, ranking.AverageScore)
	assert.Zero(t, ranking.TopScore)
}

func TestRankingService_RecalculateOverall(t *testing.T) {
	svc, store := newRankingFixture(
		finalScore("s1", "TANDU_DARURAT", "SMAN 1 Bandung", "Melati", 9),
		finalScore("s2", "TANDU_DARURAT", "SMAN 2 Bandung", "Kenanga", 8),
		finalScore("s3", "PENYULUHAN", "sman 1  bandung ", "Mawar", 7),
		finalScore("s4", "PENYULUHAN", "SMAN 2 Bandung", "Dahlia", 10),
		finalScore("s5", "PENYULUHAN", "SMAN 3 Bandung", "Anggrek", 6),
	)

	rankings, err := svc.RecalculateOverall(context.Background())
	require.NoError(t, err)
	require.Len(t, rankings, 3)
	assert.Equal(t, 1, store.replaced)
	assert.Equal(t, rankings, store.stored)

	// SMAN 2 (18) ahead of SMAN 1 (16), then SMAN 3 (6).
	first, second, third := rankings[0], rankings[1], rankings[2]

	assert.Equal(t, "SMAN 2 Bandung", first.SchoolName)
	assert.Equal(t, "sman_2_bandung", first.ID)
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, 18.0, first.TotalPoints)
	assert.Equal(t, 9.0, first.AvgScore)
	assert.Equal(t, domain.Medals{Gold: 1, Silver: 1}, first.Medals)

	assert.Equal(t, "SMAN 1 Bandung", second.SchoolName)
	assert.Equal(t, 2, second.Rank)
	assert.Equal(t, 16.0, second.TotalPoints)
	assert.Equal(t, 2, second.TeamsCount)
	assert.Equal(t, 2, second.CompetitionsParticipated)
	assert.Equal(t, domain.Medals{Gold: 1, Silver: 1}, second.Medals)
	assert.Equal(t, domain.EventBreakdown{Teams: 1, TotalScore: 9, AvgScore: 9, BestScore: 9, BestTeam: "Melati"}, second.Breakdown["TANDU_DARURAT"])

	assert.Equal(t, "SMAN 3 Bandung", third.SchoolName)
	assert.Equal(t, 3, third.Rank)
	assert.Equal(t, domain.Medals{Bronze: 1}, third.Medals)
}

func TestRankingService_RecalculateOverall_Ties(t *testing.T) {
	svc, _ := newRankingFixture(
		finalScore("s1", "TANDU_DARURAT", "SMAN 1", "A", 8),
		finalScore("s2", "TANDU_DARURAT", "SMAN 2", "B", 8),
		finalScore("s3", "TANDU_DARURAT", "SMAN 3", "C", 5),
	)

	rankings, err := svc.RecalculateOverall(context.Background())
	require.NoError(t, err)
	require.Len(t, rankings, 3)

	assert.Equal(t, []int{1, 1, 3}, []int{rankings[0].Rank, rankings[1].Rank, rankings[2].Rank})
	assert.Equal(t, "SMAN 1", rankings[0].SchoolName)
	assert.Equal(t, "SMAN 2", rankings[1].SchoolName)
	assert.Equal(t, domain.Medals{Gold: 1}, rankings[0].Medals)
	assert.Equal(t, domain.Medals{Gold: 1}, rankings[1].Medals)
	assert.Equal(t, domain.Medals{Bronze: 1}, rankings[2].Medals)
}

func TestRankingService_RecalculateOverall_IgnoresUnapproved(t *testing.T) {
	pending := finalScore("s2", "TANDU_DARURAT", "SMAN 2", "B", 10)
	pending.Status = domain.ScorePendingApproval

	svc, store := newRankingFixture(finalScore("s1", "TANDU_DARURAT", "SMAN 1", "A", 8), pending)

	rankings, err := svc.RecalculateOverall(context.Background())
	require.NoError(t, err)
	require.Len(t, rankings, 1)
	assert.Equal(t, "SMAN 1", store.stored[0].SchoolName)
}

func TestRankingService_RecalculateOverall_Deterministic(t *testing.T) {
	scores := []domain.TeamScore{
		finalScore("s1", "TANDU_DARURAT", "SMAN 1", "A", 7),
		finalScore("s2", "PENYULUHAN", "SMAN 2", "B", 7),
		finalScore("s3", "PENYULUHAN", "SMAN 3", "C", 7),
		finalScore("s4", "TANDU_DARURAT", "SMAN 4", "D", 7),
	}

	svc, _ := newRankingFixture(scores...)
	want, err := svc.RecalculateOverall(context.Background())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		got, err := svc.RecalculateOverall(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestRankingService_ListOverall(t *testing.T) {
	svc, store := newRankingFixture()
	store.stored = []domain.OverallRanking{{ID: "sman_1", SchoolName: "SMAN 1", Rank: 1}}

	rankings, err := svc.ListOverall(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.stored, rankings)
}

func TestRankingService_RecalculateOverall_UnderscoreNames(t *testing.T) {
	svc, store := newRankingFixture(
		finalScore("s1", "TANDU_DARURAT", "SMA 1", "A", 9),
		finalScore("s2", "TANDU_DARURAT", "SMA_1", "B", 8),
	)

	rankings, err := svc.RecalculateOverall(context.Background())
	require.NoError(t, err)
	require.Len(t, rankings, 2)
	assert.Equal(t, "SMA 1", rankings[0].SchoolName)
	assert.Equal(t, "SMA_1", rankings[1].SchoolName)
	assert.NotEqual(t, rankings[0].ID, rankings[1].ID)
	assert.Len(t, store.stored, 2)
}
