package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmi-competition/portal-api/internal/domain"
)

type recordingExporter struct {
	overall []domain.OverallRanking
	teams   []domain.Team
	err     error
}

func (e *recordingExporter) ExportOverall(_ context.Context, rankings []domain.OverallRanking) error {
	e.overall = rankings
	return e.err
}

func (e *recordingExporter) ExportTeams(_ context.Context, teams []domain.Team, _ *domain.Catalog) error {
	e.teams = teams
	return nil
}

func TestExportService_Export(t *testing.T) {
	rankings := &fakeRankings{stored: []domain.OverallRanking{{ID: "sman_1", SchoolName: "SMAN 1", Rank: 1}}}
	teams := newFakeTeams(domain.Team{ID: "t1"}, domain.Team{ID: "t2"})
	exporter := &recordingExporter{}

	summary, err := NewExportService(rankings, teams, exporter, testCatalog()).Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExportSummary{Schools: 1, Teams: 2}, summary)
	assert.Len(t, exporter.overall, 1)
	assert.Len(t, exporter.teams, 2)
}

func TestExportService_Export_Errors(t *testing.T) {
	_, err := NewExportService(&fakeRankings{}, newFakeTeams(), nil, testCatalog()).Export(context.Background())
	assert.ErrorIs(t, err, ErrExportDisabled)

	boom := errors.New("quota exceeded")
	_, err = NewExportService(&fakeRankings{}, newFakeTeams(), &recordingExporter{err: boom}, testCatalog()).Export(context.Background())
	assert.ErrorIs(t, err, boom)
}
