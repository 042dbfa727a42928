package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/repository"
)

var ErrExportDisabled = errors.New("spreadsheet export is not configured")

type Exporter interface {
	ExportOverall(ctx context.Context, rankings []domain.OverallRanking) error
	ExportTeams(ctx context.Context, teams []domain.Team, catalog *domain.Catalog) error
}

type ExportTeamRepository interface {
	Find(ctx context.Context, filter repository.TeamFilter) ([]domain.Team, error)
}

type ExportSummary struct {
	Schools int `json:"schools"`
	Teams   int `json:"teams"`
}

type ExportService struct {
	rankings RankingRepository
	teams    ExportTeamRepository
	exporter Exporter
	catalog  *domain.Catalog
}

// NewExportService creates the service. exporter may be nil, in which case
// Export reports ErrExportDisabled.
func NewExportService(rankings RankingRepository, teams ExportTeamRepository, exporter Exporter, catalog *domain.Catalog) *ExportService {
	return &ExportService{
		rankings: rankings,
		teams:    teams,
		exporter: exporter,
		catalog:  catalog,
	}
}

// Export publishes the stored overall ranking and every registered team.
func (s *ExportService) Export(ctx context.Context) (ExportSummary, error) {
	if s.exporter == nil {
		return ExportSummary{}, ErrExportDisabled
	}

	rankings, err := s.rankings.FindOverall(ctx)
	if err != nil {
		return ExportSummary{}, fmt.Errorf("s.rankings.FindOverall -> %w", err)
	}
	teams, err := s.teams.Find(ctx, repository.TeamFilter{})
	if err != nil {
		return ExportSummary{}, fmt.Errorf("s.teams.Find -> %w", err)
	}

	if err = s.exporter.ExportOverall(ctx, rankings); err != nil {
		return ExportSummary{}, fmt.Errorf("s.exporter.ExportOverall -> %w", err)
	}
	if err = s.exporter.ExportTeams(ctx, teams, s.catalog); err != nil {
		return ExportSummary{}, fmt.Errorf("s.exporter.ExportTeams -> %w", err)
	}

	return ExportSummary{Schools: len(rankings), Teams: len(teams)}, nil
}
