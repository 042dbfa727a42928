package repository

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/repository/dao"
)

type RankingDAO interface {
	ReplaceAll(ctx context.Context, rows []dao.OverallRanking) error
	FindAll(ctx context.Context) ([]dao.OverallRanking, error)
}

type RankingRepository struct {
	dao RankingDAO
}

func NewRankingRepository(dao RankingDAO) *RankingRepository {
	return &RankingRepository{
		dao: dao,
	}
}

func (r *RankingRepository) ReplaceOverall(ctx context.Context, rankings []domain.OverallRanking) error {
	rows := make([]dao.OverallRanking, 0, len(rankings))
	for _, o := range rankings {
		breakdown := make(map[string]dao.EventBreakdown, len(o.Breakdown))
		for eventID, b := range o.Breakdown {
			breakdown[eventID] = dao.EventBreakdown(b)
		}

		rows = append(rows, dao.OverallRanking{
			ID:                       o.ID,
			SchoolName:               o.SchoolName,
			TotalPoints:              o.TotalPoints,
			AvgScore:                 o.AvgScore,
			CompetitionsParticipated: o.CompetitionsParticipated,
			TeamsCount:               o.TeamsCount,
			Breakdown:                datatypes.NewJSONType(breakdown),
			Medals:                   datatypes.NewJSONType(dao.Medals(o.Medals)),
			Rank:                     o.Rank,
			UpdatedAt:                o.UpdatedAt,
		})
	}

	if err := r.dao.ReplaceAll(ctx, rows); err != nil {
		return fmt.Errorf("r.dao.ReplaceAll -> %w", err)
	}

	return nil
}

func (r *RankingRepository) FindOverall(ctx context.Context) ([]domain.OverallRanking, error) {
	rows, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	rankings := make([]domain.OverallRanking, 0, len(rows))
	for _, row := range rows {
		breakdown := make(map[string]domain.EventBreakdown, len(row.Breakdown.Data()))
		for eventID, b := range row.Breakdown.Data() {
			breakdown[eventID] = domain.EventBreakdown(b)
		}

		rankings = append(rankings, domain.OverallRanking{
			ID:                       row.ID,
			SchoolName:               row.SchoolName,
			TotalPoints:              row.TotalPoints,
			AvgScore:                 row.AvgScore,
			CompetitionsParticipated: row.CompetitionsParticipated,
			TeamsCount:               row.TeamsCount,
			Breakdown:                breakdown,
			Medals:                   domain.Medals(row.Medals.Data()),
			Rank:                     row.Rank,
			UpdatedAt:                row.UpdatedAt,
		})
	}

	return rankings, nil
}
