package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/repository/dao"
	"github.com/pmi-competition/portal-api/internal/scoring"
)

var (
	ErrScoreNotFound = dao.ErrScoreNotFound
)

type ScoreDAO interface {
	Insert(ctx context.Context, score dao.Score) (dao.Score, error)
	FindByID(ctx context.Context, id string) (dao.Score, error)
	Find(ctx context.Context, filter dao.ScoreFilter) ([]dao.Score, error)
	UpdateStatus(ctx context.Context, id, status string) (dao.Score, error)
}

type ScoreFilter = dao.ScoreFilter

type ScoreRepository struct {
	dao ScoreDAO
}

func NewScoreRepository(dao ScoreDAO) *ScoreRepository {
	return &ScoreRepository{
		dao: dao,
	}
}

func (r *ScoreRepository) Create(ctx context.Context, score domain.TeamScore) (domain.TeamScore, error) {
	attachments := score.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	created, err := r.dao.Insert(ctx, dao.Score{
		ID:           uuid.NewString(),
		TeamID:       score.TeamID,
		TeamName:     score.TeamName,
		SchoolName:   score.SchoolName,
		EventID:      score.EventID,
		Values:       datatypes.NewJSONType(map[string]float64(score.Values)),
		TotalScore:   score.TotalScore,
		ScoredBy:     score.ScoredBy,
		ScoredByName: score.ScoredByName,
		Method:       string(score.Method),
		Status:       string(score.Status),
		Attachments:  datatypes.NewJSONType(attachments),
		Notes:        score.Notes,
		ScoredAt:     score.ScoredAt,
	})
	if err != nil {
		return domain.TeamScore{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ScoreRepository) FindByID(ctx context.Context, id string) (domain.TeamScore, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.TeamScore{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ScoreRepository) Find(ctx context.Context, filter ScoreFilter) ([]domain.TeamScore, error) {
	found, err := r.dao.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	scores := make([]domain.TeamScore, 0, len(found))
	for _, s := range found {
		scores = append(scores, r.daoToDomain(s))
	}

	return scores, nil
}

func (r *ScoreRepository) UpdateStatus(ctx context.Context, id string, status domain.ScoreStatus) (domain.TeamScore, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(status))
	if err != nil {
		return domain.TeamScore{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ScoreRepository) daoToDomain(s dao.Score) domain.TeamScore {
	return domain.TeamScore{
		ID:           s.ID,
		TeamID:       s.TeamID,
		TeamName:     s.TeamName,
		SchoolName:   s.SchoolName,
		EventID:      s.EventID,
		Values:       scoring.Values(s.Values.Data()),
		TotalScore:   s.TotalScore,
		ScoredBy:     s.ScoredBy,
		ScoredByName: s.ScoredByName,
		Method:       domain.ScoreMethod(s.Method),
		Status:       domain.ScoreStatus(s.Status),
		Attachments:  s.Attachments.Data(),
		Notes:        s.Notes,
		ScoredAt:     s.ScoredAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
