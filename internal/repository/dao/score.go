package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrScoreNotFound = errors.New("score not found")
)

type Score struct {
	ID           string                                 `gorm:"primaryKey;type:varchar(36)"`
	TeamID       string                                 `gorm:"type:varchar(36);not null;index"`
	TeamName     string                                 `gorm:"not null"`
	SchoolName   string                                 `gorm:"not null;index"`
	EventID      string                                 `gorm:"not null;index"`
	Values       datatypes.JSONType[map[string]float64] `gorm:"column:criteria_values;not null"`
	TotalScore   float64                                `gorm:"not null;index"`
	ScoredBy     string                                 `gorm:"not null"`
	ScoredByName string
	Method       string `gorm:"not null"`
	Status       string `gorm:"not null;index"`
	Attachments  datatypes.JSONType[[]string]
	Notes        string
	ScoredAt     time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (Score) TableName() string {
	return "team_scores"
}

type ScoreFilter struct {
	EventID string
	Status  string
}

type ScoreDAO struct {
	db *gorm.DB
}

func NewScoreDAO(db *gorm.DB) *ScoreDAO {
	return &ScoreDAO{
		db: db,
	}
}

func (d *ScoreDAO) Insert(ctx context.Context, score Score) (Score, error) {
	if result := d.db.WithContext(ctx).Create(&score); result.Error != nil {
		return Score{}, result.Error
	}

	return score, nil
}

func (d *ScoreDAO) FindByID(ctx context.Context, id string) (Score, error) {
	var score Score

	result := d.db.WithContext(ctx).First(&score, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Score{}, ErrScoreNotFound
		}

		return Score{}, result.Error
	}

	return score, nil
}

// Find lists scores matching filter, highest total first. Equal totals are
// ordered by creation time then id so repeated reads return the same order.
func (d *ScoreDAO) Find(ctx context.Context, filter ScoreFilter) ([]Score, error) {
	var scores []Score

	query := d.db.WithContext(ctx)
	if filter.EventID != "" {
		query = query.Where("event_id = ?", filter.EventID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	result := query.Order("total_score DESC, created_at ASC, id ASC").Find(&scores)
	if result.Error != nil {
		return nil, result.Error
	}

	return scores, nil
}

func (d *ScoreDAO) UpdateStatus(ctx context.Context, id, status string) (Score, error) {
	var score Score

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&score, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrScoreNotFound
			}

			return err
		}

		score.Status = status
		return tx.Model(&score).Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		return Score{}, err
	}

	return score, nil
}
