package dao

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventBreakdown struct {
	Teams      int     `json:"teams"`
	TotalScore float64 `json:"totalScore"`
	AvgScore   float64 `json:"avgScore"`
	BestScore  float64 `json:"bestScore"`
	BestTeam   string  `json:"bestTeam"`
}

type Medals struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

type OverallRanking struct {
	ID                       string `gorm:"primaryKey;type:varchar(255)"`
	SchoolName               string `gorm:"not null"`
	TotalPoints              float64
	AvgScore                 float64
	CompetitionsParticipated int
	TeamsCount               int
	Breakdown                datatypes.JSONType[map[string]EventBreakdown]
	Medals                   datatypes.JSONType[Medals]
	Rank                     int       `gorm:"not null;index"`
	UpdatedAt                time.Time `gorm:"not null"`
}

func (OverallRanking) TableName() string {
	return "overall_rankings"
}

type RankingDAO struct {
	db *gorm.DB
}

func NewRankingDAO(db *gorm.DB) *RankingDAO {
	return &RankingDAO{
		db: db,
	}
}

// ReplaceAll makes rows the complete stored rollup: every row is upserted and
// every stored row whose id is not among them is deleted, atomically.
func (d *RankingDAO) ReplaceAll(ctx context.Context, rows []OverallRanking) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(rows) == 0 {
			return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
				Delete(&OverallRanking{}).Error
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&rows).Error
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.ID)
		}

		return tx.Where("id NOT IN ?", ids).Delete(&OverallRanking{}).Error
	})
}

func (d *RankingDAO) FindAll(ctx context.Context) ([]OverallRanking, error) {
	var rows []OverallRanking

	result := d.db.WithContext(ctx).Order("rank ASC, school_name ASC").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
