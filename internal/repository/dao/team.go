package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamsNotAttached = errors.New("not every team could be attached to the order")
	ErrTeamsNotSettled  = errors.New("not every team of the order could be updated")
)

type Member struct {
	Name  string `json:"name"`
	Class string `json:"class,omitempty"`
	NISN  string `json:"nisn,omitempty"`
}

type Team struct {
	ID            string                       `gorm:"primaryKey;type:varchar(36)"`
	UserID        string                       `gorm:"type:varchar(36);not null;index"`
	SchoolName    string                       `gorm:"not null;index"`
	EventID       string                       `gorm:"not null;index"`
	Name          string                       `gorm:"not null"`
	Members       datatypes.JSONType[[]Member] `gorm:"not null"`
	Fee           int64                        `gorm:"not null"`
	PaymentStatus string                       `gorm:"not null;index;default:'PENDING'"`
	OrderID       *string                      `gorm:"index"`
	CreatedAt     time.Time                    `gorm:"not null"`
	UpdatedAt     time.Time                    `gorm:"not null"`
}

type TeamFilter struct {
	UserID        string
	EventID       string
	PaymentStatus string
}

type TeamDAO struct {
	db *gorm.DB
}

func NewTeamDAO(db *gorm.DB) *TeamDAO {
	return &TeamDAO{
		db: db,
	}
}

func (d *TeamDAO) Insert(ctx context.Context, team Team) (Team, error) {
	if result := d.db.WithContext(ctx).Create(&team); result.Error != nil {
		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) FindByID(ctx context.Context, id string) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).First(&team, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

// FindPayable returns the teams among ids that belong to userID and are still
// pending payment, oldest first.
func (d *TeamDAO) FindPayable(ctx context.Context, userID string, ids []string) ([]Team, error) {
	var teams []Team
	if len(ids) == 0 {
		return teams, nil
	}

	result := d.db.WithContext(ctx).
		Where("id IN ? AND user_id = ? AND payment_status = ?", ids, userID, "PENDING").
		Order("created_at ASC, id ASC").
		Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

func (d *TeamDAO) Find(ctx context.Context, filter TeamFilter) ([]Team, error) {
	var teams []Team

	query := d.db.WithContext(ctx)
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.EventID != "" {
		query = query.Where("event_id = ?", filter.EventID)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}

	if result := query.Order("created_at ASC, id ASC").Find(&teams); result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

// AttachOrder stamps orderID on every team in ids. Either all of them are
// updated or none is.
func (d *TeamDAO) AttachOrder(ctx context.Context, orderID string, ids []string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Team{}).
			Where("id IN ? AND payment_status = ?", ids, "PENDING").
			Updates(map[string]interface{}{
				"order_id":   orderID,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(ids)) {
			return fmt.Errorf("%w: %d of %d", ErrTeamsNotAttached, result.RowsAffected, len(ids))
		}

		return nil
	})
}
