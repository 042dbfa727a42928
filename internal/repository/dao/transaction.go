package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateOrder      = errors.New("order id already exists")
)

const statusPaid = "PAID"

type Transaction struct {
	OrderID       string                       `gorm:"primaryKey;type:varchar(64)"`
	UserID        string                       `gorm:"type:varchar(36);not null;index"`
	SchoolName    string                       `gorm:"not null"`
	TotalAmount   int64                        `gorm:"not null"`
	TeamIDs       datatypes.JSONType[[]string] `gorm:"not null"`
	Status        string                       `gorm:"not null;index;default:'PENDING'"`
	PaymentMethod *string
	PaidAt        *time.Time
	SnapToken     string
	RawResponse   datatypes.JSON
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (Transaction) TableName() string {
	return "transactions"
}

type TransactionDAO struct {
	db *gorm.DB
}

func NewTransactionDAO(db *gorm.DB) *TransactionDAO {
	return &TransactionDAO{
		db: db,
	}
}

func (d *TransactionDAO) Insert(ctx context.Context, t Transaction) (Transaction, error) {
	result := d.db.WithContext(ctx).Create(&t)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Transaction{}, ErrDuplicateOrder
		}

		return Transaction{}, result.Error
	}

	return t, nil
}

func (d *TransactionDAO) FindByOrderID(ctx context.Context, orderID string) (Transaction, error) {
	var t Transaction

	result := d.db.WithContext(ctx).First(&t, "order_id = ?", orderID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Transaction{}, ErrTransactionNotFound
		}

		return Transaction{}, result.Error
	}

	return t, nil
}

// ApplyNotification locks the transaction row of orderID, lets apply mutate
// it and writes the resulting status to the included teams, all in one
// database transaction. A paid order stays paid whatever apply does, and it
// settles every included team. Any other
// status only reaches teams still attached to this order, so a stale
// notification cannot override a newer checkout.
func (d *TransactionDAO) ApplyNotification(ctx context.Context, orderID string, apply func(t *Transaction) error) (Transaction, error) {
	var updated Transaction

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t Transaction
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&t, "order_id = ?", orderID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}

			return result.Error
		}

		wasPaid := t.Status == statusPaid
		if err := apply(&t); err != nil {
			return err
		}
		if wasPaid {
			t.Status = statusPaid
		}
		if err := tx.Save(&t).Error; err != nil {
			return err
		}

		ids := t.TeamIDs.Data()
		if len(ids) == 0 {
			updated = t
			return nil
		}

		var count int64
		if err := tx.Model(&Team{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return fmt.Errorf("%w: found %d of %d", ErrTeamsNotSettled, count, len(ids))
		}

		teams := tx.Model(&Team{}).Where("id IN ?", ids)
		updates := map[string]interface{}{
			"payment_status": t.Status,
			"updated_at":     time.Now(),
		}
		if t.Status == statusPaid {
			updates["order_id"] = t.OrderID
		} else {
			teams = teams.Where("order_id = ? AND payment_status <> ?", t.OrderID, statusPaid)
		}
		if err := teams.Updates(updates).Error; err != nil {
			return err
		}

		updated = t
		return nil
	})
	if err != nil {
		return Transaction{}, err
	}

	return updated, nil
}
