package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/repository/dao"
)

var (
	ErrTransactionNotFound = dao.ErrTransactionNotFound
	ErrDuplicateOrder      = dao.ErrDuplicateOrder
	ErrTeamsNotSettled     = dao.ErrTeamsNotSettled
)

type TransactionDAO interface {
	Insert(ctx context.Context, t dao.Transaction) (dao.Transaction, error)
	FindByOrderID(ctx context.Context, orderID string) (dao.Transaction, error)
	ApplyNotification(ctx context.Context, orderID string, apply func(t *dao.Transaction) error) (dao.Transaction, error)
}

type TransactionRepository struct {
	dao TransactionDAO
}

func NewTransactionRepository(dao TransactionDAO) *TransactionRepository {
	return &TransactionRepository{
		dao: dao,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(t))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TransactionRepository) FindByOrderID(ctx context.Context, orderID string) (domain.Transaction, error) {
	found, err := r.dao.FindByOrderID(ctx, orderID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("r.dao.FindByOrderID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// Update locks the transaction of orderID, applies mutate to its domain form
// and writes the result together with the status of every included team.
func (r *TransactionRepository) Update(ctx context.Context, orderID string, mutate func(t *domain.Transaction)) (domain.Transaction, error) {
	updated, err := r.dao.ApplyNotification(ctx, orderID, func(row *dao.Transaction) error {
		t := r.daoToDomain(*row)
		mutate(&t)

		next := r.domainToDao(t)
		next.CreatedAt = row.CreatedAt
		*row = next

		return nil
	})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("r.dao.ApplyNotification -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *TransactionRepository) domainToDao(t domain.Transaction) dao.Transaction {
	var method *string
	if t.PaymentMethod != "" {
		m := t.PaymentMethod
		method = &m
	}

	teamIDs := t.TeamIDs
	if teamIDs == nil {
		teamIDs = []string{}
	}

	return dao.Transaction{
		OrderID:       t.OrderID,
		UserID:        t.UserID,
		SchoolName:    t.SchoolName,
		TotalAmount:   t.TotalAmount,
		TeamIDs:       datatypes.NewJSONType(teamIDs),
		Status:        string(t.Status),
		PaymentMethod: method,
		PaidAt:        t.PaidAt,
		SnapToken:     t.SnapToken,
		RawResponse:   datatypes.JSON(t.RawResponse),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (r *TransactionRepository) daoToDomain(t dao.Transaction) domain.Transaction {
	var method string
	if t.PaymentMethod != nil {
		method = *t.PaymentMethod
	}

	var raw json.RawMessage
	if len(t.RawResponse) > 0 {
		raw = json.RawMessage(t.RawResponse)
	}

	return domain.Transaction{
		OrderID:       t.OrderID,
		UserID:        t.UserID,
		SchoolName:    t.SchoolName,
		TotalAmount:   t.TotalAmount,
		TeamIDs:       t.TeamIDs.Data(),
		Status:        domain.PaymentStatus(t.Status),
		PaymentMethod: method,
		PaidAt:        t.PaidAt,
		SnapToken:     t.SnapToken,
		RawResponse:   raw,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
