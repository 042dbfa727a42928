package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/payment"
	"github.com/pmi-competition/portal-api/internal/repository"
)

var (
	ErrTransactionNotFound = repository.ErrTransactionNotFound
	ErrNoEligibleTeams     = errors.New("no eligible teams for payment")
	ErrNotOrderOwner       = errors.New("order belongs to another account")
	ErrInvalidSignature    = payment.ErrInvalidSignature
)

type PaymentTeamRepository interface {
	FindPayable(ctx context.Context, userID string, ids []string) ([]domain.Team, error)
	AttachOrder(ctx context.Context, orderID string, ids []string) error
}

type TransactionRepository interface {
	Create(ctx context.Context, t domain.Transaction) (domain.Transaction, error)
	FindByOrderID(ctx context.Context, orderID string) (domain.Transaction, error)
	Update(ctx context.Context, orderID string, mutate func(t *domain.Transaction)) (domain.Transaction, error)
}

type PaymentService struct {
	teams        PaymentTeamRepository
	transactions TransactionRepository
	users        UserRepository
	gateway      payment.Gateway
	catalog      *domain.Catalog
	finishURL    string
	now          func() time.Time
}

func NewPaymentService(
	teams PaymentTeamRepository,
	transactions TransactionRepository,
	users UserRepository,
	gateway payment.Gateway,
	catalog *domain.Catalog,
	finishURL string,
) *PaymentService {
	return &PaymentService{
		teams:        teams,
		transactions: transactions,
		users:        users,
		gateway:      gateway,
		catalog:      catalog,
		finishURL:    finishURL,
		now:          time.Now,
	}
}

// CreateTransaction opens one checkout for every team in teamIDs that userID
// owns and has not paid yet. Other IDs are silently left out. The amount is
// the sum of the fees stored on the included teams.
func (s *PaymentService) CreateTransaction(ctx context.Context, userID string, teamIDs []string) (domain.Checkout, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Checkout{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	teams, err := s.teams.FindPayable(ctx, userID, dedupe(teamIDs))
	if err != nil {
		return domain.Checkout{}, fmt.Errorf("s.teams.FindPayable -> %w", err)
	}
	if len(teams) == 0 {
		return domain.Checkout{}, ErrNoEligibleTeams
	}

	tx := domain.NewTransaction(newOrderID(s.now(), userID), user, teams)

	checkout, err := s.gateway.CreateCheckout(ctx, payment.Order{
		OrderID:     tx.OrderID,
		GrossAmount: tx.TotalAmount,
		Items:       s.orderItems(teams),
		Customer: payment.Customer{
			Name:  user.PICName,
			Email: user.Email,
			Phone: user.Phone,
		},
		FinishURL: s.finishURL,
	})
	if err != nil {
		return domain.Checkout{}, fmt.Errorf("s.gateway.CreateCheckout -> %w", err)
	}

	tx.SnapToken = checkout.Token
	if _, err = s.transactions.Create(ctx, tx); err != nil {
		return domain.Checkout{}, fmt.Errorf("s.transactions.Create -> %w", err)
	}

	if err = s.teams.AttachOrder(ctx, tx.OrderID, tx.TeamIDs); err != nil {
		return domain.Checkout{}, fmt.Errorf("s.teams.AttachOrder -> %w", err)
	}

	zap.L().Info("checkout created",
		zap.String("order_id", tx.OrderID),
		zap.String("user_id", userID),
		zap.Int("teams", len(tx.TeamIDs)),
		zap.Int64("amount", tx.TotalAmount))

	return domain.Checkout{
		SnapToken:   checkout.Token,
		OrderID:     tx.OrderID,
		RedirectURL: checkout.RedirectURL,
	}, nil
}

// CheckStatus relays the gateway's current view of an order. Only the owner
// of the order and admins may ask.
func (s *PaymentService) CheckStatus(ctx context.Context, user domain.User, orderID string) (domain.PaymentSnapshot, error) {
	tx, err := s.transactions.FindByOrderID(ctx, orderID)
	if err != nil {
		return domain.PaymentSnapshot{}, fmt.Errorf("s.transactions.FindByOrderID -> %w", err)
	}
	if !tx.OwnedBy(user.ID) && !user.IsAdmin() {
		return domain.PaymentSnapshot{}, ErrNotOrderOwner
	}

	status, err := s.gateway.Status(ctx, orderID)
	if err != nil {
		return domain.PaymentSnapshot{}, fmt.Errorf("s.gateway.Status -> %w", err)
	}

	return domain.PaymentSnapshot{
		OrderID:         orderID,
		Status:          status.TransactionStatus,
		PaymentType:     status.PaymentType,
		GrossAmount:     status.GrossAmount,
		TransactionTime: status.TransactionTime,
	}, nil
}

// HandleNotification applies a gateway notification to the transaction and
// every team it covers in one write. Replaying a notification leaves the same
// state behind, and a pending notification never reopens a settled order.
func (s *PaymentService) HandleNotification(ctx context.Context, n payment.Notification) (domain.Transaction, error) {
	if err := s.gateway.VerifyNotification(n); err != nil {
		return domain.Transaction{}, fmt.Errorf("s.gateway.VerifyNotification -> %w", err)
	}

	reported := n.Status()
	updated, err := s.transactions.Update(ctx, n.OrderID, func(t *domain.Transaction) {
		t.Status = t.Status.Advance(reported)
		if n.PaymentType != "" {
			t.PaymentMethod = n.PaymentType
		}
		if t.Status == domain.PaymentPaid && t.PaidAt == nil {
			t.PaidAt = n.PaidAt()
		}
		if len(n.Raw) > 0 {
			t.RawResponse = n.Raw
		}
	})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("s.transactions.Update -> %w", err)
	}

	zap.L().Info("payment notification applied",
		zap.String("order_id", updated.OrderID),
		zap.String("transaction_status", n.TransactionStatus),
		zap.String("fraud_status", n.FraudStatus),
		zap.String("status", string(updated.Status)),
		zap.Int("teams", len(updated.TeamIDs)))

	return updated, nil
}

func (s *PaymentService) orderItems(teams []domain.Team) []payment.Item {
	items := make([]payment.Item, 0, len(teams))
	for _, t := range teams {
		eventName := t.EventID
		if e, ok := s.catalog.Event(t.EventID); ok {
			eventName = e.Name
		}
		items = append(items, payment.Item{
			ID:    t.ID,
			Name:  eventName + " - " + t.Name,
			Price: t.Fee,
		})
	}

	return items
}

// newOrderID returns PMI-<unix nanoseconds>-<first 8 characters of userID>.
func newOrderID(now time.Time, userID string) string {
	prefix := userID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}

	return fmt.Sprintf("PMI-%d-%s", now.UnixNano(), prefix)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	return result
}
