package domain

import (
	"encoding/json"
	"time"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
	PaymentExpired PaymentStatus = "EXPIRED"
)

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentPaid || s == PaymentFailed || s == PaymentExpired
}

// Advance returns the status a record currently in s ends up in when the
// gateway reports next. PAID is final. A pending report never moves a record
// out of a terminal status, and any other terminal report wins.
func (s PaymentStatus) Advance(next PaymentStatus) PaymentStatus {
	if s == PaymentPaid {
		return PaymentPaid
	}
	if !next.IsTerminal() && s.IsTerminal() {
		return s
	}
	if !next.IsTerminal() {
		return PaymentPending
	}

	return next
}

// Transaction is one checkout attempt covering one or more teams of a user.
type Transaction struct {
	OrderID       string          `json:"orderId"`
	UserID        string          `json:"userId"`
	SchoolName    string          `json:"schoolName"`
	TotalAmount   int64           `json:"totalAmount"`
	TeamIDs       []string        `json:"teamIds"`
	Status        PaymentStatus   `json:"status"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	SnapToken     string          `json:"snapToken,omitempty"`
	RawResponse   json.RawMessage `json:"midtransResponse,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// NewTransaction builds a pending transaction over teams. The amount is the
// sum of the fees stored on the teams.
func NewTransaction(orderID string, user User, teams []Team) Transaction {
	var total int64
	ids := make([]string, 0, len(teams))
	for _, t := range teams {
		total += t.Fee
		ids = append(ids, t.ID)
	}

	return Transaction{
		OrderID:     orderID,
		UserID:      user.ID,
		SchoolName:  user.SchoolName,
		TotalAmount: total,
		TeamIDs:     ids,
		Status:      PaymentPending,
	}
}

func (t Transaction) OwnedBy(userID string) bool {
	return t.UserID == userID
}

// Checkout is what a client needs to open the gateway's payment page.
type Checkout struct {
	SnapToken   string `json:"snapToken"`
	OrderID     string `json:"orderId"`
	RedirectURL string `json:"redirectUrl"`
}

// PaymentSnapshot is the gateway's current view of an order, relayed verbatim.
type PaymentSnapshot struct {
	OrderID         string `json:"orderId"`
	Status          string `json:"status"`
	PaymentType     string `json:"paymentType"`
	GrossAmount     string `json:"grossAmount"`
	TransactionTime string `json:"transactionTime"`
}
