// Package payment talks to the hosted payment gateway: it opens checkouts,
// queries order status and interprets the gateway's asynchronous
// notifications.
package payment

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrInvalidSignature = errors.New("invalid notification signature")

type Gateway interface {
	Name() string

	// CreateCheckout registers order with the gateway and returns the token
	// and URL of its hosted payment page.
	CreateCheckout(ctx context.Context, order Order) (Checkout, error)

	// Status queries the gateway for the current state of an order.
	Status(ctx context.Context, orderID string) (Status, error)

	// VerifyNotification authenticates a notification pushed by the gateway.
	VerifyNotification(n Notification) error
}

type Order struct {
	OrderID     string
	GrossAmount int64
	Items       []Item
	Customer    Customer
	FinishURL   string
}

type Item struct {
	ID    string
	Name  string
	Price int64
}

type Customer struct {
	Name  string
	Email string
	Phone string
}

type Checkout struct {
	Token       string
	RedirectURL string
}

type Status struct {
	OrderID           string
	TransactionStatus string
	FraudStatus       string
	PaymentType       string
	GrossAmount       string
	TransactionTime   string
	Raw               json.RawMessage
}
