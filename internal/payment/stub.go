package payment

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
)

// StubProvider is a gateway for local development. Checkouts point at a fake
// payment page and every order reports as pending until a notification says
// otherwise.
type StubProvider struct {
	baseURL string
}

func NewStubProvider(baseURL string) *StubProvider {
	return &StubProvider{baseURL: strings.TrimRight(baseURL, "/")}
}

func (p *StubProvider) Name() string { return "stub" }

func (p *StubProvider) CreateCheckout(_ context.Context, order Order) (Checkout, error) {
	redirect := "/pay/stub?order_id=" + url.QueryEscape(order.OrderID)
	if p.baseURL != "" {
		redirect = p.baseURL + redirect
	}

	return Checkout{
		Token:       "stub-" + order.OrderID,
		RedirectURL: redirect,
	}, nil
}

func (p *StubProvider) Status(_ context.Context, orderID string) (Status, error) {
	s := Status{
		OrderID:           orderID,
		TransactionStatus: "pending",
		PaymentType:       "stub",
		GrossAmount:       "0",
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return Status{}, err
	}
	s.Raw = raw

	return s, nil
}

func (p *StubProvider) VerifyNotification(Notification) error {
	return nil
}
