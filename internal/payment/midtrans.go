package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

// Midtrans item names longer than this are rejected by the API.
const maxItemNameLength = 50

type MidtransProvider struct {
	serverKey       string
	verifySignature bool

	snap snap.Client
	core coreapi.Client
}

func NewMidtransProvider(serverKey string, production, verifySignature bool) *MidtransProvider {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	p := &MidtransProvider{
		serverKey:       serverKey,
		verifySignature: verifySignature,
	}
	p.snap.New(serverKey, env)
	p.core.New(serverKey, env)

	return p
}

func (p *MidtransProvider) Name() string { return "midtrans" }

func (p *MidtransProvider) CreateCheckout(_ context.Context, order Order) (Checkout, error) {
	items := make([]midtrans.ItemDetails, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, midtrans.ItemDetails{
			ID:    it.ID,
			Name:  truncate(it.Name, maxItemNameLength),
			Price: it.Price,
			Qty:   1,
		})
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderID,
			GrossAmt: order.GrossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: order.Customer.Name,
			Email: order.Customer.Email,
			Phone: order.Customer.Phone,
		},
		Items: &items,
	}
	if order.FinishURL != "" {
		req.Callbacks = &snap.Callbacks{Finish: order.FinishURL}
	}

	resp, mErr := p.snap.CreateTransaction(req)
	if mErr != nil {
		return Checkout{}, fmt.Errorf("p.snap.CreateTransaction -> %w", mErr)
	}

	return Checkout{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

func (p *MidtransProvider) Status(_ context.Context, orderID string) (Status, error) {
	resp, mErr := p.core.CheckTransaction(orderID)
	if mErr != nil {
		return Status{}, fmt.Errorf("p.core.CheckTransaction -> %w", mErr)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return Status{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	return Status{
		OrderID:           resp.OrderID,
		TransactionStatus: resp.TransactionStatus,
		FraudStatus:       resp.FraudStatus,
		PaymentType:       resp.PaymentType,
		GrossAmount:       resp.GrossAmount,
		TransactionTime:   resp.TransactionTime,
		Raw:               raw,
	}, nil
}

func (p *MidtransProvider) VerifyNotification(n Notification) error {
	if !p.verifySignature {
		return nil
	}

	return verifySignature(n, p.serverKey)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}
