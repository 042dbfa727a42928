package payment

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pmi-competition/portal-api/internal/domain"
)

var ErrMissingOrderID = errors.New("notification has no order_id")

// gatewayZone is the zone the gateway reports local times in (WIB).
var gatewayZone = time.FixedZone("WIB", 7*60*60)

const gatewayTimeLayout = "2006-01-02 15:04:05"

// Notification is the payload the gateway posts when an order changes state.
type Notification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionTime   string `json:"transaction_time"`
	SettlementTime    string `json:"settlement_time"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`

	Raw json.RawMessage `json:"-"`
}

// ParseNotification decodes a JSON body and falls back to a form encoded one,
// which some gateway channels still send.
func ParseNotification(body []byte) (Notification, error) {
	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		form, formErr := url.ParseQuery(string(body))
		if formErr != nil || form.Get("order_id") == "" {
			return Notification{}, fmt.Errorf("json.Unmarshal -> %w", err)
		}
		n = Notification{
			OrderID:           form.Get("order_id"),
			TransactionStatus: form.Get("transaction_status"),
			FraudStatus:       form.Get("fraud_status"),
			PaymentType:       form.Get("payment_type"),
			TransactionTime:   form.Get("transaction_time"),
			SettlementTime:    form.Get("settlement_time"),
			StatusCode:        form.Get("status_code"),
			GrossAmount:       form.Get("gross_amount"),
			SignatureKey:      form.Get("signature_key"),
		}
		raw, err := json.Marshal(n)
		if err != nil {
			return Notification{}, fmt.Errorf("json.Marshal -> %w", err)
		}
		n.Raw = raw
	} else {
		n.Raw = append(json.RawMessage(nil), body...)
	}

	n.OrderID = strings.TrimSpace(n.OrderID)
	if n.OrderID == "" {
		return Notification{}, ErrMissingOrderID
	}

	return n, nil
}

// Status maps the notification onto the internal payment status.
func (n Notification) Status() domain.PaymentStatus {
	return MapStatus(n.TransactionStatus, n.FraudStatus)
}

// PaidAt returns the settlement time, or the transaction time when the
// gateway reports none. It is nil when neither parses.
func (n Notification) PaidAt() *time.Time {
	for _, s := range []string{n.SettlementTime, n.TransactionTime} {
		if t, err := time.ParseInLocation(gatewayTimeLayout, s, gatewayZone); err == nil {
			return &t
		}
	}

	return nil
}

// MapStatus translates the gateway's transaction and fraud status pair.
// Anything unrecognized is treated as still pending.
func MapStatus(transactionStatus, fraudStatus string) domain.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(transactionStatus)) {
	case "capture":
		if strings.ToLower(strings.TrimSpace(fraudStatus)) == "accept" {
			return domain.PaymentPaid
		}
		return domain.PaymentFailed
	case "settlement":
		return domain.PaymentPaid
	case "cancel", "deny":
		return domain.PaymentFailed
	case "expire":
		return domain.PaymentExpired
	default:
		return domain.PaymentPending
	}
}

// Signature computes the gateway's notification signature:
// hex(SHA512(order_id + status_code + gross_amount + server_key)).
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func verifySignature(n Notification, serverKey string) error {
	want := Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
	if subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(n.SignatureKey))) != 1 {
		return ErrInvalidSignature
	}

	return nil
}
