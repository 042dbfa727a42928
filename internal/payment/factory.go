package payment

import (
	"fmt"

	"github.com/pmi-competition/portal-api/internal/config"
)

func NewGateway(conf *config.PaymentConfig, publicURL string) (Gateway, error) {
	switch conf.Provider {
	case "midtrans":
		return NewMidtransProvider(conf.Midtrans.ServerKey, conf.Midtrans.Production, conf.Midtrans.VerifySignature), nil
	case "stub":
		return NewStubProvider(publicURL), nil
	default:
		return nil, fmt.Errorf("unknown payment provider: %s", conf.Provider)
	}
}
