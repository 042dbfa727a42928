package domain

import "time"

type Member struct {
	Name  string `json:"name"`
	Class string `json:"class,omitempty"`
	NISN  string `json:"nisn,omitempty"`
}

// Team is a registration of a school in one event. Fee is copied from the
// event at registration and never recalculated.
type Team struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	SchoolName    string        `json:"schoolName"`
	EventID       string        `json:"competitionId"`
	Name          string        `json:"teamName"`
	Members       []Member      `json:"members"`
	Fee           int64         `json:"fee"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	OrderID       string        `json:"orderId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// InPayment reports a team that belongs to a checkout the gateway has not
// resolved yet. It stays payable: an abandoned checkout can be retried.
func (t Team) InPayment() bool {
	return t.PaymentStatus == PaymentPending && t.OrderID != ""
}

func (t Team) PayableBy(userID string) bool {
	return t.UserID == userID && t.PaymentStatus == PaymentPending
}
