package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pmi-competition/portal-api/internal/scoring"
)

func TestPaymentStatus_Advance(t *testing.T) {
	tests := []struct {
		current PaymentStatus
		next    PaymentStatus
		want    PaymentStatus
	}{
		{PaymentPending, PaymentPending, PaymentPending},
		{PaymentPending, PaymentPaid, PaymentPaid},
		{PaymentPending, PaymentExpired, PaymentExpired},
		{PaymentPaid, PaymentPending, PaymentPaid},
		{PaymentFailed, PaymentPending, PaymentFailed},
		{PaymentExpired, PaymentStatus("SOMETHING"), PaymentExpired},
		{PaymentPending, PaymentStatus("SOMETHING"), PaymentPending},
		{PaymentPaid, PaymentFailed, PaymentPaid},
		{PaymentPaid, PaymentExpired, PaymentPaid},
		{PaymentFailed, PaymentPaid, PaymentPaid},
		{PaymentExpired, PaymentFailed, PaymentFailed},
		{PaymentPaid, PaymentPaid, PaymentPaid},
	}

	for _, tt := range tests {
		t.Run(string(tt.current)+"->"+string(tt.next), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.current.Advance(tt.next))
		})
	}
}

func TestNewTransaction(t *testing.T) {
	user := User{ID: "user-1", SchoolName: "SMA 1"}
	teams := []Team{
		{ID: "t1", Fee: 150000},
		{ID: "t2", Fee: 125000},
	}

	tx := NewTransaction("PMI-1-user-1", user, teams)

	assert.Equal(t, int64(275000), tx.TotalAmount)
	assert.Equal(t, []string{"t1", "t2"}, tx.TeamIDs)
	assert.Equal(t, PaymentPending, tx.Status)
	assert.Equal(t, "SMA 1", tx.SchoolName)
	assert.True(t, tx.OwnedBy("user-1"))
	assert.False(t, tx.OwnedBy("user-2"))
}

func TestTeam_InPayment(t *testing.T) {
	assert.False(t, Team{PaymentStatus: PaymentPending}.InPayment())
	assert.True(t, Team{PaymentStatus: PaymentPending, OrderID: "PMI-1"}.InPayment())
	assert.False(t, Team{PaymentStatus: PaymentPaid, OrderID: "PMI-1"}.InPayment())
}

func TestTeam_PayableBy(t *testing.T) {
	team := Team{UserID: "u1", PaymentStatus: PaymentPending, OrderID: "PMI-old"}

	assert.True(t, team.PayableBy("u1"))
	assert.False(t, team.PayableBy("u2"))

	team.PaymentStatus = PaymentPaid
	assert.False(t, team.PayableBy("u1"))
}

func TestSchoolKey(t *testing.T) {
	assert.Equal(t, "sma negeri 1", SchoolKey("  SMA   Negeri 1 "))
	assert.Equal(t, SchoolKey("sma negeri 1"), SchoolKey("SMA NEGERI 1"))
	assert.Equal(t, "sma_negeri_1", SchoolRankingID("SMA\tNegeri  1"))
}

func TestSchoolRankingID_DistinctKeys(t *testing.T) {
	names := []string{"SMA 1", "SMA_1", "SMA%5F1", "SMA__1", "SMA _1", "SMA_ 1"}

	seen := map[string]string{}
	for _, name := range names {
		id := SchoolRankingID(name)
		if other, ok := seen[id]; ok {
			t.Fatalf("%q and %q share id %q", other, name, id)
		}
		seen[id] = name
	}

	assert.Equal(t, "sma_1", SchoolRankingID("SMA 1"))
	assert.Equal(t, "sma%5F1", SchoolRankingID("SMA_1"))
}

func TestCatalog(t *testing.T) {
	catalog := NewCatalog([]Event{
		{ID: "TANDU_DARURAT", Fee: 150000, MinMembers: 2, MaxMembers: 4},
		{ID: "A_SI_CAN", Fee: 150000, MinMembers: 3, MaxMembers: 5},
	})

	e, ok := catalog.Event("TANDU_DARURAT")
	assert.True(t, ok)
	assert.True(t, e.AllowsMembers(2))
	assert.True(t, e.AllowsMembers(4))
	assert.False(t, e.AllowsMembers(5))
	assert.False(t, e.AllowsMembers(1))

	_, ok = catalog.Event("UNKNOWN")
	assert.False(t, ok)

	assert.Equal(t, []string{"A_SI_CAN", "TANDU_DARURAT"}, catalog.EventIDs())
	assert.Len(t, catalog.Events(), 2)
}

func TestNewTeamScore(t *testing.T) {
	team := Team{ID: "t1", Name: "Alpha", SchoolName: "SMA 1", EventID: "PENYULUHAN"}
	values := scoring.Values{"a": 10, "b": 6}

	score := NewTeamScore(team, values, scoring.ExternalScheme(values))

	assert.Equal(t, "t1", score.TeamID)
	assert.Equal(t, "Alpha", score.TeamName)
	assert.Equal(t, "PENYULUHAN", score.EventID)
	assert.InDelta(t, 8, score.TotalScore, 1e-9)
	assert.Equal(t, 3, score.WithRank(3).Rank)
	assert.Equal(t, 0, score.Rank)
}
