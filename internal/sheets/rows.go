package sheets

import (
	"math"
	"strings"

	"github.com/pmi-competition/portal-api/internal/domain"
)

var (
	overallHeader = []interface{}{"Rank", "School", "Total Points", "Average Score", "Competitions", "Teams", "Gold", "Silver", "Bronze"}
	teamsHeader   = []interface{}{"Team", "School", "Competition", "Members", "Fee", "Payment Status", "Order ID"}
)

// OverallRows renders the school rollup, one school per row under a header.
func OverallRows(rankings []domain.OverallRanking) [][]interface{} {
	rows := make([][]interface{}, 0, len(rankings)+1)
	rows = append(rows, overallHeader)
	for _, r := range rankings {
		rows = append(rows, []interface{}{
			r.Rank,
			r.SchoolName,
			round2(r.TotalPoints),
			round2(r.AvgScore),
			r.CompetitionsParticipated,
			r.TeamsCount,
			r.Medals.Gold,
			r.Medals.Silver,
			r.Medals.Bronze,
		})
	}

	return rows
}

// TeamRows renders registrations with event names resolved from catalog.
func TeamRows(teams []domain.Team, catalog *domain.Catalog) [][]interface{} {
	rows := make([][]interface{}, 0, len(teams)+1)
	rows = append(rows, teamsHeader)
	for _, t := range teams {
		eventName := t.EventID
		if e, ok := catalog.Event(t.EventID); ok {
			eventName = e.Name
		}

		members := make([]string, 0, len(t.Members))
		for _, m := range t.Members {
			members = append(members, m.Name)
		}

		rows = append(rows, []interface{}{
			t.Name,
			t.SchoolName,
			eventName,
			strings.Join(members, ", "),
			t.Fee,
			string(t.PaymentStatus),
			t.OrderID,
		})
	}

	return rows
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
