package domain

import (
	"strings"
	"time"
)

type CompetitionRanking struct {
	EventID           string      `json:"competitionId"`
	Rankings          []TeamScore `json:"rankings"`
	TotalParticipants int         `json:"totalParticipants"`
	AverageScore      float64     `json:"averageScore"`
	TopScore          float64     `json:"topScore"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

type EventBreakdown struct {
	Teams      int     `json:"teams"`
	TotalScore float64 `json:"totalScore"`
	AvgScore   float64 `json:"avgScore"`
	BestScore  float64 `json:"bestScore"`
	BestTeam   string  `json:"bestTeam"`
}

type Medals struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

// OverallRanking is the per-school rollup across every event.
type OverallRanking struct {
	ID                       string                    `json:"id"`
	SchoolName               string                    `json:"schoolName"`
	TotalPoints              float64                   `json:"totalPoints"`
	AvgScore                 float64                   `json:"avgScore"`
	CompetitionsParticipated int                       `json:"competitionsParticipated"`
	TeamsCount               int                       `json:"teamsCount"`
	Breakdown                map[string]EventBreakdown `json:"competitionBreakdown"`
	Medals                   Medals                    `json:"medals"`
	Rank                     int                       `json:"rank"`
	UpdatedAt                time.Time                 `json:"updatedAt"`
}

func (o OverallRanking) AggregateScore() float64 {
	return o.TotalPoints
}

func (o OverallRanking) WithRank(rank int) OverallRanking {
	o.Rank = rank
	return o
}

// SchoolKey normalizes a school name for grouping: surrounding space is
// trimmed, inner runs of whitespace collapse and case is folded.
func SchoolKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

var rankingIDEscaper = strings.NewReplacer("%", "%25", "_", "%5F", " ", "_")

// SchoolRankingID is the stable identifier of a school's rollup. Spaces of
// the school key become underscores and literal underscores are escaped, so
// two different keys never share an id.
func SchoolRankingID(name string) string {
	return rankingIDEscaper.Replace(SchoolKey(name))
}
