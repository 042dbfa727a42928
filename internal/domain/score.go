package domain

import (
	"time"

	"github.com/pmi-competition/portal-api/internal/scoring"
)

type ScoreMethod string

const (
	ScoreManual         ScoreMethod = "MANUAL"
	ScoreExternalIngest ScoreMethod = "OCR_UPLOAD"
)

type ScoreStatus string

const (
	ScoreDraft           ScoreStatus = "DRAFT"
	ScorePendingApproval ScoreStatus = "PENDING_APPROVAL"
	ScoreFinal           ScoreStatus = "FINAL"
)

func (s ScoreStatus) IsValid() bool {
	return s == ScoreDraft || s == ScorePendingApproval || s == ScoreFinal
}

// TeamScore is one judged score sheet of a team. TotalScore is always derived
// from Values and the scheme the sheet was scored with.
type TeamScore struct {
	ID           string         `json:"id"`
	TeamID       string         `json:"teamId"`
	TeamName     string         `json:"teamName"`
	SchoolName   string         `json:"schoolName"`
	EventID      string         `json:"competitionId"`
	Values       scoring.Values `json:"scores"`
	TotalScore   float64        `json:"totalScore"`
	Rank         int            `json:"rank,omitempty"`
	ScoredBy     string         `json:"scoredBy"`
	ScoredByName string         `json:"scoredByName"`
	Method       ScoreMethod    `json:"scoringMethod"`
	Status       ScoreStatus    `json:"status"`
	Attachments  []string       `json:"attachments,omitempty"`
	Notes        string         `json:"notes,omitempty"`
	ScoredAt     time.Time      `json:"scoredAt"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// NewTeamScore scores team with values under scheme.
func NewTeamScore(team Team, values scoring.Values, scheme scoring.Scheme) TeamScore {
	return TeamScore{
		TeamID:     team.ID,
		TeamName:   team.Name,
		SchoolName: team.SchoolName,
		EventID:    team.EventID,
		Values:     values,
		TotalScore: scoring.ComputeAggregate(values, scheme),
	}
}

func (s TeamScore) AggregateScore() float64 {
	return s.TotalScore
}

func (s TeamScore) WithRank(rank int) TeamScore {
	s.Rank = rank
	return s
}
