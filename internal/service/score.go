package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/repository"
	"github.com/pmi-competition/portal-api/internal/scoring"
)

var (
	ErrScoreNotFound   = repository.ErrScoreNotFound
	ErrEmptyScores     = errors.New("scores are required")
	ErrScoreNotPending = errors.New("score is not pending approval")
)

const (
	defaultIngestScoredBy     = "ocr_system"
	defaultIngestScoredByName = "OCR System"
	defaultIngestNotes        = "Uploaded via OCR"
)

// ScoreValidationError lists every criterion that failed validation.
type ScoreValidationError struct {
	Errors []string
}

func (e *ScoreValidationError) Error() string {
	return "invalid scores: " + strings.Join(e.Errors, "; ")
}

type ScoreRepository interface {
	Create(ctx context.Context, score domain.TeamScore) (domain.TeamScore, error)
	FindByID(ctx context.Context, id string) (domain.TeamScore, error)
	Find(ctx context.Context, filter repository.ScoreFilter) ([]domain.TeamScore, error)
	UpdateStatus(ctx context.Context, id string, status domain.ScoreStatus) (domain.TeamScore, error)
}

type ScoreTeamRepository interface {
	FindByID(ctx context.Context, id string) (domain.Team, error)
}

type ScoreService struct {
	scores  ScoreRepository
	teams   ScoreTeamRepository
	catalog *domain.Catalog
	now     func() time.Time
}

func NewScoreService(scores ScoreRepository, teams ScoreTeamRepository, catalog *domain.Catalog) *ScoreService {
	return &ScoreService{
		scores:  scores,
		teams:   teams,
		catalog: catalog,
		now:     time.Now,
	}
}

// RecordManual stores a judge's score sheet entered by an admin. The values
// are validated against the team's event scheme and the sheet is final at
// once.
func (s *ScoreService) RecordManual(ctx context.Context, admin domain.User, teamID string, values scoring.Values, notes string) (domain.TeamScore, error) {
	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return domain.TeamScore{}, fmt.Errorf("s.teams.FindByID -> %w", err)
	}

	event, ok := s.catalog.Event(team.EventID)
	if !ok {
		return domain.TeamScore{}, fmt.Errorf("%w: %s", ErrUnknownEvent, team.EventID)
	}

	if result := scoring.Validate(values, event.Scheme); !result.OK {
		return domain.TeamScore{}, &ScoreValidationError{Errors: result.Errors}
	}

	scoredByName := admin.PICName
	if scoredByName == "" {
		scoredByName = admin.Email
	}

	score := domain.NewTeamScore(team, values, event.Scheme)
	score.ScoredBy = admin.ID
	score.ScoredByName = scoredByName
	score.Method = domain.ScoreManual
	score.Status = domain.ScoreFinal
	score.Notes = notes
	score.ScoredAt = s.now()

	created, err := s.scores.Create(ctx, score)
	if err != nil {
		return domain.TeamScore{}, fmt.Errorf("s.scores.Create -> %w", err)
	}

	return created, nil
}

type IngestScore struct {
	TeamID        string
	Scores        scoring.Values
	ScoredBy      string
	ScoredByName  string
	AttachmentURL string
	Notes         string
}

// Ingest stores a score sheet pushed by an external source. The payload keys
// are averaged as they come and the sheet waits for an admin's approval.
func (s *ScoreService) Ingest(ctx context.Context, in IngestScore) (domain.TeamScore, error) {
	if len(in.Scores) == 0 {
		return domain.TeamScore{}, ErrEmptyScores
	}

	team, err := s.teams.FindByID(ctx, in.TeamID)
	if err != nil {
		return domain.TeamScore{}, fmt.Errorf("s.teams.FindByID -> %w", err)
	}

	score := domain.NewTeamScore(team, in.Scores, scoring.ExternalScheme(in.Scores))
	score.ScoredBy = withDefault(in.ScoredBy, defaultIngestScoredBy)
	score.ScoredByName = withDefault(in.ScoredByName, defaultIngestScoredByName)
	score.Method = domain.ScoreExternalIngest
	score.Status = domain.ScorePendingApproval
	score.Notes = withDefault(in.Notes, defaultIngestNotes)
	score.ScoredAt = s.now()
	if in.AttachmentURL != "" {
		score.Attachments = []string{in.AttachmentURL}
	}

	created, err := s.scores.Create(ctx, score)
	if err != nil {
		return domain.TeamScore{}, fmt.Errorf("s.scores.Create -> %w", err)
	}

	zap.L().Info("score ingested",
		zap.String("score_id", created.ID),
		zap.String("team_id", created.TeamID),
		zap.Float64("total_score", created.TotalScore))

	return created, nil
}

// Approve makes a pending score final. Approving a final score is a no-op.
func (s *ScoreService) Approve(ctx context.Context, id string) (domain.TeamScore, error) {
	score, err := s.scores.FindByID(ctx, id)
	if err != nil {
		return domain.TeamScore{}, fmt.Errorf("s.scores.FindByID -> %w", err)
	}

	switch score.Status {
	case domain.ScoreFinal:
		return score, nil
	case domain.ScorePendingApproval:
	default:
		return domain.TeamScore{}, ErrScoreNotPending
	}

	approved, err := s.scores.UpdateStatus(ctx, id, domain.ScoreFinal)
	if err != nil {
		return domain.TeamScore{}, fmt.Errorf("s.scores.UpdateStatus -> %w", err)
	}

	return approved, nil
}

func (s *ScoreService) List(ctx context.Context, eventID string, status domain.ScoreStatus) ([]domain.TeamScore, error) {
	scores, err := s.scores.Find(ctx, repository.ScoreFilter{
		EventID: eventID,
		Status:  string(status),
	})
	if err != nil {
		return nil, fmt.Errorf("s.scores.Find -> %w", err)
	}

	return scores, nil
}

func withDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}

	return s
}
