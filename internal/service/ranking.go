package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/repository"
	"github.com/pmi-competition/portal-api/internal/scoring"
)

type RankingScoreRepository interface {
	Find(ctx context.Context, filter repository.ScoreFilter) ([]domain.TeamScore, error)
}

type RankingRepository interface {
	ReplaceOverall(ctx context.Context, rankings []domain.OverallRanking) error
	FindOverall(ctx context.Context) ([]domain.OverallRanking, error)
}

type RankingService struct {
	scores   RankingScoreRepository
	rankings RankingRepository
	now      func() time.Time
}

func NewRankingService(scores RankingScoreRepository, rankings RankingRepository) *RankingService {
	return &RankingService{
		scores:   scores,
		rankings: rankings,
		now:      time.Now,
	}
}

// CompetitionRanking ranks the final scores of one event.
func (s *RankingService) CompetitionRanking(ctx context.Context, eventID string) (domain.CompetitionRanking, error) {
	scores, err := s.scores.Find(ctx, repository.ScoreFilter{
		EventID: eventID,
		Status:  string(domain.ScoreFinal),
	})
	if err != nil {
		return domain.CompetitionRanking{}, fmt.Errorf("s.scores.Find -> %w", err)
	}

	ranked := scoring.AssignRanks(scores)

	result := domain.CompetitionRanking{
		EventID:           eventID,
		Rankings:          ranked,
		TotalParticipants: len(ranked),
		UpdatedAt:         s.now(),
	}
	if len(ranked) > 0 {
		var total float64
		for _, sc := range ranked {
			total += sc.TotalScore
		}
		result.AverageScore = total / float64(len(ranked))
		result.TopScore = ranked[0].TotalScore
	}

	return result, nil
}

// OverallRanking computes the per-school rollup from every final score
// without persisting it.
func (s *RankingService) OverallRanking(ctx context.Context) ([]domain.OverallRanking, error) {
	scores, err := s.scores.Find(ctx, repository.ScoreFilter{Status: string(domain.ScoreFinal)})
	if err != nil {
		return nil, fmt.Errorf("s.scores.Find -> %w", err)
	}

	return buildOverallRankings(scores, s.now()), nil
}

// RecalculateOverall computes the rollup and replaces the stored one with it.
// Schools that no longer have a final score disappear from the stored set.
func (s *RankingService) RecalculateOverall(ctx context.Context) ([]domain.OverallRanking, error) {
	rankings, err := s.OverallRanking(ctx)
	if err != nil {
		return nil, err
	}

	if err = s.rankings.ReplaceOverall(ctx, rankings); err != nil {
		return nil, fmt.Errorf("s.rankings.ReplaceOverall -> %w", err)
	}

	zap.L().Info("overall rankings recalculated", zap.Int("schools", len(rankings)))

	return rankings, nil
}

func (s *RankingService) ListOverall(ctx context.Context) ([]domain.OverallRanking, error) {
	rankings, err := s.rankings.FindOverall(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.rankings.FindOverall -> %w", err)
	}

	return rankings, nil
}

type schoolGroup struct {
	key    string
	name   string
	scores []domain.TeamScore
}

// buildOverallRankings groups scores by normalized school name. scores must
// arrive in a stable order; the result depends on nothing else but now.
func buildOverallRankings(scores []domain.TeamScore, now time.Time) []domain.OverallRanking {
	medals := medalTally(scores)

	groups := map[string]*schoolGroup{}
	for _, sc := range scores {
		key := domain.SchoolKey(sc.SchoolName)
		g, ok := groups[key]
		if !ok {
			g = &schoolGroup{key: key, name: sc.SchoolName}
			groups[key] = g
		}
		g.scores = append(g.scores, sc)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rollups := make([]domain.OverallRanking, 0, len(keys))
	for _, k := range keys {
		g := groups[k]

		var total float64
		breakdown := map[string]domain.EventBreakdown{}
		for _, sc := range g.scores {
			total += sc.TotalScore

			b, seen := breakdown[sc.EventID]
			b.Teams++
			b.TotalScore += sc.TotalScore
			if !seen || sc.TotalScore > b.BestScore {
				b.BestScore = sc.TotalScore
				b.BestTeam = sc.TeamName
			}
			breakdown[sc.EventID] = b
		}
		for eventID, b := range breakdown {
			b.AvgScore = b.TotalScore / float64(b.Teams)
			breakdown[eventID] = b
		}

		rollups = append(rollups, domain.OverallRanking{
			ID:                       domain.SchoolRankingID(g.name),
			SchoolName:               g.name,
			TotalPoints:              total,
			AvgScore:                 total / float64(len(g.scores)),
			CompetitionsParticipated: len(breakdown),
			TeamsCount:               len(g.scores),
			Breakdown:                breakdown,
			Medals:                   medals[g.key],
			UpdatedAt:                now,
		})
	}

	return scoring.AssignRanks(rollups)
}

// medalTally ranks every event separately and credits podium places to the
// school of the scored team.
func medalTally(scores []domain.TeamScore) map[string]domain.Medals {
	byEvent := map[string][]domain.TeamScore{}
	for _, sc := range scores {
		byEvent[sc.EventID] = append(byEvent[sc.EventID], sc)
	}

	tally := map[string]domain.Medals{}
	for _, eventScores := range byEvent {
		for _, sc := range scoring.AssignRanks(eventScores) {
			key := domain.SchoolKey(sc.SchoolName)
			m := tally[key]
			switch scoring.MedalFor(sc.Rank) {
			case scoring.MedalGold:
				m.Gold++
			case scoring.MedalSilver:
				m.Silver++
			case scoring.MedalBronze:
				m.Bronze++
			default:
				continue
			}
			tally[key] = m
		}
	}

	return tally
}
