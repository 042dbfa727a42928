package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/repository"
)

var (
	ErrTeamNotFound       = repository.ErrTeamNotFound
	ErrUnknownEvent       = errors.New("unknown competition")
	ErrInvalidMemberCount = errors.New("invalid number of team members")
	ErrSchoolOnly         = errors.New("only school accounts can register teams")
)

type TeamRepository interface {
	Create(ctx context.Context, team domain.Team) (domain.Team, error)
	FindByID(ctx context.Context, id string) (domain.Team, error)
	Find(ctx context.Context, filter repository.TeamFilter) ([]domain.Team, error)
}

type TeamService struct {
	repo    TeamRepository
	catalog *domain.Catalog
}

func NewTeamService(repo TeamRepository, catalog *domain.Catalog) *TeamService {
	return &TeamService{
		repo:    repo,
		catalog: catalog,
	}
}

func (s *TeamService) Competitions() []domain.Event {
	return s.catalog.Events()
}

// Register creates a pending team of user's school in eventID. The event's
// current fee is copied onto the team.
func (s *TeamService) Register(ctx context.Context, user domain.User, eventID, name string, members []domain.Member) (domain.Team, error) {
	if user.Role != domain.RoleSchool {
		return domain.Team{}, ErrSchoolOnly
	}

	event, ok := s.catalog.Event(eventID)
	if !ok {
		return domain.Team{}, fmt.Errorf("%w: %s", ErrUnknownEvent, eventID)
	}
	if !event.AllowsMembers(len(members)) {
		return domain.Team{}, fmt.Errorf("%w: %s needs between %d and %d members, got %d",
			ErrInvalidMemberCount, event.Name, event.MinMembers, event.MaxMembers, len(members))
	}

	created, err := s.repo.Create(ctx, domain.Team{
		UserID:        user.ID,
		SchoolName:    user.SchoolName,
		EventID:       event.ID,
		Name:          strings.TrimSpace(name),
		Members:       members,
		Fee:           event.Fee,
		PaymentStatus: domain.PaymentPending,
	})
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *TeamService) ListByUser(ctx context.Context, userID string) ([]domain.Team, error) {
	teams, err := s.repo.Find(ctx, repository.TeamFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return teams, nil
}

func (s *TeamService) List(ctx context.Context, eventID string, status domain.PaymentStatus) ([]domain.Team, error) {
	if eventID != "" {
		if _, ok := s.catalog.Event(eventID); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, eventID)
		}
	}

	teams, err := s.repo.Find(ctx, repository.TeamFilter{
		EventID:       eventID,
		PaymentStatus: string(status),
	})
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return teams, nil
}
