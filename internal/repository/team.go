package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/repository/dao"
)

var (
	ErrTeamNotFound     = dao.ErrTeamNotFound
	ErrTeamsNotAttached = dao.ErrTeamsNotAttached
)

type TeamDAO interface {
	Insert(ctx context.Context, team dao.Team) (dao.Team, error)
	FindByID(ctx context.Context, id string) (dao.Team, error)
	FindPayable(ctx context.Context, userID string, ids []string) ([]dao.Team, error)
	Find(ctx context.Context, filter dao.TeamFilter) ([]dao.Team, error)
	AttachOrder(ctx context.Context, orderID string, ids []string) error
}

type TeamFilter = dao.TeamFilter

type TeamRepository struct {
	dao TeamDAO
}

func NewTeamRepository(dao TeamDAO) *TeamRepository {
	return &TeamRepository{
		dao: dao,
	}
}

func (r *TeamRepository) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	members := make([]dao.Member, 0, len(team.Members))
	for _, m := range team.Members {
		members = append(members, dao.Member{Name: m.Name, Class: m.Class, NISN: m.NISN})
	}

	created, err := r.dao.Insert(ctx, dao.Team{
		ID:            uuid.NewString(),
		UserID:        team.UserID,
		SchoolName:    team.SchoolName,
		EventID:       team.EventID,
		Name:          team.Name,
		Members:       datatypes.NewJSONType(members),
		Fee:           team.Fee,
		PaymentStatus: string(domain.PaymentPending),
	})
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (domain.Team, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TeamRepository) FindPayable(ctx context.Context, userID string, ids []string) ([]domain.Team, error) {
	found, err := r.dao.FindPayable(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPayable -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *TeamRepository) Find(ctx context.Context, filter TeamFilter) ([]domain.Team, error) {
	found, err := r.dao.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *TeamRepository) AttachOrder(ctx context.Context, orderID string, ids []string) error {
	if err := r.dao.AttachOrder(ctx, orderID, ids); err != nil {
		return fmt.Errorf("r.dao.AttachOrder -> %w", err)
	}

	return nil
}

func (r *TeamRepository) daosToDomain(teams []dao.Team) []domain.Team {
	result := make([]domain.Team, 0, len(teams))
	for _, t := range teams {
		result = append(result, r.daoToDomain(t))
	}

	return result
}

func (r *TeamRepository) daoToDomain(t dao.Team) domain.Team {
	members := make([]domain.Member, 0, len(t.Members.Data()))
	for _, m := range t.Members.Data() {
		members = append(members, domain.Member{Name: m.Name, Class: m.Class, NISN: m.NISN})
	}

	var orderID string
	if t.OrderID != nil {
		orderID = *t.OrderID
	}

	return domain.Team{
		ID:            t.ID,
		UserID:        t.UserID,
		SchoolName:    t.SchoolName,
		EventID:       t.EventID,
		Name:          t.Name,
		Members:       members,
		Fee:           t.Fee,
		PaymentStatus: domain.PaymentStatus(t.PaymentStatus),
		OrderID:       orderID,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
