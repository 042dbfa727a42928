package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/payment"
	"github.com/pmi-competition/portal-api/internal/repository"
	"github.com/pmi-competition/portal-api/internal/scoring"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func testCatalog() *domain.Catalog {
	scheme := scoring.Scheme{
		Criteria: []scoring.Criterion{
			{ID: "speed", Name: "Kecepatan", Weight: 1},
			{ID: "technique", Name: "Teknik", Weight: 1},
			{ID: "accuracy", Name: "Ketepatan", Weight: 1},
		},
		Range:  &scoring.Range{Min: 0, Max: 10},
		Method: scoring.MethodAverage,
	}

	return domain.NewCatalog([]domain.Event{
		{ID: "TANDU_DARURAT", Name: "Tandu Darurat", Fee: 150000, MinMembers: 4, MaxMembers: 6, Scheme: scheme},
		{ID: "PENYULUHAN", Name: "Penyuluhan", Fee: 200000, MinMembers: 1, MaxMembers: 3, Scheme: scheme},
	})
}

type fakeUsers struct {
	byID map[string]domain.User
}

func newFakeUsers(users ...domain.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]domain.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}

	return f
}

func (f *fakeUsers) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, u := range f.byID {
		if u.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}
	user.ID = fmt.Sprintf("user-%d", len(f.byID)+1)
	f.byID[user.ID] = user

	return user, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return u, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

type fakeTeams struct {
	byID  map[string]domain.Team
	order []string
}

func newFakeTeams(teams ...domain.Team) *fakeTeams {
	f := &fakeTeams{byID: map[string]domain.Team{}}
	for _, t := range teams {
		f.put(t)
	}

	return f
}

func (f *fakeTeams) put(t domain.Team) {
	if _, ok := f.byID[t.ID]; !ok {
		f.order = append(f.order, t.ID)
	}
	f.byID[t.ID] = t
}

func (f *fakeTeams) Create(_ context.Context, team domain.Team) (domain.Team, error) {
	team.ID = fmt.Sprintf("team-%d", len(f.order)+1)
	f.put(team)

	return team, nil
}

func (f *fakeTeams) FindByID(_ context.Context, id string) (domain.Team, error) {
	t, ok := f.byID[id]
	if !ok {
		return domain.Team{}, repository.ErrTeamNotFound
	}

	return t, nil
}

func (f *fakeTeams) FindPayable(_ context.Context, userID string, ids []string) ([]domain.Team, error) {
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}

	var result []domain.Team
	for _, id := range f.order {
		t := f.byID[id]
		if wanted[id] && t.PayableBy(userID) {
			result = append(result, t)
		}
	}

	return result, nil
}

func (f *fakeTeams) Find(_ context.Context, filter repository.TeamFilter) ([]domain.Team, error) {
	var result []domain.Team
	for _, id := range f.order {
		t := f.byID[id]
		if filter.UserID != "" && t.UserID != filter.UserID {
			continue
		}
		if filter.EventID != "" && t.EventID != filter.EventID {
			continue
		}
		if filter.PaymentStatus != "" && string(t.PaymentStatus) != filter.PaymentStatus {
			continue
		}
		result = append(result, t)
	}

	return result, nil
}

func (f *fakeTeams) AttachOrder(_ context.Context, orderID string, ids []string) error {
	for _, id := range ids {
		t, ok := f.byID[id]
		if !ok || t.PaymentStatus != domain.PaymentPending {
			return repository.ErrTeamsNotAttached
		}
		t.OrderID = orderID
		f.byID[id] = t
	}

	return nil
}

// fakeTransactions settles the covered teams the same way the database
// write group does.
type fakeTransactions struct {
	byID  map[string]domain.Transaction
	teams *fakeTeams
}

func newFakeTransactions(teams *fakeTeams) *fakeTransactions {
	return &fakeTransactions{byID: map[string]domain.Transaction{}, teams: teams}
}

func (f *fakeTransactions) Create(_ context.Context, t domain.Transaction) (domain.Transaction, error) {
	if _, ok := f.byID[t.OrderID]; ok {
		return domain.Transaction{}, repository.ErrDuplicateOrder
	}
	f.byID[t.OrderID] = t

	return t, nil
}

func (f *fakeTransactions) FindByOrderID(_ context.Context, orderID string) (domain.Transaction, error) {
	t, ok := f.byID[orderID]
	if !ok {
		return domain.Transaction{}, repository.ErrTransactionNotFound
	}

	return t, nil
}

func (f *fakeTransactions) Update(_ context.Context, orderID string, mutate func(t *domain.Transaction)) (domain.Transaction, error) {
	t, ok := f.byID[orderID]
	if !ok {
		return domain.Transaction{}, repository.ErrTransactionNotFound
	}
	mutate(&t)
	f.byID[orderID] = t

	for _, id := range t.TeamIDs {
		team := f.teams.byID[id]
		switch {
		case t.Status == domain.PaymentPaid:
			team.PaymentStatus = domain.PaymentPaid
			team.OrderID = orderID
		case team.OrderID == orderID && team.PaymentStatus != domain.PaymentPaid:
			team.PaymentStatus = t.Status
		}
		f.teams.byID[id] = team
	}

	return t, nil
}

type fakeScores struct {
	byID  map[string]domain.TeamScore
	order []string
}

func newFakeScores(scores ...domain.TeamScore) *fakeScores {
	f := &fakeScores{byID: map[string]domain.TeamScore{}}
	for _, s := range scores {
		f.byID[s.ID] = s
		f.order = append(f.order, s.ID)
	}

	return f
}

func (f *fakeScores) Create(_ context.Context, score domain.TeamScore) (domain.TeamScore, error) {
	score.ID = fmt.Sprintf("score-%d", len(f.order)+1)
	f.byID[score.ID] = score
	f.order = append(f.order, score.ID)

	return score, nil
}

func (f *fakeScores) FindByID(_ context.Context, id string) (domain.TeamScore, error) {
	s, ok := f.byID[id]
	if !ok {
		return domain.TeamScore{}, repository.ErrScoreNotFound
	}

	return s, nil
}

// Find orders by total score descending and insertion order, like the
// database query does.
func (f *fakeScores) Find(_ context.Context, filter repository.ScoreFilter) ([]domain.TeamScore, error) {
	var result []domain.TeamScore
	for _, id := range f.order {
		s := f.byID[id]
		if filter.EventID != "" && s.EventID != filter.EventID {
			continue
		}
		if filter.Status != "" && string(s.Status) != filter.Status {
			continue
		}
		result = append(result, s)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalScore > result[j].TotalScore
	})

	return result, nil
}

func (f *fakeScores) UpdateStatus(_ context.Context, id string, status domain.ScoreStatus) (domain.TeamScore, error) {
	s, ok := f.byID[id]
	if !ok {
		return domain.TeamScore{}, repository.ErrScoreNotFound
	}
	s.Status = status
	f.byID[id] = s

	return s, nil
}

type fakeRankings struct {
	stored   []domain.OverallRanking
	replaced int
}

func (f *fakeRankings) ReplaceOverall(_ context.Context, rankings []domain.OverallRanking) error {
	f.stored = append([]domain.OverallRanking(nil), rankings...)
	f.replaced++

	return nil
}

func (f *fakeRankings) FindOverall(_ context.Context) ([]domain.OverallRanking, error) {
	return f.stored, nil
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Name() string { return "mock" }

func (m *mockGateway) CreateCheckout(ctx context.Context, order payment.Order) (payment.Checkout, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(payment.Checkout), args.Error(1)
}

func (m *mockGateway) Status(ctx context.Context, orderID string) (payment.Status, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(payment.Status), args.Error(1)
}

func (m *mockGateway) VerifyNotification(n payment.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}
