package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmi-competition/portal-api/internal/domain"
)

func TestAuthService_SignupAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUsers(), []string{"Admin@PMI.or.id"})

	user, err := svc.Signup(context.Background(), domain.User{
		Email:      "  PIC@SMAN1.sch.id ",
		Password:   "secret123",
		SchoolName: " SMAN 1 Bandung ",
	})
	require.NoError(t, err)
	assert.Equal(t, "pic@sman1.sch.id", user.Email)
	assert.Equal(t, "SMAN 1 Bandung", user.SchoolName)
	assert.Equal(t, domain.RoleSchool, user.Role)
	assert.NotEqual(t, "secret123", user.Password)

	logged, err := svc.Login(context.Background(), "pic@sman1.sch.id", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = svc.Login(context.Background(), "pic@sman1.sch.id", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "nobody@sman1.sch.id", "secret123")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Signup(context.Background(), domain.User{Email: "pic@sman1.sch.id", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestAuthService_SignupAdmin(t *testing.T) {
	svc := NewAuthService(newFakeUsers(), []string{"Admin@PMI.or.id"})

	user, err := svc.Signup(context.Background(), domain.User{Email: "admin@pmi.or.id", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}
