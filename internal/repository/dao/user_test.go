package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDAO_DuplicateEmail(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	users := NewUserDAO(db)

	_, err := users.Insert(ctx, User{ID: "u1", Email: "a@example.com", Password: "x", Role: "SCHOOL", SchoolName: "SMA 1"})
	require.NoError(t, err)

	_, err = users.Insert(ctx, User{ID: "u2", Email: "a@example.com", Password: "x", Role: "SCHOOL", SchoolName: "SMA 2"})
	assert.ErrorIs(t, err, ErrUserEmailExists)

	found, err := users.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.ID)

	_, err = users.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
