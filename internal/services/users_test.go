package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	user, err := f.users.Register(ctx, SignupForm{
		FirstName: "Василий",
		LastName:  "Пупкин",
		Username:  "pupkin",
		Email:     "pupkin@example.com",
		Password:  "correct-horse",
		Password2: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", user.Password)
	assert.Equal(t, "Василий Пупкин", user.DisplayName())

	got, err := f.users.Authenticate(ctx, "pupkin", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.users.Authenticate(ctx, "pupkin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.users.Authenticate(ctx, "nobody", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	f.user(t, "pupkin")

	_, err := f.users.Register(ctx, SignupForm{Username: "pupkin", Password: "correct-horse", Password2: "correct-horse"})
	errs, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, errs, "username")

	_, err = f.users.Register(ctx, SignupForm{Username: "new user", Email: "nope", Password: "short", Password2: "other"})
	errs, ok = IsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "password2")
}

func TestGetByUsernameUnknown(t *testing.T) {
	f := newFixture(t, 10)
	_, err := f.users.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
