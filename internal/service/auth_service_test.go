package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/psgtech/campusfacility/internal/dto"
	"github.com/psgtech/campusfacility/internal/model"
	"github.com/psgtech/campusfacility/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(repo *fakeUserRepo) AuthService {
	return NewAuthService(repo, nil, "test-secret", time.Hour, 0)
}

func validRegisterInput() dto.RegisterInput {
	return dto.RegisterInput{
		RollNo:       "cs2023099",
		Email:        "Student@psgtech.ac.in",
		Name:         "Priya Raman",
		Password:     "supersecret",
		Department:   "Computer Science",
		Year:         "3",
		ClassSection: "G1",
	}
}

func TestRegisterStudent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.Equal(t, "CS2023099", user.RollNo)
	assert.Equal(t, "student@psgtech.ac.in", user.Email)
	assert.Equal(t, model.RoleStudent, user.Role)
	assert.True(t, user.IsActive)
	assert.True(t, user.IsApproved, "students are approved at registration")
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
}

func TestRegisterClassRepresentativeAwaitsApproval(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	input := validRegisterInput()
	input.Role = "class_representative"

	user, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, user.IsApproved)
	assert.True(t, user.IsActive)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.RegisterInput)
	}{
		{"admin role forbidden", func(in *dto.RegisterInput) { in.Role = "admin" }},
		{"wrong email domain", func(in *dto.RegisterInput) { in.Email = "someone@gmail.com" }},
		{"unknown department", func(in *dto.RegisterInput) { in.Department = "Astrology" }},
		{"invalid year", func(in *dto.RegisterInput) { in.Year = "5" }},
		{"section not offered by department", func(in *dto.RegisterInput) { in.ClassSection = "Z9" }},
		{"missing class section", func(in *dto.RegisterInput) { in.ClassSection = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(newFakeUserRepo())
			input := validRegisterInput()
			tt.mutate(&input)

			_, err := svc.Register(context.Background(), input)
			require.Error(t, err)

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Contains(t, []int{400, 403}, appErr.Code)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	t.Run("same email", func(t *testing.T) {
		input := validRegisterInput()
		input.RollNo = "CS2023100"
		_, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("same roll number different case", func(t *testing.T) {
		input := validRegisterInput()
		input.Email = "other@psgtech.ac.in"
		input.RollNo = "CS2023099"
		_, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(ctx, dto.LoginInput{Email: "STUDENT@psgtech.ac.in", Password: "supersecret"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Greater(t, resp.ExpiresIn, time.Now().Unix())

		stored, err := repo.FindByID(ctx, registered.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLogin)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, dto.LoginInput{Email: "student@psgtech.ac.in", Password: "nope-nope"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
		assert.Equal(t, "invalid credentials", err.Error())
	})

	t.Run("unknown email matches wrong-password message", func(t *testing.T) {
		_, err := svc.Login(ctx, dto.LoginInput{Email: "ghost@psgtech.ac.in", Password: "whatever1"})
		require.Error(t, err)
		assert.Equal(t, "invalid credentials", err.Error())
	})

	t.Run("deactivated account", func(t *testing.T) {
		stored, err := repo.FindByID(ctx, registered.ID)
		require.NoError(t, err)
		stored.IsActive = false
		require.NoError(t, repo.Update(ctx, stored))

		_, err = svc.Login(ctx, dto.LoginInput{Email: "student@psgtech.ac.in", Password: "supersecret"})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)

		stored.IsActive = true
		require.NoError(t, repo.Update(ctx, stored))
	})

	t.Run("pending approval", func(t *testing.T) {
		input := validRegisterInput()
		input.RollNo = "CS2023101"
		input.Email = "rep@psgtech.ac.in"
		input.Role = "class_representative"
		_, err := svc.Register(ctx, input)
		require.NoError(t, err)

		_, err = svc.Login(ctx, dto.LoginInput{Email: "rep@psgtech.ac.in", Password: "supersecret"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
		assert.Equal(t, "account is pending approval", err.Error())
	})
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, dto.UpdateProfileInput{
		Name: "Priya R",
		Year: "4",
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya R", updated.Name)
	assert.Equal(t, "4", updated.Year)
	assert.Equal(t, "Computer Science", updated.Department, "untouched fields survive")

	_, err = svc.UpdateProfile(ctx, user.ID, dto.UpdateProfileInput{Department: "Nonexistent"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, dto.ChangePasswordInput{
		CurrentPassword: "wrong-current",
		NewPassword:     "freshsecret",
	})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	err = svc.ChangePassword(ctx, user.ID, dto.ChangePasswordInput{
		CurrentPassword: "supersecret",
		NewPassword:     "freshsecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginInput{Email: "student@psgtech.ac.in", Password: "freshsecret"})
	assert.NoError(t, err)
}
