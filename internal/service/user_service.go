package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/dto"
	"github.com/psgtech/campusfacility/internal/model"
	"github.com/psgtech/campusfacility/internal/repository"
	"github.com/psgtech/campusfacility/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService covers admin-side identity management: listing, creation and
// the approval/activation lifecycle.
type UserService interface {
	List(ctx context.Context, query dto.UserListQuery) ([]*model.User, int64, error)
	Create(ctx context.Context, input dto.CreateUserInput) (*model.User, error)
	Approve(ctx context.Context, adminID, userID uuid.UUID) (*model.User, error)
	Reject(ctx context.Context, adminID, userID uuid.UUID) error
	SetActive(ctx context.Context, userID uuid.UUID, active bool) (*model.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context, query dto.UserListQuery) ([]*model.User, int64, error) {
	query.Normalize()
	return s.repo.FindAll(ctx, repository.UserFilter{
		Role:       query.Role,
		Department: query.Department,
		Year:       query.Year,
		Approved:   query.Approved,
		Active:     query.Active,
		Search:     query.Search,
		Page:       query.Page,
		Limit:      query.Limit,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	})
}

func (s *userService) Create(ctx context.Context, input dto.CreateUserInput) (*model.User, error) {
	role := model.Role(input.Role)

	user := &model.User{
		RollNo:       strings.ToUpper(strings.TrimSpace(input.RollNo)),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         strings.TrimSpace(input.Name),
		Role:         role,
		Department:   input.Department,
		Year:         input.Year,
		ClassSection: input.ClassSection,
		IsActive:     true,
		// Admin-created accounts skip the approval queue.
		IsApproved: true,
	}

	if err := validateProfileFields(user); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if err := s.repo.Create(ctx, user); err != nil {
		if isDuplicateError(err) {
			return nil, apperror.Conflict("roll number or email already registered")
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) Approve(ctx context.Context, adminID, userID uuid.UUID) (*model.User, error) {
	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Role == model.RoleAdmin {
		return nil, apperror.Forbidden("admin accounts are not subject to approval")
	}
	if user.IsApproved {
		return nil, apperror.Conflict("user already approved")
	}

	now := time.Now()
	user.IsApproved = true
	user.ApprovedBy = &adminID
	user.ApprovedAt = &now

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Reject removes a pending registration outright; no rejected terminal state
// is retained, which keeps the roll number and email free for a fresh signup.
func (s *userService) Reject(ctx context.Context, adminID, userID uuid.UUID) error {
	user, err := s.find(ctx, userID)
	if err != nil {
		return err
	}

	if user.Role == model.RoleAdmin {
		return apperror.Forbidden("admin accounts are not subject to approval")
	}
	if user.IsApproved {
		return apperror.Conflict("user already approved")
	}

	return s.repo.Delete(ctx, user.ID)
}

func (s *userService) SetActive(ctx context.Context, userID uuid.UUID, active bool) (*model.User, error) {
	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.find(ctx, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID)
}

func (s *userService) find(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}
