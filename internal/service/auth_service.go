package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/dto"
	"github.com/psgtech/campusfacility/internal/model"
	"github.com/psgtech/campusfacility/internal/repository"
	"github.com/psgtech/campusfacility/pkg/apperror"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EmailDomain is the institutional domain registration is restricted to.
const EmailDomain = "psgtech.ac.in"

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*model.User, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (*model.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input dto.ChangePasswordInput) error
}

type authService struct {
	repo      repository.UserRepository
	rdb       *redis.Client
	secret    string
	tokenTTL  time.Duration
	rateLimit time.Duration
}

func NewAuthService(repo repository.UserRepository, rdb *redis.Client, secret string, tokenTTL, rateLimit time.Duration) AuthService {
	return &authService{
		repo:      repo,
		rdb:       rdb,
		secret:    secret,
		tokenTTL:  tokenTTL,
		rateLimit: rateLimit,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*model.User, error) {
	role := model.RoleStudent
	if input.Role != "" {
		role = model.Role(input.Role)
	}
	if role == model.RoleAdmin {
		return nil, apperror.Forbidden("admin accounts cannot self-register")
	}

	user := &model.User{
		RollNo:       strings.ToUpper(strings.TrimSpace(input.RollNo)),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         strings.TrimSpace(input.Name),
		Role:         role,
		Department:   input.Department,
		Year:         input.Year,
		ClassSection: input.ClassSection,
		IsActive:     true,
		IsApproved:   !role.RequiresApproval(),
	}

	if err := validateProfileFields(user); err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, user.Email, user.RollNo); err != nil {
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

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, "login:"+email, s.rateLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.New(429, "too many login attempts, slow down", apperror.ErrRateLimited)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
	}

	if !user.IsActive {
		return nil, apperror.New(401, "account is deactivated", apperror.ErrUnauthorized)
	}
	if !user.IsApproved {
		return nil, apperror.New(401, "account is pending approval", apperror.ErrUnauthorized)
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        user,
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (*model.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = strings.TrimSpace(input.Name)
	}
	if input.Department != "" {
		user.Department = input.Department
	}
	if input.Year != "" {
		user.Year = input.Year
	}
	if input.ClassSection != "" {
		user.ClassSection = input.ClassSection
	}

	if err := validateProfileFields(user); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, input dto.ChangePasswordInput) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return apperror.New(401, "current password is incorrect", apperror.ErrUnauthorized)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hashed)
	return s.repo.Update(ctx, user)
}

func (s *authService) generateToken(user *model.User) (string, int64, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

func (s *authService) ensureUnique(ctx context.Context, email, rollNo string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return apperror.Conflict("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.repo.FindByRollNo(ctx, rollNo); err == nil {
		return apperror.Conflict("roll number already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}

// validateProfileFields enforces the closed enums, the institutional email
// domain, and the role/class-section invariant: admins never have a section,
// everyone else must.
func validateProfileFields(user *model.User) error {
	if !user.Role.Valid() {
		return apperror.Validation("invalid role")
	}
	if !strings.HasSuffix(user.Email, "@"+EmailDomain) {
		return apperror.Validation("email must belong to " + EmailDomain)
	}

	if user.Role == model.RoleAdmin {
		if user.ClassSection != "" {
			return apperror.Validation("admin accounts do not have a class section")
		}
		return nil
	}

	if !model.ValidDepartment(user.Department) {
		return apperror.Validation("invalid department")
	}
	if !model.ValidYear(user.Year) {
		return apperror.Validation("invalid year")
	}
	if user.ClassSection == "" {
		return apperror.Validation("class section is required")
	}
	if !model.ValidClassSection(user.Department, user.ClassSection) {
		return apperror.Validation("invalid class section for department")
	}
	return nil
}

// isDuplicateError detects a unique-index violation surfaced by the driver.
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}
