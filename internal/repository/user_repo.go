package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/model"
	"gorm.io/gorm"
)

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role       string
	Department string
	Year       string
	Approved   *bool
	Active     *bool
	Search     string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByRollNo(ctx context.Context, rollNo string) (*model.User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]*model.User, int64, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context) (map[string]int64, error)
	CountPendingApproval(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("lower(email) = lower(?)", email).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByRollNo(ctx context.Context, rollNo string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("roll_no = ?", strings.ToUpper(rollNo)).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

var userSortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
	"roll_no":    "roll_no",
	"last_login": "last_login",
}

func (r *userRepository) FindAll(ctx context.Context, filter UserFilter) ([]*model.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.User{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Year != "" {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Approved != nil {
		query = query.Where("is_approved = ?", *filter.Approved)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(roll_no) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*model.User
	if err := query.
		Order(orderClause(userSortColumns, filter.SortBy, filter.SortOrder, "created_at DESC")).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	return countGrouped(r.db.WithContext(ctx).Model(&model.User{}), "role")
}

func (r *userRepository) CountPendingApproval(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("is_approved = ? AND role <> ?", false, model.RoleAdmin).
		Count(&count).Error
	return count, err
}
