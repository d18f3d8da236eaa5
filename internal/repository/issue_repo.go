package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/model"
	"gorm.io/gorm"
)

// IssueFilter narrows issue listings.
type IssueFilter struct {
	Status    string
	Category  string
	Priority  string
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type IssueRepository interface {
	Create(ctx context.Context, issue *model.Issue) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Issue, error)
	FindByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.Issue, int64, error)
	FindAll(ctx context.Context, filter IssueFilter) ([]*model.Issue, int64, error)
	Update(ctx context.Context, issue *model.Issue) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	CountByPriority(ctx context.Context) (map[string]int64, error)
	CountByStatusForUser(ctx context.Context, userID uuid.UUID) (map[string]int64, error)
	CountPerDay(ctx context.Context, since time.Time) ([]DayCount, error)
}

type issueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

func (r *issueRepository) Create(ctx context.Context, issue *model.Issue) error {
	// Attachment rows ride along through the association.
	return r.db.WithContext(ctx).Create(issue).Error
}

func (r *issueRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Issue, error) {
	var issue model.Issue
	if err := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("id = ?", id).
		First(&issue).Error; err != nil {
		return nil, err
	}

	return &issue, nil
}

func (r *issueRepository) FindByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.Issue, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Issue{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var issues []*model.Issue
	if err := query.
		Preload("Attachments").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&issues).Error; err != nil {
		return nil, 0, err
	}

	return issues, total, nil
}

var issueSortColumns = map[string]string{
	"created_at": "created_at",
	"priority":   "priority",
	"status":     "status",
	"category":   "category",
}

func (r *issueRepository) FindAll(ctx context.Context, filter IssueFilter) ([]*model.Issue, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Issue{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("lower(title) LIKE ? OR lower(user_roll_no) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var issues []*model.Issue
	if err := query.
		Preload("Attachments").
		Order(orderClause(issueSortColumns, filter.SortBy, filter.SortOrder, "created_at DESC")).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&issues).Error; err != nil {
		return nil, 0, err
	}

	return issues, total, nil
}

func (r *issueRepository) Update(ctx context.Context, issue *model.Issue) error {
	return r.db.WithContext(ctx).Save(issue).Error
}

func (r *issueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Issue{}, "id = ?", id).Error
}

func (r *issueRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countGrouped(r.db.WithContext(ctx).Model(&model.Issue{}), "status")
}

func (r *issueRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	return countGrouped(r.db.WithContext(ctx).Model(&model.Issue{}), "category")
}

func (r *issueRepository) CountByPriority(ctx context.Context) (map[string]int64, error) {
	return countGrouped(r.db.WithContext(ctx).Model(&model.Issue{}), "priority")
}

func (r *issueRepository) CountByStatusForUser(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	return countGrouped(
		r.db.WithContext(ctx).Model(&model.Issue{}).Where("user_id = ?", userID),
		"status",
	)
}

func (r *issueRepository) CountPerDay(ctx context.Context, since time.Time) ([]DayCount, error) {
	return countPerDay(r.db.WithContext(ctx).Model(&model.Issue{}), since)
}
