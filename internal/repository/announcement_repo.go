package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnnouncementFilter narrows announcement listings.
type AnnouncementFilter struct {
	Category  string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type AnnouncementRepository interface {
	Create(ctx context.Context, a *model.Announcement) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error)
	// FindVisible returns announcements passing the targeting rules for the
	// viewer (nil = unauthenticated), excluding inactive and expired rows.
	// Pinned rows sort first.
	FindVisible(ctx context.Context, viewer *model.User, filter AnnouncementFilter) ([]*model.Announcement, int64, error)
	// FindAllAdmin is the unfiltered management view.
	FindAllAdmin(ctx context.Context, filter AnnouncementFilter) ([]*model.Announcement, int64, error)
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
	// RecordView counts the viewer at most once, relying on the unique
	// (announcement, user) index. Returns true when the view was new.
	RecordView(ctx context.Context, announcementID, userID uuid.UUID) (bool, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	CountActive(ctx context.Context, now time.Time) (int64, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, a *model.Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *announcementRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	var a model.Announcement
	if err := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("id = ?", id).
		First(&a).Error; err != nil {
		return nil, err
	}

	return &a, nil
}

var announcementSortColumns = map[string]string{
	"publish_date": "publish_date",
	"created_at":   "created_at",
	"view_count":   "view_count",
	"title":        "title",
}

func (r *announcementRepository) FindVisible(ctx context.Context, viewer *model.User, filter AnnouncementFilter) ([]*model.Announcement, int64, error) {
	now := time.Now()
	query := r.db.WithContext(ctx).Model(&model.Announcement{}).
		Where("is_active = ?", true).
		Where("publish_date <= ?", now).
		Where("expiry_date IS NULL OR expiry_date > ?", now)

	if viewer == nil {
		query = query.Where("target_audience = ?", model.AudienceAll)
	} else {
		query = query.Where(
			"target_audience IN ? OR (target_audience = ? AND target_year = ?) OR (target_audience = ? AND target_department = ?)",
			[]model.TargetAudience{model.AudienceAll, model.AudienceStudents},
			model.AudienceYear, viewer.Year,
			model.AudienceDepartment, viewer.Department,
		)
	}

	return r.page(query, filter)
}

func (r *announcementRepository) FindAllAdmin(ctx context.Context, filter AnnouncementFilter) ([]*model.Announcement, int64, error) {
	return r.page(r.db.WithContext(ctx).Model(&model.Announcement{}), filter)
}

func (r *announcementRepository) page(query *gorm.DB, filter AnnouncementFilter) ([]*model.Announcement, int64, error) {
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := orderClause(announcementSortColumns, filter.SortBy, filter.SortOrder, "publish_date DESC")

	var items []*model.Announcement
	if err := query.
		Preload("Attachments").
		Order("is_pinned DESC").
		Order(order).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *announcementRepository) Update(ctx context.Context, a *model.Announcement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *announcementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Announcement{}, "id = ?", id).Error
}

func (r *announcementRepository) RecordView(ctx context.Context, announcementID, userID uuid.UUID) (bool, error) {
	view := model.AnnouncementView{AnnouncementID: announcementID, UserID: userID}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&view)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	err := r.db.WithContext(ctx).Model(&model.Announcement{}).
		Where("id = ?", announcementID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	return true, err
}

func (r *announcementRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	return countGrouped(r.db.WithContext(ctx).Model(&model.Announcement{}), "category")
}

func (r *announcementRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Announcement{}).
		Where("is_active = ?", true).
		Where("expiry_date IS NULL OR expiry_date > ?", now).
		Count(&count).Error
	return count, err
}
