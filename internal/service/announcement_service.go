package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/psgtech/campusfacility/internal/dto"
	"github.com/psgtech/campusfacility/internal/model"
	"github.com/psgtech/campusfacility/internal/repository"
	"github.com/psgtech/campusfacility/pkg/apperror"
	"github.com/psgtech/campusfacility/pkg/storage"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type AnnouncementService interface {
	Create(ctx context.Context, adminID uuid.UUID, input dto.CreateAnnouncementInput, files []UploadFile) (*model.Announcement, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateAnnouncementInput) (*model.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TogglePin(ctx context.Context, id uuid.UUID) (*model.Announcement, error)
	// List applies targeting for the viewer (nil = unauthenticated); admins
	// get the unfiltered management view.
	List(ctx context.Context, viewer *model.User, query dto.AnnouncementListQuery) ([]*model.Announcement, int64, error)
	// Get returns the announcement and counts the authenticated viewer at
	// most once.
	Get(ctx context.Context, viewer *model.User, id uuid.UUID) (*model.Announcement, error)
	Stats(ctx context.Context) (*dto.AnnouncementStats, error)
}

type announcementService struct {
	repo        repository.AnnouncementRepository
	fileStorage storage.FileStorage
	search      SearchService
	rdb         *redis.Client
	sanitizer   *bluemonday.Policy
	maxFileSize int64
	maxFiles    int
}

func NewAnnouncementService(repo repository.AnnouncementRepository, fileStorage storage.FileStorage, search SearchService, rdb *redis.Client, maxFileSize int64, maxFiles int) AnnouncementService {
	return &announcementService{
		repo:        repo,
		fileStorage: fileStorage,
		search:      search,
		rdb:         rdb,
		sanitizer:   bluemonday.UGCPolicy(),
		maxFileSize: maxFileSize,
		maxFiles:    maxFiles,
	}
}

func (s *announcementService) Create(ctx context.Context, adminID uuid.UUID, input dto.CreateAnnouncementInput, files []UploadFile) (*model.Announcement, error) {
	category := input.Category
	if category == "" {
		category = "general"
	}
	if !model.ValidAnnouncementCategory(category) {
		return nil, apperror.Validation("invalid announcement category")
	}
	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	audience := model.TargetAudience(input.TargetAudience)
	if err := validateTargeting(audience, input.TargetYear, input.TargetDepartment); err != nil {
		return nil, err
	}

	publishDate := time.Now()
	if input.PublishDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input.PublishDate, time.Local)
		if err != nil {
			return nil, apperror.Validation("publish date must be in YYYY-MM-DD format")
		}
		publishDate = parsed
	}

	var expiryDate *time.Time
	if input.ExpiryDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input.ExpiryDate, time.Local)
		if err != nil {
			return nil, apperror.Validation("expiry date must be in YYYY-MM-DD format")
		}
		if !parsed.After(publishDate) {
			return nil, apperror.Validation("expiry date must be after publish date")
		}
		expiryDate = &parsed
	}

	if len(files) > s.maxFiles {
		return nil, apperror.Validation("too many attachments")
	}
	for _, f := range files {
		if f.Size > s.maxFileSize {
			return nil, apperror.Validation("attachment exceeds the size limit")
		}
	}

	attachments, err := s.uploadAll(ctx, adminID, files)
	if err != nil {
		return nil, err
	}

	a := &model.Announcement{
		Title:            input.Title,
		Content:          s.sanitizer.Sanitize(input.Content),
		Category:         category,
		Priority:         priority,
		TargetAudience:   audience,
		TargetYear:       input.TargetYear,
		TargetDepartment: input.TargetDepartment,
		IsPinned:         input.IsPinned,
		IsActive:         true,
		PublishDate:      publishDate,
		ExpiryDate:       expiryDate,
		CreatedBy:        adminID,
		Attachments:      attachments,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.discardUploads(ctx, attachments)
		return nil, err
	}

	s.indexAsync(a)
	return a, nil
}

func (s *announcementService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateAnnouncementInput) (*model.Announcement, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		a.Title = input.Title
	}
	if input.Content != "" {
		a.Content = s.sanitizer.Sanitize(input.Content)
	}
	if input.Category != "" {
		if !model.ValidAnnouncementCategory(input.Category) {
			return nil, apperror.Validation("invalid announcement category")
		}
		a.Category = input.Category
	}
	if input.Priority != "" {
		a.Priority = input.Priority
	}
	if input.TargetAudience != "" {
		audience := model.TargetAudience(input.TargetAudience)
		if err := validateTargeting(audience, input.TargetYear, input.TargetDepartment); err != nil {
			return nil, err
		}
		a.TargetAudience = audience
		a.TargetYear = input.TargetYear
		a.TargetDepartment = input.TargetDepartment
	}
	if input.IsActive != nil {
		a.IsActive = *input.IsActive
	}
	if input.ExpiryDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input.ExpiryDate, time.Local)
		if err != nil {
			return nil, apperror.Validation("expiry date must be in YYYY-MM-DD format")
		}
		if !parsed.After(a.PublishDate) {
			return nil, apperror.Validation("expiry date must be after publish date")
		}
		a.ExpiryDate = &parsed
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.indexAsync(a)
	return a, nil
}

func (s *announcementService) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.discardUploads(ctx, a.Attachments)

	if s.search != nil {
		if err := s.search.DeleteAnnouncement(id.String()); err != nil {
			log.Printf("failed to remove announcement %s from search index: %v", id, err)
		}
	}
	return nil
}

func (s *announcementService) TogglePin(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	a.IsPinned = !a.IsPinned
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *announcementService) List(ctx context.Context, viewer *model.User, query dto.AnnouncementListQuery) ([]*model.Announcement, int64, error) {
	query.Normalize()
	filter := repository.AnnouncementFilter{
		Category:  query.Category,
		Page:      query.Page,
		Limit:     query.Limit,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}

	var (
		items []*model.Announcement
		total int64
		err   error
	)

	if viewer != nil && viewer.Role == model.RoleAdmin {
		items, total, err = s.repo.FindAllAdmin(ctx, filter)
	} else {
		items, total, err = s.repo.FindVisible(ctx, viewer, filter)
	}
	if err != nil {
		return nil, 0, err
	}

	if query.Search != "" && s.search != nil {
		items = s.filterBySearch(items, query.Search)
		total = int64(len(items))
	}

	return items, total, nil
}

// filterBySearch intersects a listing page with the search index result.
// Targeting has already been applied by the store query, so index hits can
// never leak rows the viewer may not see.
func (s *announcementService) filterBySearch(items []*model.Announcement, query string) []*model.Announcement {
	ids, err := s.search.SearchAnnouncements(query, 100)
	if err != nil {
		log.Printf("announcement search failed, returning unfiltered page: %v", err)
		return items
	}

	matched := make(map[string]bool, len(ids))
	for _, id := range ids {
		matched[id] = true
	}

	out := make([]*model.Announcement, 0, len(items))
	for _, a := range items {
		if matched[a.ID.String()] {
			out = append(out, a)
		}
	}
	return out
}

func (s *announcementService) Get(ctx context.Context, viewer *model.User, id uuid.UUID) (*model.Announcement, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewer == nil || viewer.Role != model.RoleAdmin {
		if !a.IsActive || a.Expired(time.Now()) || !a.VisibleTo(viewer) {
			return nil, apperror.NotFound("announcement not found")
		}
	}

	if viewer != nil {
		s.recordView(ctx, a, viewer.ID)
	}

	return a, nil
}

// recordView counts the viewer once. Redis answers repeat views without
// touching the store; the unique index remains the source of truth.
func (s *announcementService) recordView(ctx context.Context, a *model.Announcement, viewerID uuid.UUID) {
	if s.rdb != nil {
		key := fmt.Sprintf("announcement:viewed:%s:%s", a.ID, viewerID)
		if exists, err := s.rdb.Exists(ctx, key).Result(); err == nil && exists == 1 {
			return
		}
	}

	counted, err := s.repo.RecordView(ctx, a.ID, viewerID)
	if err != nil {
		log.Printf("failed to record announcement view: %v", err)
		return
	}
	if counted {
		a.ViewCount++
	}

	if s.rdb != nil {
		key := fmt.Sprintf("announcement:viewed:%s:%s", a.ID, viewerID)
		if err := s.rdb.Set(ctx, key, "viewed", 24*time.Hour).Err(); err != nil {
			log.Printf("failed to cache announcement view: %v", err)
		}
	}
}

func (s *announcementService) Stats(ctx context.Context) (*dto.AnnouncementStats, error) {
	byCategory, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.CountActive(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byCategory {
		total += n
	}

	return &dto.AnnouncementStats{
		Total:      total,
		Active:     active,
		ByCategory: byCategory,
	}, nil
}

func (s *announcementService) find(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("announcement not found")
		}
		return nil, err
	}
	return a, nil
}

func (s *announcementService) uploadAll(ctx context.Context, userID uuid.UUID, files []UploadFile) ([]model.Attachment, error) {
	var attachments []model.Attachment
	for _, f := range files {
		result, err := s.fileStorage.UploadFile(ctx, f.Reader, "announcements", f.OriginalName)
		if err != nil {
			s.discardUploads(ctx, attachments)
			return nil, err
		}
		attachments = append(attachments, model.Attachment{
			UserID:       userID,
			FileName:     result.FileName,
			OriginalName: f.OriginalName,
			MimeType:     f.MimeType,
			Size:         f.Size,
			FileURL:      result.URL,
			StoragePath:  result.StoragePath,
		})
	}
	return attachments, nil
}

func (s *announcementService) discardUploads(ctx context.Context, attachments []model.Attachment) {
	for _, a := range attachments {
		if err := s.fileStorage.DeleteFile(ctx, a.StoragePath); err != nil {
			log.Printf("failed to discard uploaded attachment %s: %v", a.FileName, err)
		}
	}
}

func (s *announcementService) indexAsync(a *model.Announcement) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexAnnouncement(a); err != nil {
		log.Printf("failed to index announcement %s: %v", a.ID, err)
	}
}

func validateTargeting(audience model.TargetAudience, year, department string) error {
	if !audience.Valid() {
		return apperror.Validation("invalid target audience")
	}
	switch audience {
	case model.AudienceYear:
		if !model.ValidYear(year) {
			return apperror.Validation("target year is required for year-specific announcements")
		}
	case model.AudienceDepartment:
		if !model.ValidDepartment(department) {
			return apperror.Validation("target department is required for department-specific announcements")
		}
	}
	return nil
}
