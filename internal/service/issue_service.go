package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/dto"
	"github.com/psgtech/campusfacility/internal/model"
	"github.com/psgtech/campusfacility/internal/repository"
	"github.com/psgtech/campusfacility/pkg/apperror"
	"github.com/psgtech/campusfacility/pkg/storage"
	"gorm.io/gorm"
)

// UploadFile is one incoming attachment. Size is checked against the
// configured ceiling before any content is stored.
type UploadFile struct {
	Reader       io.Reader
	OriginalName string
	MimeType     string
	Size         int64
}

type IssueService interface {
	Create(ctx context.Context, owner *model.User, input dto.CreateIssueInput, files []UploadFile) (*model.Issue, error)
	ListOwn(ctx context.Context, userID uuid.UUID, page dto.PageQuery) ([]*model.Issue, int64, error)
	ListAll(ctx context.Context, query dto.IssueListQuery) ([]*model.Issue, int64, error)
	Get(ctx context.Context, caller *model.User, id uuid.UUID) (*model.Issue, error)
	UpdateStatus(ctx context.Context, adminID uuid.UUID, id uuid.UUID, input dto.UpdateIssueStatusInput) (*model.Issue, error)
	Delete(ctx context.Context, caller *model.User, id uuid.UUID) error
	Stats(ctx context.Context) (*dto.IssueStats, error)
}

type issueService struct {
	repo        repository.IssueRepository
	fileStorage storage.FileStorage
	maxFileSize int64
	maxFiles    int
}

func NewIssueService(repo repository.IssueRepository, fileStorage storage.FileStorage, maxFileSize int64, maxFiles int) IssueService {
	return &issueService{
		repo:        repo,
		fileStorage: fileStorage,
		maxFileSize: maxFileSize,
		maxFiles:    maxFiles,
	}
}

func (s *issueService) Create(ctx context.Context, owner *model.User, input dto.CreateIssueInput, files []UploadFile) (*model.Issue, error) {
	if !model.ValidIssueCategory(input.Category) {
		return nil, apperror.Validation("invalid issue category")
	}
	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}
	if !model.ValidIssuePriority(priority) {
		return nil, apperror.Validation("invalid issue priority")
	}

	// Ceilings are enforced before any upload so the whole request aborts
	// with no partial acceptance.
	if len(files) > s.maxFiles {
		return nil, apperror.Validation("too many attachments")
	}
	for _, f := range files {
		if f.Size > s.maxFileSize {
			return nil, apperror.Validation("attachment exceeds the size limit")
		}
	}

	attachments, err := s.uploadAll(ctx, owner.ID, files)
	if err != nil {
		return nil, err
	}

	issue := &model.Issue{
		UserID:      owner.ID,
		UserName:    owner.Name,
		UserRollNo:  owner.RollNo,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Priority:    priority,
		Status:      model.IssuePending,
		Attachments: attachments,
	}

	if err := s.repo.Create(ctx, issue); err != nil {
		s.discardUploads(ctx, attachments)
		return nil, err
	}

	return issue, nil
}

func (s *issueService) uploadAll(ctx context.Context, userID uuid.UUID, files []UploadFile) ([]model.Attachment, error) {
	var attachments []model.Attachment
	for _, f := range files {
		result, err := s.fileStorage.UploadFile(ctx, f.Reader, "issues", f.OriginalName)
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

func (s *issueService) discardUploads(ctx context.Context, attachments []model.Attachment) {
	for _, a := range attachments {
		if err := s.fileStorage.DeleteFile(ctx, a.StoragePath); err != nil {
			log.Printf("failed to discard uploaded attachment %s: %v", a.FileName, err)
		}
	}
}

func (s *issueService) ListOwn(ctx context.Context, userID uuid.UUID, page dto.PageQuery) ([]*model.Issue, int64, error) {
	page.Normalize()
	return s.repo.FindByUser(ctx, userID, page.Page, page.Limit)
}

func (s *issueService) ListAll(ctx context.Context, query dto.IssueListQuery) ([]*model.Issue, int64, error) {
	query.Normalize()
	return s.repo.FindAll(ctx, repository.IssueFilter{
		Status:    query.Status,
		Category:  query.Category,
		Priority:  query.Priority,
		Search:    query.Search,
		Page:      query.Page,
		Limit:     query.Limit,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	})
}

func (s *issueService) Get(ctx context.Context, caller *model.User, id uuid.UUID) (*model.Issue, error) {
	issue, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanAccess(caller, issue.UserID) {
		return nil, apperror.Forbidden("you do not have access to this issue")
	}
	return issue, nil
}

// UpdateStatus applies an admin-initiated transition. The first move away
// from pending stamps processedBy/processedAt exactly once; entering resolved
// or rejected stamps resolvedBy/resolvedAt idempotently.
func (s *issueService) UpdateStatus(ctx context.Context, adminID uuid.UUID, id uuid.UUID, input dto.UpdateIssueStatusInput) (*model.Issue, error) {
	issue, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	next := model.IssueStatus(input.Status)
	if !next.Valid() {
		return nil, apperror.Validation("invalid issue status")
	}

	now := time.Now()
	if issue.Status == model.IssuePending && next != model.IssuePending && issue.ProcessedAt == nil {
		issue.ProcessedBy = &adminID
		issue.ProcessedAt = &now
	}
	if next.Terminal() && issue.ResolvedAt == nil {
		issue.ResolvedBy = &adminID
		issue.ResolvedAt = &now
	}

	issue.Status = next

	if input.AssignedTo != "" {
		assignee, err := uuid.Parse(input.AssignedTo)
		if err != nil {
			return nil, apperror.Validation("invalid assignee id")
		}
		issue.AssignedTo = &assignee
	}

	if err := s.repo.Update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *issueService) Delete(ctx context.Context, caller *model.User, id uuid.UUID) error {
	issue, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if caller.Role != model.RoleAdmin {
		if issue.UserID != caller.ID {
			return apperror.Forbidden("you do not have access to this issue")
		}
		if issue.Status != model.IssuePending {
			return apperror.Conflict("only pending issues can be deleted")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Content cleanup is best-effort once the record is gone.
	s.discardUploads(ctx, issue.Attachments)
	return nil
}

func (s *issueService) Stats(ctx context.Context) (*dto.IssueStats, error) {
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.repo.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	return &dto.IssueStats{
		Total:      total,
		ByStatus:   byStatus,
		ByCategory: byCategory,
		ByPriority: byPriority,
	}, nil
}

func (s *issueService) find(ctx context.Context, id uuid.UUID) (*model.Issue, error) {
	issue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("issue not found")
		}
		return nil, err
	}
	return issue, nil
}
