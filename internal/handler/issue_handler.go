package handler

import (
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/dto"
	"github.com/psgtech/campusfacility/internal/service"
	"github.com/psgtech/campusfacility/pkg/response"
	"github.com/psgtech/campusfacility/pkg/validator"
)

type IssueHandler struct {
	issueService service.IssueService
}

func NewIssueHandler(issueService service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// openUploads converts multipart file headers into service upload inputs.
// Returned closers must be closed by the caller.
func openUploads(headers []*multipart.FileHeader) ([]service.UploadFile, []multipart.File, error) {
	var files []service.UploadFile
	var opened []multipart.File
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			for _, o := range opened {
				o.Close()
			}
			return nil, nil, err
		}
		opened = append(opened, f)
		files = append(files, service.UploadFile{
			Reader:       f,
			OriginalName: header.Filename,
			MimeType:     header.Header.Get("Content-Type"),
			Size:         header.Size,
		})
	}
	return files, opened, nil
}

func closeAll(opened []multipart.File) {
	for _, f := range opened {
		if err := f.Close(); err != nil {
			log.Printf("failed to close upload: %v", err)
		}
	}
}

func (h *IssueHandler) Create(c *gin.Context) {
	var input dto.CreateIssueInput
	if err := c.ShouldBind(&input); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}

	caller, err := requireCaller(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var headers []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		headers = form.File["attachments"]
	}

	files, opened, err := openUploads(headers)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeAll(opened)

	issue, err := h.issueService.Create(c.Request.Context(), caller, input, files)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "issue reported", issue)
}

func (h *IssueHandler) ListOwn(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}
	page.Normalize()

	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	issues, total, err := h.issueService.ListOwn(c.Request.Context(), userID, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "", issues, response.NewPagination(page.Page, page.Limit, total))
}

func (h *IssueHandler) ListAll(c *gin.Context) {
	var query dto.IssueListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}
	query.Normalize()

	issues, total, err := h.issueService.ListAll(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "", issues, response.NewPagination(query.Page, query.Limit, total))
}

func (h *IssueHandler) Get(c *gin.Context) {
	issueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Envelope{Status: "error", Message: "invalid issue id"})
		return
	}

	caller, err := requireCaller(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	issue, err := h.issueService.Get(c.Request.Context(), caller, issueID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", issue)
}

func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	h.patchStatus(c, "")
}

// Approve, Resolve and Reject are shortcuts over the generic status patch.
func (h *IssueHandler) Approve(c *gin.Context) {
	h.patchStatus(c, "open")
}

func (h *IssueHandler) Resolve(c *gin.Context) {
	h.patchStatus(c, "resolved")
}

func (h *IssueHandler) Reject(c *gin.Context) {
	h.patchStatus(c, "rejected")
}

func (h *IssueHandler) patchStatus(c *gin.Context, forcedStatus string) {
	issueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Envelope{Status: "error", Message: "invalid issue id"})
		return
	}

	var input dto.UpdateIssueStatusInput
	if forcedStatus != "" {
		input.Status = forcedStatus
	} else {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.ValidationError(c, validator.FieldErrors(err))
			return
		}
	}

	adminID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	issue, err := h.issueService.UpdateStatus(c.Request.Context(), adminID, issueID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "issue status updated", issue)
}

func (h *IssueHandler) Delete(c *gin.Context) {
	issueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Envelope{Status: "error", Message: "invalid issue id"})
		return
	}

	caller, err := requireCaller(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.issueService.Delete(c.Request.Context(), caller, issueID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "issue deleted", nil)
}

func (h *IssueHandler) Stats(c *gin.Context) {
	stats, err := h.issueService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", stats)
}
