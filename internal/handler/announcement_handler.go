package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/dto"
	"github.com/psgtech/campusfacility/internal/middleware"
	"github.com/psgtech/campusfacility/internal/service"
	"github.com/psgtech/campusfacility/pkg/response"
	"github.com/psgtech/campusfacility/pkg/validator"
)

type AnnouncementHandler struct {
	announcementService service.AnnouncementService
}

func NewAnnouncementHandler(announcementService service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var input dto.CreateAnnouncementInput
	if err := c.ShouldBind(&input); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}

	adminID, err := response.GetUserID(c)
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

	a, err := h.announcementService.Create(c.Request.Context(), adminID, input, files)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "announcement published", a)
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	announcementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Envelope{Status: "error", Message: "invalid announcement id"})
		return
	}

	var input dto.UpdateAnnouncementInput
	if err := c.ShouldBind(&input); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}

	a, err := h.announcementService.Update(c.Request.Context(), announcementID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "announcement updated", a)
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	announcementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Envelope{Status: "error", Message: "invalid announcement id"})
		return
	}

	if err := h.announcementService.Delete(c.Request.Context(), announcementID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "announcement deleted", nil)
}

func (h *AnnouncementHandler) TogglePin(c *gin.Context) {
	announcementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Envelope{Status: "error", Message: "invalid announcement id"})
		return
	}

	a, err := h.announcementService.TogglePin(c.Request.Context(), announcementID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "announcement pin toggled", a)
}

// List serves both the public view (anonymous or personalized through
// OptionalAuth) and the admin management view.
func (h *AnnouncementHandler) List(c *gin.Context) {
	var query dto.AnnouncementListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}
	query.Normalize()

	viewer := middleware.CurrentUser(c)

	items, total, err := h.announcementService.List(c.Request.Context(), viewer, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "", items, response.NewPagination(query.Page, query.Limit, total))
}

func (h *AnnouncementHandler) Get(c *gin.Context) {
	announcementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Envelope{Status: "error", Message: "invalid announcement id"})
		return
	}

	viewer := middleware.CurrentUser(c)

	a, err := h.announcementService.Get(c.Request.Context(), viewer, announcementID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", a)
}

func (h *AnnouncementHandler) Stats(c *gin.Context) {
	stats, err := h.announcementService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", stats)
}
