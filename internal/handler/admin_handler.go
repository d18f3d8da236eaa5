package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/dto"
	"github.com/psgtech/campusfacility/internal/service"
	"github.com/psgtech/campusfacility/pkg/response"
	"github.com/psgtech/campusfacility/pkg/validator"
)

// AdminHandler exposes the admin-side identity lifecycle.
type AdminHandler struct {
	userService service.UserService
}

func NewAdminHandler(userService service.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.UserListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}
	query.Normalize()

	users, total, err := h.userService.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "", users, response.NewPagination(query.Page, query.Limit, total))
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var input dto.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}

	user, err := h.userService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "user created", user)
}

func (h *AdminHandler) ApproveUser(c *gin.Context) {
	userID, adminID, ok := h.ids(c)
	if !ok {
		return
	}

	user, err := h.userService.Approve(c.Request.Context(), adminID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "user approved", user)
}

func (h *AdminHandler) RejectUser(c *gin.Context) {
	userID, adminID, ok := h.ids(c)
	if !ok {
		return
	}

	if err := h.userService.Reject(c.Request.Context(), adminID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "registration rejected", nil)
}

func (h *AdminHandler) ActivateUser(c *gin.Context) {
	h.setActive(c, true, "user activated")
}

func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	h.setActive(c, false, "user deactivated")
}

func (h *AdminHandler) setActive(c *gin.Context, active bool, message string) {
	userID, _, ok := h.ids(c)
	if !ok {
		return
	}

	user, err := h.userService.SetActive(c.Request.Context(), userID, active)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, message, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, _, ok := h.ids(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "user deleted", nil)
}

func (h *AdminHandler) ids(c *gin.Context) (userID, adminID uuid.UUID, ok bool) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Envelope{Status: "error", Message: "invalid user id"})
		return uuid.Nil, uuid.Nil, false
	}

	adminID, err = response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, adminID, true
}
