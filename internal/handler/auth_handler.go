package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/psgtech/campusfacility/internal/dto"
	"github.com/psgtech/campusfacility/internal/middleware"
	"github.com/psgtech/campusfacility/internal/model"
	"github.com/psgtech/campusfacility/internal/service"
	"github.com/psgtech/campusfacility/pkg/apperror"
	"github.com/psgtech/campusfacility/pkg/response"
	"github.com/psgtech/campusfacility/pkg/validator"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "registration successful", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", res)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var input dto.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "profile updated", user)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var input dto.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "password changed", nil)
}

// requireCaller pulls the resolved identity off the context, mapping its
// absence to the unauthenticated taxonomy entry.
func requireCaller(c *gin.Context) (*model.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}
	return user, nil
}
