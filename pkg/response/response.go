package response

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/pkg/apperror"
)

// Envelope is the uniform JSON body for every endpoint.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// Pagination describes a collection page.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

// NewPagination derives page counts from a total row count.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return Pagination{Current: page, Pages: pages, Total: total}
}

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// Success writes a success envelope.
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Envelope{Status: "success", Message: message, Data: data})
}

// Paginated writes a success envelope for one page of a collection.
func Paginated(c *gin.Context, message string, items interface{}, p Pagination) {
	c.JSON(http.StatusOK, Envelope{
		Status:  "success",
		Message: message,
		Data:    gin.H{"items": items, "pagination": p},
	})
}

// Error writes a standardized error envelope mapped from the error taxonomy.
// Internal error detail is suppressed outside development mode.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		if os.Getenv("APP_ENV") != "development" {
			message = "internal server error"
		}
	}

	c.JSON(code, Envelope{Status: "error", Message: message})
}

// ValidationError writes an error envelope carrying itemized field errors.
func ValidationError(c *gin.Context, fieldErrors []string) {
	c.JSON(http.StatusBadRequest, Envelope{
		Status:  "error",
		Message: "validation failed",
		Errors:  fieldErrors,
	})
}
