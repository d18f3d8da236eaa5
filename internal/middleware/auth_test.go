package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/model"
	"github.com/psgtech/campusfacility/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "middleware-test-secret"

// stubUserRepo serves identities by ID; the remaining methods are not used by
// the middleware.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Create(context.Context, *model.User) error { return nil }
func (r *stubUserRepo) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubUserRepo) FindByRollNo(context.Context, string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubUserRepo) FindAll(context.Context, repository.UserFilter) ([]*model.User, int64, error) {
	return nil, 0, nil
}
func (r *stubUserRepo) Update(context.Context, *model.User) error { return nil }
func (r *stubUserRepo) Delete(context.Context, uuid.UUID) error   { return nil }
func (r *stubUserRepo) CountByRole(context.Context) (map[string]int64, error) {
	return nil, nil
}
func (r *stubUserRepo) CountPendingApproval(context.Context) (int64, error) { return 0, nil }

func signToken(t *testing.T, secret string, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthTestRouter(repo *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := NewAuthMiddleware(repo, testSecret)

	r := gin.New()
	r.GET("/private", auth.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"roll_no": CurrentUser(c).RollNo})
	})
	r.GET("/admin", auth.RequireAuth(), auth.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/public", auth.OptionalAuth(), func(c *gin.Context) {
		if user := CurrentUser(c); user != nil {
			c.JSON(http.StatusOK, gin.H{"viewer": user.RollNo})
			return
		}
		c.JSON(http.StatusOK, gin.H{"viewer": nil})
	})
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	student := &model.User{ID: uuid.New(), RollNo: "CS2023099", Role: model.RoleStudent, IsActive: true}
	repo := &stubUserRepo{users: map[uuid.UUID]*model.User{student.ID: student}}
	router := newAuthTestRouter(repo)

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, testSecret, student.ID.String(), time.Now().Add(time.Hour))
		w := doRequest(router, "/private", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "CS2023099")
	})

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(router, "/private", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "authorization required")
	})

	t.Run("wrong signing secret", func(t *testing.T) {
		token := signToken(t, "some-other-secret", student.ID.String(), time.Now().Add(time.Hour))
		w := doRequest(router, "/private", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid or expired token")
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testSecret, student.ID.String(), time.Now().Add(-time.Hour))
		w := doRequest(router, "/private", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown subject", func(t *testing.T) {
		token := signToken(t, testSecret, uuid.NewString(), time.Now().Add(time.Hour))
		w := doRequest(router, "/private", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deactivated user", func(t *testing.T) {
		inactive := &model.User{ID: uuid.New(), RollNo: "CS2020001", Role: model.RoleStudent, IsActive: false}
		repo.users[inactive.ID] = inactive

		token := signToken(t, testSecret, inactive.ID.String(), time.Now().Add(time.Hour))
		w := doRequest(router, "/private", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	student := &model.User{ID: uuid.New(), RollNo: "CS2023099", Role: model.RoleStudent, IsActive: true}
	admin := &model.User{ID: uuid.New(), RollNo: "ADMIN001", Role: model.RoleAdmin, IsActive: true}
	repo := &stubUserRepo{users: map[uuid.UUID]*model.User{student.ID: student, admin.ID: admin}}
	router := newAuthTestRouter(repo)

	adminToken := signToken(t, testSecret, admin.ID.String(), time.Now().Add(time.Hour))
	w := doRequest(router, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	studentToken := signToken(t, testSecret, student.ID.String(), time.Now().Add(time.Hour))
	w = doRequest(router, "/admin", studentToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient permissions")
}

func TestOptionalAuth(t *testing.T) {
	student := &model.User{ID: uuid.New(), RollNo: "CS2023099", Role: model.RoleStudent, IsActive: true}
	repo := &stubUserRepo{users: map[uuid.UUID]*model.User{student.ID: student}}
	router := newAuthTestRouter(repo)

	t.Run("anonymous passes through", func(t *testing.T) {
		w := doRequest(router, "/public", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "null")
	})

	t.Run("valid credential resolves the viewer", func(t *testing.T) {
		token := signToken(t, testSecret, student.ID.String(), time.Now().Add(time.Hour))
		w := doRequest(router, "/public", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "CS2023099")
	})

	t.Run("garbage credential is ignored", func(t *testing.T) {
		w := doRequest(router, "/public", "not-a-jwt")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "null")
	})
}
