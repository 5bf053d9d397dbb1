package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moderation-service/internal/models"
	"moderation-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret []byte, expiresAt time.Time) string {
	t.Helper()
	claims := &models.Claims{
		Username: "admin",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}

func guardedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/guarded", AuthMiddleware(zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username": c.MustGet("username"),
			"role":     c.MustGet("role"),
		})
	})
	return r
}

func doGuarded(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r := guardedRouter()
	token := signToken(t, service.GetJWTSecret(), time.Now().Add(time.Hour))

	w := doGuarded(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	w := doGuarded(guardedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	r := guardedRouter()

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc123", "justatoken"} {
		w := doGuarded(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	r := guardedRouter()
	token := signToken(t, []byte("not-the-signing-secret"), time.Now().Add(time.Hour))

	w := doGuarded(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	r := guardedRouter()
	token := signToken(t, service.GetJWTSecret(), time.Now().Add(-time.Hour))

	w := doGuarded(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session expired")
}
