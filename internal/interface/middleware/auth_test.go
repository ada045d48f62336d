package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmobo/inmobo-api/pkg/helpers"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *redis.Client, *helpers.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	jwt := helpers.NewJWTManager("access", "refresh", time.Hour, 24*time.Hour)

	r := gin.New()
	r.GET("/protected", Auth(rdb, jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString(CtxUserIDKey)})
	})
	return r, rdb, jwt
}

func seedSession(t *testing.T, rdb *redis.Client, userID, sid string) {
	t.Helper()
	err := rdb.HSet(context.Background(), "user:session:"+userID, map[string]any{
		"user_id": userID,
		"email":   "ana@example.com",
		"name":    "Ana",
		"sid":     sid,
	}).Err()
	require.NoError(t, err)
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingCookie(t *testing.T) {
	r, _, _ := newAuthRouter(t)
	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	r, _, _ := newAuthRouter(t)
	w := doRequest(r, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsTokenWithoutSession(t *testing.T) {
	r, _, jwt := newAuthRouter(t)
	token, _, err := jwt.GenerateAccessToken("u1", "s1")
	require.NoError(t, err)

	w := doRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsSupersededSession(t *testing.T) {
	r, rdb, jwt := newAuthRouter(t)
	seedSession(t, rdb, "u1", "new-session")

	token, _, err := jwt.GenerateAccessToken("u1", "old-session")
	require.NoError(t, err)

	w := doRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsActiveSession(t *testing.T) {
	r, rdb, jwt := newAuthRouter(t)
	seedSession(t, rdb, "u1", "s1")

	token, _, err := jwt.GenerateAccessToken("u1", "s1")
	require.NoError(t, err)

	w := doRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":"u1"`)
}
