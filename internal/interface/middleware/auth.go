package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/inmobo/inmobo-api/pkg/helpers"
	"github.com/inmobo/inmobo-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the access token and ensures an active session exists in
// Redis. Sets userID, userName, and userEmail in the Gin context on success.
// Requests without a valid session are rejected with 401, which is how this
// API expresses the "redirect to /login" guard of the browser client.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		key := "user:session:" + claims.UserID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 {
			response.AbortError(c, http.StatusUnauthorized, "session not found", nil)
			return
		}
		if sid := data["sid"]; sid != "" && sid != claims.SessionID {
			response.AbortError(c, http.StatusUnauthorized, "session superseded", nil)
			return
		}

		c.Set(CtxUserIDKey, data["user_id"])
		c.Set("userName", data["name"])
		c.Set("userEmail", data["email"])
		c.Next()
	}
}
