package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/groceryhub/grocery-api/internal/infrastructure/db"
	"github.com/groceryhub/grocery-api/pkg/apperr"
	"github.com/groceryhub/grocery-api/pkg/response"
)

// AuthTokenHeader carries the opaque session token on every authenticated
// request.
const AuthTokenHeader = "X-Auth-Token"

// Auth validates the session token and puts token and userID into the Gin
// context. The token is checked in both directions: the token→user map and
// the user's live-token set must agree.
func Auth(database *db.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AuthTokenHeader)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing auth token", nil)
			c.Abort()
			return
		}
		if err := database.ValidateSession(c.Request.Context(), token); err != nil {
			response.Error[any](c, apperr.HTTPStatus(err), "invalid session", nil)
			c.Abort()
			return
		}
		userID, err := database.SessionUser(c.Request.Context(), token)
		if err != nil {
			response.Error[any](c, apperr.HTTPStatus(err), "invalid session", nil)
			c.Abort()
			return
		}
		c.Set("authToken", token)
		c.Set("userID", string(userID))
		c.Next()
	}
}
