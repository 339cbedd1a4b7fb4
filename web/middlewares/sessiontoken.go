package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vaktdata.no/vaktdata/security"
	"vaktdata.no/vaktdata/web/common"
)

const (
	HeaderSessionID    = "X-Session-Id"
	HeaderSessionToken = "X-Session-Token"
)

// SessionTokenGuard gates mutating calls: the session id and its current
// token must be supplied on every request, and the token must belong to
// the authenticated user.
func SessionTokenGuard(store *security.SessionTokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(HeaderSessionID)
		token := c.GetHeader(HeaderSessionToken)
		if sessionID == "" || token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("session token required"))
			return
		}

		if err := store.Verify(sessionID, token, c.GetString("userId")); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse(err.Error()))
			return
		}

		c.Next()
	}
}
