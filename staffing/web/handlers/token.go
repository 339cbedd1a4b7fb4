package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vaktdata.no/vaktdata/web/common"
)

// IssueSessionToken mints (or returns) the session's token. The token
// must then accompany every mutating call.
func (ep *Endpoint) IssueSessionToken(c *gin.Context) {
	var dto SessionTokenRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	userID := dto.UserID
	if userID == "" {
		userID = c.GetString("userId")
	}

	token, err := ep.Tokens.Issue(dto.SessionID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"token": token}))
}
