package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"vaktdata.no/vaktdata/cache"
	"vaktdata.no/vaktdata/core"
	"vaktdata.no/vaktdata/security"
	staffing "vaktdata.no/vaktdata/staffing/core"
	"vaktdata.no/vaktdata/validation"
	"vaktdata.no/vaktdata/web/common"
)

// Endpoint bundles the injected collaborators. Each service instance
// owns its cache and token store; nothing here is a process singleton.
type Endpoint struct {
	Dm     *core.DatabaseManager
	Cache  *cache.Cache
	Sync   *staffing.SyncService
	Tokens *security.SessionTokenStore
}

// Register wires the staffing routes. guard is the session-token check
// applied to every mutating route.
func Register(r *gin.RouterGroup, ep *Endpoint, guard gin.HandlerFunc) {
	r.POST("/session/token", ep.IssueSessionToken)

	r.POST("/staffing/search", ep.Search)
	r.POST("/staffing/report", ep.Report)
	r.GET("/people", ep.ListPeople)
	r.GET("/projects", ep.ListProjects)
	r.GET("/projects/colors", ep.ProjectColors)
	r.GET("/calendar", ep.CalendarWeek)
	r.GET("/timeentries/:id/remote-status", ep.RemoteStatus)

	mutating := r.Group("", guard)
	mutating.POST("/timeentries/approve", ep.Approve)
	mutating.POST("/timeentries/export", ep.Export)
}

// orgID reads the caller's org from the identity claims.
func (ep *Endpoint) orgID(c *gin.Context) (string, bool) {
	org, err := validation.UUID("orgId", c.GetString("orgId"))
	if err != nil {
		writeError(c, err)
		return "", false
	}
	return org, true
}

// writeError maps a validation failure to 400 with the offending field;
// everything else is a 500.
func writeError(c *gin.Context, err error) {
	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, common.NewFieldErrorResponse(ve.Field, ve.Message))
		return
	}
	c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
}
