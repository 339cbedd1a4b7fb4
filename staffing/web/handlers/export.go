package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"vaktdata.no/vaktdata/core"
	"vaktdata.no/vaktdata/web/common"
)

func (ep *Endpoint) Approve(c *gin.Context) {
	var dto ApproveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	orgID, ok := ep.orgID(c)
	if !ok {
		return
	}

	var updated int64
	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		updated, err = ep.Sync.MarkApproved(db, orgID, dto.EntryIDs, c.GetString("userId"))
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"approved": updated}))
}

func (ep *Endpoint) Export(c *gin.Context) {
	var dto ExportDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	orgID, ok := ep.orgID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	outcome, err := ep.Sync.ExportApproved(ctx, ep.Dm.DB(ctx), orgID, dto.EntryIDs, dto.DryRun)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(outcome))
}

func (ep *Endpoint) RemoteStatus(c *gin.Context) {
	orgID, ok := ep.orgID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var entry core.TimeEntry
	if err := ep.Dm.DB(ctx).
		Where("org_id = ? AND id = ?", orgID, c.Param("id")).
		First(&entry).Error; err != nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Time entry not found"))
		return
	}

	exists, err := ep.Sync.VerifyRemoteStatus(ctx, &entry)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"exists": exists}))
}
