package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"vaktdata.no/vaktdata/cache"
	staffing "vaktdata.no/vaktdata/staffing/core"
	"vaktdata.no/vaktdata/utils"
	"vaktdata.no/vaktdata/web/common"
)

// aggregate serves the staffing view through the cache tier. Note that
// mutations do not invalidate this tier; readers may see up to 60s of
// staleness.
func (ep *Endpoint) aggregate(c *gin.Context, orgID string, dto StaffingSearchDTO) ([]staffing.StaffingEntry, error) {
	key := cache.Key("staffing", orgID,
		dto.StartDate.Format(utils.DateLayout),
		dto.EndDate.Format(utils.DateLayout),
		strings.Join(dto.PersonIDs, ","),
		strings.Join(dto.ProjectIDs, ","))

	if cached, ok := ep.Cache.Get(key); ok {
		return cached.([]staffing.StaffingEntry), nil
	}

	var entries []staffing.StaffingEntry
	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		entries, err = staffing.Aggregate(db, staffing.AggregateOptions{
			OrgID:      orgID,
			Start:      dto.StartDate.Time,
			End:        dto.EndDate.Time,
			PersonIDs:  dto.PersonIDs,
			ProjectIDs: dto.ProjectIDs,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	ep.Cache.Set(key, entries, cache.TTLStaffing)
	return entries, nil
}

func (ep *Endpoint) Search(c *gin.Context) {
	var dto StaffingSearchDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	orgID, ok := ep.orgID(c)
	if !ok {
		return
	}

	entries, err := ep.aggregate(c, orgID, dto)
	if err != nil {
		writeError(c, err)
		return
	}

	counts := staffing.CountEntries(entries)
	c.JSON(http.StatusOK, common.NewSearchResponseWithCounts(entries, int64(counts.Total), counts))
}
