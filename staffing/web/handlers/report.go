package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"vaktdata.no/vaktdata/staffing/report"
	"vaktdata.no/vaktdata/web/common"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Report renders the staffing aggregation for the range as a workbook.
func (ep *Endpoint) Report(c *gin.Context) {
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

	var buf bytes.Buffer
	if err := report.WriteStaffingReport(entries, &buf); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bemanning.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
