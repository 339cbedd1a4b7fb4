package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"vaktdata.no/vaktdata/core"
	staffing "vaktdata.no/vaktdata/staffing/core"
	"vaktdata.no/vaktdata/utils"
)

func TestWriteStaffingReport(t *testing.T) {
	entries := []staffing.StaffingEntry{
		{
			Shift:      core.Shift{Date: utils.MustParseDate("2025-03-03")},
			Person:     core.Person{FirstName: "Kari", Surname: "Berg"},
			Project:    core.Project{Name: "Byggeplass Nord"},
			TotalHours: 7.5,
			Status:     staffing.ShiftApproved,
			Week:       10,
		},
		{
			Shift:      core.Shift{Date: utils.MustParseDate("2025-03-04")},
			Person:     core.Person{FirstName: "Ola", Surname: "Aas"},
			Project:    core.Project{Name: "Byggeplass Nord"},
			TotalHours: 4,
			Status:     staffing.ShiftReady,
			Week:       10,
		},
		{
			Shift:      core.Shift{Date: utils.MustParseDate("2025-03-10")},
			Person:     core.Person{FirstName: "Kari", Surname: "Berg"},
			Project:    core.Project{Name: "Byggeplass Sør"},
			TotalHours: 7.5,
			Status:     staffing.ShiftDraft,
			Week:       11,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStaffingReport(entries, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Uke 10")
	assert.Contains(t, sheets, "Uke 11")
	assert.NotContains(t, sheets, "Sheet1")

	header, err := f.GetCellValue("Uke 10", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Dato", header)

	name, err := f.GetCellValue("Uke 10", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Kari Berg", name)

	status, err := f.GetCellValue("Uke 10", "E3")
	require.NoError(t, err)
	assert.Equal(t, "klar", status)

	// Weekly totals row below the last shift.
	total, err := f.GetCellValue("Uke 10", "D4")
	require.NoError(t, err)
	assert.Equal(t, "11.5", total)

	total, err = f.GetCellValue("Uke 11", "D3")
	require.NoError(t, err)
	assert.Equal(t, "7.5", total)
}

func TestWriteStaffingReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStaffingReport(nil, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())
}
