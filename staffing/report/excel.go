// Package report renders staffing aggregations as Excel workbooks for
// the weekly review meeting.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"
	staffing "vaktdata.no/vaktdata/staffing/core"
	"vaktdata.no/vaktdata/utils"
)

var headers = []string{"Dato", "Ansatt", "Prosjekt", "Timer", "Status"}

// WriteStaffingReport writes one sheet per ISO week, one row per shift,
// with a totals row at the bottom of each sheet. Entries are expected in
// aggregation order (date, then person).
func WriteStaffingReport(entries []staffing.StaffingEntry, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	byWeek := utils.GroupBy(entries, func(se staffing.StaffingEntry) int { return se.Week })

	weeks := make([]int, 0, len(byWeek))
	for week := range byWeek {
		weeks = append(weeks, week)
	}
	// Sorted weeks keep the sheets in calendar order.
	sort.Ints(weeks)

	for _, week := range weeks {
		sheet := fmt.Sprintf("Uke %d", week)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}

		for col, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				return err
			}
		}

		total := 0.0
		row := 2
		for _, se := range byWeek[week] {
			values := []any{
				se.Shift.Date.Format(utils.DateLayout),
				fmt.Sprintf("%s %s", se.Person.FirstName, se.Person.Surname),
				se.Project.Name,
				se.TotalHours,
				string(se.Status),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return err
				}
			}
			total += se.TotalHours
			row++
		}

		totalCell, _ := excelize.CoordinatesToCellName(len(headers)-1, row)
		if err := f.SetCellValue(sheet, totalCell, utils.RoundHours(total)); err != nil {
			return err
		}
	}

	if len(weeks) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
