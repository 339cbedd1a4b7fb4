package core

import (
	"sort"
	"time"

	"gorm.io/gorm"
	"vaktdata.no/vaktdata/core"
	"vaktdata.no/vaktdata/utils"
	"vaktdata.no/vaktdata/validation"
)

// AggregateOptions describes one staffing aggregation call.
type AggregateOptions struct {
	OrgID      string
	Start      time.Time
	End        time.Time
	PersonIDs  []string
	ProjectIDs []string
}

// StaffingEntry is the derived per-shift view. Recomputed on every
// aggregation, never mutated directly.
type StaffingEntry struct {
	Shift      core.Shift       `json:"shift"`
	Person     core.Person      `json:"person"`
	Project    core.Project     `json:"project"`
	Entries    []core.TimeEntry `json:"entries"`
	TotalHours float64          `json:"totalHours"`
	Status     ShiftStatus      `json:"status"`
	Week       int              `json:"week"`
}

func (o *AggregateOptions) validate() error {
	orgID, err := validation.UUID("orgId", o.OrgID)
	if err != nil {
		return err
	}
	o.OrgID = orgID

	if o.Start.IsZero() || o.End.IsZero() {
		return &validation.ValidationError{Field: "dateRange", Message: "start and end are required"}
	}
	if o.End.Before(o.Start) {
		return &validation.ValidationError{Field: "dateRange", Message: "end must not be before start"}
	}

	ids, err := validation.UUIDs("personIds", o.PersonIDs)
	if err != nil {
		return err
	}
	o.PersonIDs = ids

	projectIDs, err := validation.UUIDs("projectIds", o.ProjectIDs)
	if err != nil {
		return err
	}
	o.ProjectIDs = projectIDs
	return nil
}

// Aggregate fetches every shift in the range with its person, project and
// activity-tagged entries in one batched read, then derives the per-shift
// status and total. No per-shift re-fetching.
func Aggregate(db *gorm.DB, opts AggregateOptions) ([]StaffingEntry, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var shifts []core.Shift
	err := db.
		Preload("Person").
		Preload("Project").
		Preload("Entries.Activity").
		Where("org_id = ?", opts.OrgID).
		Where("date BETWEEN ? AND ?", opts.Start.Format(utils.DateLayout), opts.End.Format(utils.DateLayout)).
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}

	// Person and project filters are applied after aggregation so the
	// batched fetch stays identical across callers.
	result := filterByPersons(buildStaffingEntries(shifts), opts.PersonIDs)
	return filterByProjects(result, opts.ProjectIDs), nil
}

func filterByPersons(entries []StaffingEntry, personIDs []string) []StaffingEntry {
	if len(personIDs) == 0 {
		return entries
	}
	return utils.Filter(entries, func(se StaffingEntry) bool {
		return utils.Contains(personIDs, se.Shift.PersonID)
	})
}

func filterByProjects(entries []StaffingEntry, projectIDs []string) []StaffingEntry {
	if len(projectIDs) == 0 {
		return entries
	}
	return utils.Filter(entries, func(se StaffingEntry) bool {
		return utils.Contains(projectIDs, se.Shift.ProjectID)
	})
}

// SearchCounts summarizes an aggregation for the list header.
type SearchCounts struct {
	Approved int `json:"approved"`
	Total    int `json:"total"`
}

// CountEntries tallies fully approved shifts against the total.
func CountEntries(entries []StaffingEntry) SearchCounts {
	counts := SearchCounts{Total: len(entries)}
	for _, se := range entries {
		if se.Status == ShiftApproved {
			counts.Approved++
		}
	}
	return counts
}

func buildStaffingEntries(shifts []core.Shift) []StaffingEntry {
	entries := make([]StaffingEntry, 0, len(shifts))
	for _, shift := range shifts {
		total := 0.0
		for _, e := range shift.Entries {
			total += e.Hours
		}

		entries = append(entries, StaffingEntry{
			Shift:      shift,
			Person:     shift.Person,
			Project:    shift.Project,
			Entries:    shift.Entries,
			TotalHours: utils.RoundHours(total),
			Status:     DeriveShiftStatus(shift.Entries),
			Week:       utils.ISOWeek(shift.Date),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Shift.Date.Equal(entries[j].Shift.Date) {
			return entries[i].Shift.Date.Before(entries[j].Shift.Date)
		}
		if entries[i].Person.Surname != entries[j].Person.Surname {
			return entries[i].Person.Surname < entries[j].Person.Surname
		}
		return entries[i].Person.FirstName < entries[j].Person.FirstName
	})

	return entries
}
