package core

import (
	"vaktdata.no/vaktdata/core"
)

// ShiftStatus is derived, never stored: it is purely a function of the
// contained entries' status values and SyncedAt.
type ShiftStatus string

const (
	ShiftMissing  ShiftStatus = "mangler"
	ShiftDraft    ShiftStatus = ShiftStatus(core.StatusDraft)
	ShiftReady    ShiftStatus = ShiftStatus(core.StatusReady)
	ShiftApproved ShiftStatus = ShiftStatus(core.StatusApproved)
	ShiftSent     ShiftStatus = ShiftStatus(core.StatusSent)
)

// DeriveShiftStatus computes the status of a shift from its entries.
// "sent" and "approved" require unanimity across all entries; "ready"
// only requires one. A mixed-state shift therefore lands on the less
// finished status.
func DeriveShiftStatus(entries []core.TimeEntry) ShiftStatus {
	if len(entries) == 0 {
		return ShiftMissing
	}

	allSynced := true
	allApproved := true
	anyReady := false
	for _, e := range entries {
		if e.SyncedAt == nil {
			allSynced = false
		}
		if e.Status != core.StatusApproved {
			allApproved = false
		}
		if e.Status == core.StatusReady {
			anyReady = true
		}
	}

	switch {
	case allSynced:
		return ShiftSent
	case allApproved:
		return ShiftApproved
	case anyReady:
		return ShiftReady
	default:
		return ShiftDraft
	}
}
