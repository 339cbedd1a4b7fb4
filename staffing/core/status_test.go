package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"vaktdata.no/vaktdata/core"
	"vaktdata.no/vaktdata/utils"
)

func entry(status core.EntryStatus, synced bool) core.TimeEntry {
	e := core.TimeEntry{Status: status}
	if synced {
		e.SyncedAt = utils.Ptr(time.Now())
	}
	return e
}

func TestDeriveShiftStatus(t *testing.T) {
	tests := []struct {
		name    string
		entries []core.TimeEntry
		want    ShiftStatus
	}{
		{
			name:    "No entries means missing",
			entries: nil,
			want:    ShiftMissing,
		},
		{
			name:    "Single draft",
			entries: []core.TimeEntry{entry(core.StatusDraft, false)},
			want:    ShiftDraft,
		},
		{
			name: "All synced",
			entries: []core.TimeEntry{
				entry(core.StatusSent, true),
				entry(core.StatusSent, true),
			},
			want: ShiftSent,
		},
		{
			name: "One unsynced holds the shift below sent",
			entries: []core.TimeEntry{
				entry(core.StatusSent, true),
				entry(core.StatusApproved, false),
			},
			want: ShiftDraft,
		},
		{
			name: "All approved",
			entries: []core.TimeEntry{
				entry(core.StatusApproved, false),
				entry(core.StatusApproved, false),
			},
			want: ShiftApproved,
		},
		{
			name: "Approved mixed with draft falls back to draft",
			entries: []core.TimeEntry{
				entry(core.StatusApproved, false),
				entry(core.StatusDraft, false),
			},
			want: ShiftDraft,
		},
		{
			name: "One ready lifts the shift to ready",
			entries: []core.TimeEntry{
				entry(core.StatusDraft, false),
				entry(core.StatusReady, false),
			},
			want: ShiftReady,
		},
		{
			name: "Approved mixed with ready is ready",
			entries: []core.TimeEntry{
				entry(core.StatusApproved, false),
				entry(core.StatusReady, false),
			},
			want: ShiftReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveShiftStatus(tt.entries))
		})
	}
}
