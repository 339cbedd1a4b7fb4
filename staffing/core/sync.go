package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
	"vaktdata.no/vaktdata/core"
	v1 "vaktdata.no/vaktdata/ledger/v1"
	"vaktdata.no/vaktdata/utils"
	"vaktdata.no/vaktdata/validation"
)

// Sub-batch size for concurrent dispatch against the ledger.
const exportBatchSize = 25

// LedgerAPI is the slice of the ledger client the sync service needs.
type LedgerAPI interface {
	Export(ctx context.Context, lines []v1.TimeEntryLineDTO) ([]v1.TimeEntryLineResultDTO, error)
	Exists(ctx context.Context, remoteID string) (bool, error)
}

// Notifier receives the period-locked banner condition. May be nil.
type Notifier interface {
	PeriodLocked(orgID string, week int) error
}

// SyncService exports approved time entries to the ledger. Every failure
// path is non-destructive: a failed or period-locked export never
// downgrades an approved entry, which is what makes retries safe.
type SyncService struct {
	api    LedgerAPI
	notify Notifier
}

func NewSyncService(api LedgerAPI, notify Notifier) *SyncService {
	return &SyncService{api: api, notify: notify}
}

// ClientReference builds the idempotency key for one entry. Stable across
// repeated submissions of the same entry.
func ClientReference(orgID, entryID string) string {
	return orgID + "-" + entryID
}

// MarkApproved sets matching entries to approved. Fully local, no ledger
// call. Entries already sent are left alone.
func (s *SyncService) MarkApproved(db *gorm.DB, orgID string, entryIDs []string, approvedBy string) (int64, error) {
	orgID, err := validation.UUID("orgId", orgID)
	if err != nil {
		return 0, err
	}
	ids, err := validation.UUIDs("entryIds", entryIDs)
	if err != nil {
		return 0, err
	}
	approvedBy, err = validation.UUID("approvedBy", approvedBy)
	if err != nil {
		return 0, err
	}

	res := db.Model(&core.TimeEntry{}).
		Where("org_id = ? AND id IN ?", orgID, ids).
		Where("status <> ?", core.StatusSent).
		Updates(map[string]any{
			"status":      core.StatusApproved,
			"approved_at": time.Now(),
			"approved_by": approvedBy,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Per-entry export result kinds.
const (
	ResultSuccess      = "success"
	ResultPeriodLocked = "period_locked"
	ResultFailed       = "failed"
)

type ExportResult struct {
	EntryID         string `json:"entryId"`
	ClientReference string `json:"clientReference"`
	Kind            string `json:"kind"`
	RemoteID        string `json:"remoteId,omitempty"`
	Error           string `json:"error,omitempty"`
	Week            int    `json:"week,omitempty"`
}

// ExportOutcome collects per-entry results in input order. LockedWeeks
// names the weeks refused by a closed accounting period, for the
// user-facing banner.
type ExportOutcome struct {
	DryRun      bool           `json:"dryRun"`
	Results     []ExportResult `json:"results"`
	LockedWeeks []int          `json:"lockedWeeks,omitempty"`
}

func (o *ExportOutcome) partition(kind string) []ExportResult {
	return utils.Filter(o.Results, func(r ExportResult) bool { return r.Kind == kind })
}

func (o *ExportOutcome) Succeeded() []ExportResult    { return o.partition(ResultSuccess) }
func (o *ExportOutcome) PeriodLocked() []ExportResult { return o.partition(ResultPeriodLocked) }
func (o *ExportOutcome) Failed() []ExportResult       { return o.partition(ResultFailed) }

// BuildExportLine converts one eligible entry to its ledger payload,
// validating the shape. The shift must be loaded on the entry.
func BuildExportLine(entry core.TimeEntry, orgID string) (v1.TimeEntryLineDTO, error) {
	if entry.Shift == nil {
		return v1.TimeEntryLineDTO{}, &validation.ValidationError{Field: "shiftId", Message: "owning shift not found"}
	}
	if entry.Shift.PersonID == "" {
		return v1.TimeEntryLineDTO{}, &validation.ValidationError{Field: "personId", Message: "shift has no person"}
	}
	if entry.Shift.ProjectID == "" {
		return v1.TimeEntryLineDTO{}, &validation.ValidationError{Field: "projectId", Message: "shift has no project"}
	}
	if entry.ActivityID == "" {
		return v1.TimeEntryLineDTO{}, &validation.ValidationError{Field: "activityId", Message: "entry has no activity"}
	}
	if entry.Shift.Date.IsZero() {
		return v1.TimeEntryLineDTO{}, &validation.ValidationError{Field: "date", Message: "shift has no date"}
	}
	hours, err := validation.Hours("hours", entry.Hours)
	if err != nil {
		return v1.TimeEntryLineDTO{}, err
	}

	return v1.TimeEntryLineDTO{
		ID:              entry.ID,
		PersonID:        entry.Shift.PersonID,
		ProjectID:       entry.Shift.ProjectID,
		ActivityID:      entry.ActivityID,
		Date:            entry.Shift.Date.Format(utils.DateLayout),
		Hours:           hours,
		Comment:         entry.Note,
		ClientReference: ClientReference(orgID, entry.ID),
	}, nil
}

// ExportApproved filters the given entries to those approved or ready,
// builds idempotent payloads and submits them. With dryRun the payloads
// are only validated; nothing is dispatched and no state changes.
//
// Per-entry results come back in input order. Across overlapping
// concurrent calls there is no ordering guarantee; duplicate submission
// is tolerated because the ledger deduplicates on ClientReference.
func (s *SyncService) ExportApproved(ctx context.Context, db *gorm.DB, orgID string, entryIDs []string, dryRun bool) (*ExportOutcome, error) {
	orgID, err := validation.UUID("orgId", orgID)
	if err != nil {
		return nil, err
	}
	ids, err := validation.UUIDs("entryIds", entryIDs)
	if err != nil {
		return nil, err
	}

	var entries []core.TimeEntry
	if err := db.Preload("Shift").
		Where("org_id = ? AND id IN ?", orgID, ids).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	eligible := utils.Filter(entries, func(e core.TimeEntry) bool {
		return e.Status == core.StatusApproved || e.Status == core.StatusReady
	})

	// Restore the caller's batch order; the result ordering guarantee
	// keys off it.
	position := make(map[string]int, len(ids))
	for i, id := range ids {
		position[id] = i
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return position[eligible[i].ID] < position[eligible[j].ID]
	})

	if dryRun {
		return s.dryRunOutcome(eligible, orgID), nil
	}

	lines := make([]v1.TimeEntryLineDTO, len(eligible))
	for i, entry := range eligible {
		line, err := BuildExportLine(entry, orgID)
		if err != nil {
			// A malformed payload aborts the whole batch before dispatch.
			return nil, err
		}
		lines[i] = line
	}

	results := s.dispatch(ctx, lines)
	outcome := partitionResults(orgID, eligible, results)

	if err := persistOutcome(db, orgID, outcome); err != nil {
		return nil, err
	}
	s.notifyLocked(orgID, outcome)

	return outcome, nil
}

func (s *SyncService) dryRunOutcome(eligible []core.TimeEntry, orgID string) *ExportOutcome {
	outcome := &ExportOutcome{DryRun: true}
	for _, entry := range eligible {
		res := ExportResult{
			EntryID:         entry.ID,
			ClientReference: ClientReference(orgID, entry.ID),
			Kind:            ResultSuccess,
		}
		if _, err := BuildExportLine(entry, orgID); err != nil {
			res.Kind = ResultFailed
			res.Error = err.Error()
		}
		outcome.Results = append(outcome.Results, res)
	}
	return outcome
}

// dispatch submits the lines in concurrent sub-batches and reassembles
// the per-line results in input order. A failed sub-batch marks only its
// own lines as failed; the other sub-batches stand.
func (s *SyncService) dispatch(ctx context.Context, lines []v1.TimeEntryLineDTO) []v1.TimeEntryLineResultDTO {
	results := make([]v1.TimeEntryLineResultDTO, len(lines))

	var wg sync.WaitGroup
	for start := 0; start < len(lines); start += exportBatchSize {
		end := start + exportBatchSize
		if end > len(lines) {
			end = len(lines)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			chunk, err := s.api.Export(ctx, lines[start:end])
			if err != nil {
				for i := start; i < end; i++ {
					results[i] = v1.TimeEntryLineResultDTO{Success: false, Error: err.Error()}
				}
				return
			}
			copy(results[start:end], chunk)
		}(start, end)
	}
	wg.Wait()

	return results
}

// partitionResults maps the per-line ledger results onto the outcome.
// Pure: persistence and notification happen afterwards.
func partitionResults(orgID string, eligible []core.TimeEntry, results []v1.TimeEntryLineResultDTO) *ExportOutcome {
	outcome := &ExportOutcome{}
	lockedWeeks := map[int]bool{}

	for i, entry := range eligible {
		res := results[i]
		out := ExportResult{
			EntryID:         entry.ID,
			ClientReference: ClientReference(orgID, entry.ID),
		}

		switch {
		case res.Success:
			out.Kind = ResultSuccess
			out.RemoteID = res.RemoteID

		case res.ErrorType == v1.ErrorTypePeriodLocked:
			// The accounting period is closed. Leave the entry untouched;
			// it stays eligible for a retry once the period reopens.
			out.Kind = ResultPeriodLocked
			out.Error = res.Error
			out.Week = res.WeekNumber
			if out.Week == 0 && entry.Shift != nil {
				out.Week = utils.ISOWeek(entry.Shift.Date)
			}
			lockedWeeks[out.Week] = true

		default:
			// Retryable. Attach the error for display, change nothing else.
			out.Kind = ResultFailed
			out.Error = res.Error
		}

		outcome.Results = append(outcome.Results, out)
	}

	for week := range lockedWeeks {
		outcome.LockedWeeks = append(outcome.LockedWeeks, week)
	}
	sort.Ints(outcome.LockedWeeks)

	return outcome
}

// persistOutcome records successes and retryable errors. Period-locked
// entries are deliberately not written at all.
func persistOutcome(db *gorm.DB, orgID string, outcome *ExportOutcome) error {
	now := time.Now()
	for _, res := range outcome.Results {
		switch res.Kind {
		case ResultSuccess:
			err := db.Model(&core.TimeEntry{}).
				Where("org_id = ? AND id = ?", orgID, res.EntryID).
				Updates(map[string]any{
					"status":     core.StatusSent,
					"remote_id":  res.RemoteID,
					"synced_at":  now,
					"sync_error": nil,
				}).Error
			if err != nil {
				return fmt.Errorf("failed to record export of entry %s: %w", res.EntryID, err)
			}

		case ResultFailed:
			err := db.Model(&core.TimeEntry{}).
				Where("org_id = ? AND id = ?", orgID, res.EntryID).
				Update("sync_error", res.Error).Error
			if err != nil {
				return fmt.Errorf("failed to record export error of entry %s: %w", res.EntryID, err)
			}
		}
	}
	return nil
}

func (s *SyncService) notifyLocked(orgID string, outcome *ExportOutcome) {
	if s.notify == nil {
		return
	}
	for _, week := range outcome.LockedWeeks {
		if err := s.notify.PeriodLocked(orgID, week); err != nil {
			fmt.Printf("Warning: period-locked notification for week %d failed: %v\n", week, err)
		}
	}
}

// VerifyRemoteStatus asks the ledger whether a previously exported entry
// still exists. Read-only reconciliation, no corrective write.
func (s *SyncService) VerifyRemoteStatus(ctx context.Context, entry *core.TimeEntry) (bool, error) {
	if entry.RemoteID == nil || *entry.RemoteID == "" {
		return false, &validation.ValidationError{Field: "remoteId", Message: "entry has never been exported"}
	}
	return s.api.Exists(ctx, *entry.RemoteID)
}
