package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"vaktdata.no/vaktdata/ledger/v1/common"
)

// TimeEntryLineDTO is one exported entry in a batch. ClientReference is
// the idempotency key; the ledger deduplicates on it, so repeated
// submissions of the same entry never create duplicate records.
type TimeEntryLineDTO struct {
	ID              string  `json:"id"`
	PersonID        string  `json:"personId"`
	ProjectID       string  `json:"projectId"`
	ActivityID      string  `json:"activityId"`
	Date            string  `json:"date"` // yyyy-MM-dd
	Hours           float64 `json:"hours"`
	Comment         string  `json:"comment,omitempty"`
	ClientReference string  `json:"clientReference"`
}

// TimeEntryLineResultDTO is the per-line outcome, returned in input order.
type TimeEntryLineResultDTO struct {
	Success    bool   `json:"success"`
	RemoteID   string `json:"remoteId,omitempty"`
	Error      string `json:"error,omitempty"`
	ErrorType  string `json:"errorType,omitempty"`
	WeekNumber int    `json:"weekNumber,omitempty"`
}

// ErrorTypePeriodLocked marks a line refused because the ledger has
// closed the accounting period for its date.
const ErrorTypePeriodLocked = "period_locked"

type TimeEntryEndpoint struct {
	transport *Transport
}

// Export submits a batch of entries. One result per line, same order.
func (e *TimeEntryEndpoint) Export(ctx context.Context, lines []TimeEntryLineDTO) ([]TimeEntryLineResultDTO, error) {
	resp, err := e.transport.Post(ctx, "/api/v1/timeentries/export", lines, nil)
	if err != nil {
		return nil, err
	}

	var result common.StatusAPIResponse[[]TimeEntryLineResultDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	if !result.Status {
		return nil, fmt.Errorf("export failed: %v", result.Error)
	}
	if len(result.Data) != len(lines) {
		return nil, fmt.Errorf("export returned %d results for %d lines", len(result.Data), len(lines))
	}

	return result.Data, nil
}

// Exists checks whether a previously exported record is still present in
// the ledger. Read-only; used to detect external deletion.
func (e *TimeEntryEndpoint) Exists(ctx context.Context, remoteID string) (bool, error) {
	resp, err := e.transport.Get(ctx, fmt.Sprintf("/api/v1/timeentries/%s", remoteID), nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 300:
		return false, fmt.Errorf("GET timeentry %s failed with status code %d", remoteID, resp.StatusCode)
	}
	return true, nil
}
