package validation

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidationError reports a single rejected input field. Callers branch on
// the error type rather than parsing messages.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fail(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Entry status wire values. Stable, do not rename. Single source: the
// core.EntryStatus constants are derived from these.
const (
	StatusDraft    = "utkast"
	StatusReady    = "klar"
	StatusApproved = "godkjent"
	StatusSent     = "sendt"
)

var EntryStatuses = []string{StatusDraft, StatusReady, StatusApproved, StatusSent}

var OvertimeTypes = []string{"normal", "overtid50", "overtid100"}

const (
	MaxFreeTextLength = 500
	MinYear           = 2000
	MaxYear           = 2100
)

// UUID trims and parses value, returning the canonical lowercase form.
func UUID(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	id, err := uuid.Parse(value)
	if err != nil {
		return "", fail(field, "must be a valid UUID")
	}
	return id.String(), nil
}

// UUIDs validates every element and returns the canonical forms.
func UUIDs(field string, values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		id, err := UUID(field, v)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// Date parses a yyyy-MM-dd value.
func Date(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fail(field, "must be a date on the form yyyy-MM-dd")
	}
	return t, nil
}

// Hours validates the 0..24 range first and only then rounds to two
// decimal places. Out-of-range input is rejected, never clamped.
func Hours(field string, value float64) (float64, error) {
	if math.IsNaN(value) || value < 0 || value > 24 {
		return 0, fail(field, "must be between 0 and 24")
	}
	return math.Round(value*100) / 100, nil
}

func WeekNumber(field string, value int) (int, error) {
	if value < 1 || value > 53 {
		return 0, fail(field, "must be a week number between 1 and 53")
	}
	return value, nil
}

func Year(field string, value int) (int, error) {
	if value < MinYear || value > MaxYear {
		return 0, fail(field, "must be a year between %d and %d", MinYear, MaxYear)
	}
	return value, nil
}

// OneOf checks value against an explicit allow list.
func OneOf(field, value string, allowed []string) (string, error) {
	value = strings.TrimSpace(value)
	for _, a := range allowed {
		if value == a {
			return value, nil
		}
	}
	return "", fail(field, "must be one of %s", strings.Join(allowed, ", "))
}

func EntryStatus(field, value string) (string, error) {
	return OneOf(field, value, EntryStatuses)
}

func OvertimeType(field, value string) (string, error) {
	return OneOf(field, value, OvertimeTypes)
}

// FreeText trims, enforces the length cap and HTML-escapes the result.
// The cap is a hard limit, not a truncation point.
func FreeText(field, value string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = MaxFreeTextLength
	}
	value = strings.TrimSpace(value)
	if len(value) > maxLen {
		return "", fail(field, "must be at most %d characters", maxLen)
	}
	return html.EscapeString(value), nil
}
