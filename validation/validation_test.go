package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{
			name:  "Valid",
			value: "9b2d7a52-0b6e-4a0d-9f3c-1c2d3e4f5a6b",
			want:  "9b2d7a52-0b6e-4a0d-9f3c-1c2d3e4f5a6b",
		},
		{
			name:  "Uppercase is canonicalized",
			value: "9B2D7A52-0B6E-4A0D-9F3C-1C2D3E4F5A6B",
			want:  "9b2d7a52-0b6e-4a0d-9f3c-1c2d3e4f5a6b",
		},
		{
			name:  "Surrounding whitespace trimmed",
			value: "  9b2d7a52-0b6e-4a0d-9f3c-1c2d3e4f5a6b ",
			want:  "9b2d7a52-0b6e-4a0d-9f3c-1c2d3e4f5a6b",
		},
		{
			name:    "Not a UUID",
			value:   "not-a-uuid",
			wantErr: true,
		},
		{
			name:    "Empty",
			value:   "",
			wantErr: true,
		},
		{
			name:    "Injection attempt",
			value:   "1; DROP TABLE shifts",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UUID("uuid", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "uuid", ve.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHours(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		want    float64
		wantErr bool
	}{
		{name: "Zero", value: 0, want: 0},
		{name: "Full day", value: 24, want: 24},
		{name: "Rounded to two decimals", value: 7.456, want: 7.46},
		{name: "Already two decimals", value: 3.5, want: 3.5},
		{name: "Negative", value: -0.5, wantErr: true},
		{name: "Above range", value: 24.01, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Hours("hours", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate(t *testing.T) {
	d, err := Date("date", "2025-03-17")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, 17, d.Day())

	_, err = Date("date", "17.03.2025")
	assert.Error(t, err)

	_, err = Date("date", "2025-13-01")
	assert.Error(t, err)
}

func TestWeekNumberAndYear(t *testing.T) {
	for _, ok := range []int{1, 26, 53} {
		_, err := WeekNumber("week", ok)
		assert.NoError(t, err, "week %d", ok)
	}
	for _, bad := range []int{0, 54, -3} {
		_, err := WeekNumber("week", bad)
		assert.Error(t, err, "week %d", bad)
	}

	_, err := Year("year", 2025)
	assert.NoError(t, err)
	_, err = Year("year", 1999)
	assert.Error(t, err)
	_, err = Year("year", 2101)
	assert.Error(t, err)
}

func TestEntryStatus(t *testing.T) {
	for _, s := range []string{"utkast", "klar", "godkjent", "sendt"} {
		got, err := EntryStatus("status", s)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := EntryStatus("status", "approved")
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)
}

func TestFreeText(t *testing.T) {
	got, err := FreeText("note", "  overtid etter avtale  ", 0)
	require.NoError(t, err)
	assert.Equal(t, "overtid etter avtale", got)

	got, err = FreeText("note", `<script>alert("x")</script>`, 0)
	require.NoError(t, err)
	assert.NotContains(t, got, "<script>")

	long := make([]byte, MaxFreeTextLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = FreeText("note", string(long), 0)
	assert.Error(t, err)
}
