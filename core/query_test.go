package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
	"vaktdata.no/vaktdata/validation"
)

func dryRunDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestNewSecureQueryTableName(t *testing.T) {
	db := dryRunDB(t)

	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{name: "Plain identifier", table: "time_entries"},
		{name: "Leading underscore", table: "_audit"},
		{name: "Statement terminator", table: "shifts; DROP TABLE shifts", wantErr: true},
		{name: "Quote", table: `shifts"`, wantErr: true},
		{name: "Leading digit", table: "1shifts", wantErr: true},
		{name: "Empty", table: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSecureQuery(db, tt.table)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSecureQueryColumnValidation(t *testing.T) {
	db := dryRunDB(t)

	q, err := NewSecureQuery(db, "shifts")
	require.NoError(t, err)
	err = q.Eq("date; --", "2025-01-01").Err()
	var ve *validation.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "column", ve.Field)
	assert.Contains(t, ve.Message, "shifts")

	q, _ = NewSecureQuery(db, "shifts")
	assert.Error(t, q.OrderBy("date)", "asc").Err())

	// A rejected token keeps the chain poisoned; Find never executes.
	q, _ = NewSecureQuery(db, "shifts")
	var out []Shift
	assert.Error(t, q.Eq("bad column", "x").Eq("org_id", "9b2d7a52-0b6e-4a0d-9f3c-1c2d3e4f5a6b").Find(&out))
}

func TestSecureQueryIDValuesMustBeUUIDs(t *testing.T) {
	db := dryRunDB(t)

	q, _ := NewSecureQuery(db, "shifts")
	assert.Error(t, q.Eq("org_id", "not-a-uuid").Err())

	q, _ = NewSecureQuery(db, "shifts")
	assert.Error(t, q.In("person_id", []string{"9b2d7a52-0b6e-4a0d-9f3c-1c2d3e4f5a6b", "oops"}).Err())

	q, _ = NewSecureQuery(db, "shifts")
	assert.NoError(t, q.Eq("org_id", "9b2d7a52-0b6e-4a0d-9f3c-1c2d3e4f5a6b").Err())

	// Non-id columns take arbitrary values.
	q, _ = NewSecureQuery(db, "projects")
	assert.NoError(t, q.Eq("name", "Kai & Sønn; AS").Err())
}

func TestSecureQueryLikePatterns(t *testing.T) {
	db := dryRunDB(t)

	for _, bad := range []string{"x;y", "x--", "x/*", "*/x", "x#"} {
		q, _ := NewSecureQuery(db, "projects")
		assert.Error(t, q.Like("name", bad).Err(), "pattern %q", bad)
	}

	q, _ := NewSecureQuery(db, "projects")
	assert.NoError(t, q.Like("name", "bygg").Err())

	q, _ = NewSecureQuery(db, "projects")
	assert.NoError(t, q.ILike("name", "BYGG").Err())
}

func TestSecureQueryPageCap(t *testing.T) {
	db := dryRunDB(t)

	q, _ := NewSecureQuery(db, "time_entries")
	assert.Equal(t, MaxPageSize, q.Limit(5000).limit)

	q, _ = NewSecureQuery(db, "time_entries")
	assert.Equal(t, 50, q.Limit(50).limit)

	q, _ = NewSecureQuery(db, "time_entries")
	assert.Equal(t, MaxPageSize, q.Range(10, -1).limit)

	assert.Equal(t, MaxPageSize, capLimit(0))
	assert.Equal(t, MaxPageSize, capLimit(MaxPageSize+1))
	assert.Equal(t, 1, capLimit(1))
}
