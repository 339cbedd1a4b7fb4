package core

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
	"vaktdata.no/vaktdata/validation"
)

// MaxPageSize bounds any dynamically assembled query.
const MaxPageSize = 1000

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Sequences that would let a LIKE pattern terminate or comment out the
// statement. Rejected outright, not stripped.
var likeForbidden = []string{";", "--", "/*", "*/", "#"}

// SecureQuery re-validates every table, column and filter token coming up
// from UI collaborators before it is handed to gorm. It is a defensive
// allow-list layer, not a query planner: anything that does not look like
// a plain identifier never reaches the store.
type SecureQuery struct {
	db    *gorm.DB
	table string
	limit int
	err   error
}

// NewSecureQuery wraps a named table. The table name must be a plain
// identifier.
func NewSecureQuery(db *gorm.DB, table string) (*SecureQuery, error) {
	if !identPattern.MatchString(table) {
		return nil, &validation.ValidationError{Field: "table", Message: "invalid table name"}
	}
	return &SecureQuery{db: db.Table(table), table: table}, nil
}

func (q *SecureQuery) setErr(err error) *SecureQuery {
	if q.err == nil {
		q.err = err
	}
	return q
}

func (q *SecureQuery) column(name string) (string, error) {
	if !identPattern.MatchString(name) {
		return "", &validation.ValidationError{Field: "column", Message: fmt.Sprintf("invalid column name %q on table %s", name, q.table)}
	}
	return name, nil
}

// checkIDValue validates values destined for id-carrying columns as UUIDs.
func (q *SecureQuery) checkIDValue(column string, value any) error {
	if !strings.Contains(strings.ToLower(column), "id") {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return nil
	}
	_, err := validation.UUID(column, s)
	return err
}

// Eq adds an equality filter.
func (q *SecureQuery) Eq(column string, value any) *SecureQuery {
	if q.err != nil {
		return q
	}
	col, err := q.column(column)
	if err != nil {
		return q.setErr(err)
	}
	if err := q.checkIDValue(col, value); err != nil {
		return q.setErr(err)
	}
	q.db = q.db.Where(col+" = ?", value)
	return q
}

// In adds a set filter.
func (q *SecureQuery) In(column string, values []string) *SecureQuery {
	if q.err != nil {
		return q
	}
	col, err := q.column(column)
	if err != nil {
		return q.setErr(err)
	}
	for _, v := range values {
		if err := q.checkIDValue(col, v); err != nil {
			return q.setErr(err)
		}
	}
	q.db = q.db.Where(col+" IN ?", values)
	return q
}

// Between adds a range filter, typically on a date column.
func (q *SecureQuery) Between(column string, lo, hi any) *SecureQuery {
	if q.err != nil {
		return q
	}
	col, err := q.column(column)
	if err != nil {
		return q.setErr(err)
	}
	q.db = q.db.Where(col+" BETWEEN ? AND ?", lo, hi)
	return q
}

func checkLikePattern(pattern string) error {
	for _, seq := range likeForbidden {
		if strings.Contains(pattern, seq) {
			return &validation.ValidationError{Field: "pattern", Message: fmt.Sprintf("pattern must not contain %q", seq)}
		}
	}
	return nil
}

// Like adds a substring filter. The pattern is scanned for statement
// terminators and comment sequences before it is bound.
func (q *SecureQuery) Like(column, pattern string) *SecureQuery {
	if q.err != nil {
		return q
	}
	col, err := q.column(column)
	if err != nil {
		return q.setErr(err)
	}
	if err := checkLikePattern(pattern); err != nil {
		return q.setErr(err)
	}
	q.db = q.db.Where(col+" LIKE ?", "%"+pattern+"%")
	return q
}

// ILike is the case-insensitive variant of Like.
func (q *SecureQuery) ILike(column, pattern string) *SecureQuery {
	if q.err != nil {
		return q
	}
	col, err := q.column(column)
	if err != nil {
		return q.setErr(err)
	}
	if err := checkLikePattern(pattern); err != nil {
		return q.setErr(err)
	}
	q.db = q.db.Where("LOWER("+col+") LIKE LOWER(?)", "%"+pattern+"%")
	return q
}

// OrderBy orders on a validated column. dir other than "desc" means
// ascending.
func (q *SecureQuery) OrderBy(column, dir string) *SecureQuery {
	if q.err != nil {
		return q
	}
	col, err := q.column(column)
	if err != nil {
		return q.setErr(err)
	}
	direction := "ASC"
	if strings.EqualFold(dir, "desc") {
		direction = "DESC"
	}
	q.db = q.db.Order(col + " " + direction)
	return q
}

func capLimit(n int) int {
	if n <= 0 || n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// Limit caps the page size at MaxPageSize.
func (q *SecureQuery) Limit(n int) *SecureQuery {
	if q.err != nil {
		return q
	}
	q.limit = capLimit(n)
	q.db = q.db.Limit(q.limit)
	return q
}

// Range applies offset and a capped limit.
func (q *SecureQuery) Range(offset, limit int) *SecureQuery {
	if q.err != nil {
		return q
	}
	if offset < 0 {
		offset = 0
	}
	q.db = q.db.Offset(offset)
	return q.Limit(limit)
}

// Err reports the first validation failure on the chain.
func (q *SecureQuery) Err() error {
	return q.err
}

// Find executes the assembled query, unless a token on the chain was
// rejected, in which case nothing reaches the store.
func (q *SecureQuery) Find(dest any) error {
	if q.err != nil {
		return q.err
	}
	return q.db.Find(dest).Error
}

// Count executes a count with the assembled filters.
func (q *SecureQuery) Count(out *int64) error {
	if q.err != nil {
		return q.err
	}
	return q.db.Count(out).Error
}
