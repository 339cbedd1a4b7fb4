package core

import (
	"time"

	"vaktdata.no/vaktdata/validation"
)

// EntryStatus is the persisted time-entry status. The wire values live in
// the validation package, the single source for them.
type EntryStatus string

const (
	StatusDraft    = EntryStatus(validation.StatusDraft)
	StatusReady    = EntryStatus(validation.StatusReady)
	StatusApproved = EntryStatus(validation.StatusApproved)
	StatusSent     = EntryStatus(validation.StatusSent)
)

type Person struct {
	ID        string  `gorm:"primaryKey;column:id;size:36"`
	OrgID     string  `gorm:"column:org_id;size:36;index;not null"`
	FirstName string  `gorm:"column:first_name"`
	Surname   string  `gorm:"column:surname"`
	Email     *string `gorm:"column:email"`
}

func (Person) TableName() string {
	return "people"
}

type Project struct {
	ID    string `gorm:"primaryKey;column:id;size:36"`
	OrgID string `gorm:"column:org_id;size:36;index;not null"`
	Name  string `gorm:"column:name"`
	Color string `gorm:"column:color;size:7"`
}

func (Project) TableName() string {
	return "projects"
}

type Activity struct {
	ID    string `gorm:"primaryKey;column:id;size:36"`
	OrgID string `gorm:"column:org_id;size:36;index;not null"`
	Name  string `gorm:"column:name"`
}

func (Activity) TableName() string {
	return "activities"
}

// Shift is one scheduled day of work for one person. Immutable once time
// entries reference it, except for project reassignment.
type Shift struct {
	ID        string    `gorm:"primaryKey;column:id;size:36"`
	OrgID     string    `gorm:"column:org_id;size:36;index;not null"`
	Date      time.Time `gorm:"column:date;type:date;index"`
	PersonID  string    `gorm:"column:person_id;size:36;not null"`
	ProjectID string    `gorm:"column:project_id;size:36"`

	Person  Person      `gorm:"foreignKey:PersonID"`
	Project Project     `gorm:"foreignKey:ProjectID"`
	Entries []TimeEntry `gorm:"foreignKey:ShiftID"`
}

func (Shift) TableName() string {
	return "shifts"
}

// TimeEntry holds logged hours against a shift. RemoteID is set if and
// only if a ledger export of this entry previously succeeded.
type TimeEntry struct {
	ID         string      `gorm:"primaryKey;column:id;size:36"`
	OrgID      string      `gorm:"column:org_id;size:36;index;not null"`
	ShiftID    string      `gorm:"column:shift_id;size:36;index;not null"`
	Hours      float64     `gorm:"column:hours;type:decimal(10,2)"`
	ActivityID string      `gorm:"column:activity_id;size:36"`
	WageType   string      `gorm:"column:wage_type;size:50"`
	IsOvertime bool        `gorm:"column:is_overtime;not null"`
	Status     EntryStatus `gorm:"column:status;size:20;not null"`
	Note       string      `gorm:"column:note;size:500"`

	ApprovedAt *time.Time `gorm:"column:approved_at"`
	ApprovedBy *string    `gorm:"column:approved_by;size:36"`
	SyncedAt   *time.Time `gorm:"column:synced_at"`
	RemoteID   *string    `gorm:"column:remote_id;size:36"`
	SyncError  *string    `gorm:"column:sync_error;size:500"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP"`

	Shift    *Shift   `gorm:"foreignKey:ShiftID"`
	Activity Activity `gorm:"foreignKey:ActivityID"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}
