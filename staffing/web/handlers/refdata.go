package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"vaktdata.no/vaktdata/cache"
	"vaktdata.no/vaktdata/core"
	"vaktdata.no/vaktdata/utils"
	"vaktdata.no/vaktdata/validation"
	"vaktdata.no/vaktdata/web/common"
)

// ListPeople serves the employee list through its cache tier. The read
// goes through the guarded query builder like every identifier-bearing
// fetch.
func (ep *Endpoint) ListPeople(c *gin.Context) {
	orgID, ok := ep.orgID(c)
	if !ok {
		return
	}

	key := cache.Key("people", orgID)
	if cached, hit := ep.Cache.Get(key); hit {
		c.JSON(http.StatusOK, common.NewSuccessResponse(cached))
		return
	}

	var people []core.Person
	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		q, err := core.NewSecureQuery(db, "people")
		if err != nil {
			return err
		}
		return q.Eq("org_id", orgID).
			OrderBy("surname", "asc").
			OrderBy("first_name", "asc").
			Limit(core.MaxPageSize).
			Find(&people)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	ep.Cache.Set(key, people, cache.TTLEmployees)
	c.JSON(http.StatusOK, common.NewSuccessResponse(people))
}

func (ep *Endpoint) ListProjects(c *gin.Context) {
	orgID, ok := ep.orgID(c)
	if !ok {
		return
	}

	key := cache.Key("projects", orgID)
	if cached, hit := ep.Cache.Get(key); hit {
		c.JSON(http.StatusOK, common.NewSuccessResponse(cached))
		return
	}

	var projects []core.Project
	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		q, err := core.NewSecureQuery(db, "projects")
		if err != nil {
			return err
		}
		return q.Eq("org_id", orgID).
			OrderBy("name", "asc").
			Limit(core.MaxPageSize).
			Find(&projects)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	ep.Cache.Set(key, projects, cache.TTLProjects)
	c.JSON(http.StatusOK, common.NewSuccessResponse(projects))
}

// ProjectColors serves the id->color map on its own, slower tier: colors
// change far less often than project membership.
func (ep *Endpoint) ProjectColors(c *gin.Context) {
	orgID, ok := ep.orgID(c)
	if !ok {
		return
	}

	key := cache.Key("projectcolors", orgID)
	if cached, hit := ep.Cache.Get(key); hit {
		c.JSON(http.StatusOK, common.NewSuccessResponse(cached))
		return
	}

	var projects []core.Project
	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		q, err := core.NewSecureQuery(db, "projects")
		if err != nil {
			return err
		}
		return q.Eq("org_id", orgID).Limit(core.MaxPageSize).Find(&projects)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	colors := make(map[string]string, len(projects))
	for _, p := range projects {
		colors[p.ID] = p.Color
	}

	ep.Cache.Set(key, colors, cache.TTLProjectColors)
	c.JSON(http.StatusOK, common.NewSuccessResponse(colors))
}

type calendarDay struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

// CalendarWeek returns the dates of one ISO week. Pure calendar
// metadata, so it sits on the daily tier.
func (ep *Endpoint) CalendarWeek(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err == nil {
		year, err = validation.Year("year", year)
	}
	if err != nil {
		writeError(c, &validation.ValidationError{Field: "year", Message: "must be a valid year"})
		return
	}

	week, err := strconv.Atoi(c.Query("week"))
	if err == nil {
		week, err = validation.WeekNumber("week", week)
	}
	if err != nil {
		writeError(c, &validation.ValidationError{Field: "week", Message: "must be a week number between 1 and 53"})
		return
	}

	key := cache.Key("calendar", strconv.Itoa(year), strconv.Itoa(week))
	if cached, hit := ep.Cache.Get(key); hit {
		c.JSON(http.StatusOK, common.NewSuccessResponse(cached))
		return
	}

	days := isoWeekDays(year, week)
	ep.Cache.Set(key, days, cache.TTLCalendarDays)
	c.JSON(http.StatusOK, common.NewSuccessResponse(days))
}

// isoWeekDays returns Monday..Sunday of the given ISO week.
func isoWeekDays(year, week int) []calendarDay {
	// Jan 4 is always in ISO week 1.
	t := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	for t.Weekday() != time.Monday {
		t = t.AddDate(0, 0, -1)
	}
	t = t.AddDate(0, 0, (week-1)*7)

	days := make([]calendarDay, 7)
	for i := 0; i < 7; i++ {
		d := t.AddDate(0, 0, i)
		days[i] = calendarDay{
			Date:    d.Format(utils.DateLayout),
			Weekday: d.Weekday().String(),
		}
	}
	return days
}
