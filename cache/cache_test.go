package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "staffing:org-1:2025-03-01:2025-03-07", Key("staffing", "org-1", "2025-03-01", "2025-03-07"))
	assert.Equal(t, "projects", Key("projects"))
}

func TestGetWithinTier(t *testing.T) {
	c := New()
	base := time.Now()
	c.now = func() time.Time { return base }

	fetches := 0
	load := func(key string) any {
		if v, ok := c.Get(key); ok {
			return v
		}
		fetches++
		c.Set(key, "aggregated", TTLStaffing)
		return "aggregated"
	}

	key := Key("staffing", "org-1", "2025-03-01", "2025-03-07")
	assert.Equal(t, "aggregated", load(key))
	assert.Equal(t, 1, fetches)

	// Repeated reads inside the window are served from the cache.
	c.now = func() time.Time { return base.Add(59 * time.Second) }
	assert.Equal(t, "aggregated", load(key))
	assert.Equal(t, "aggregated", load(key))
	assert.Equal(t, 1, fetches)

	// Past the window exactly one re-fetch repopulates the entry.
	c.now = func() time.Time { return base.Add(61 * time.Second) }
	assert.Equal(t, "aggregated", load(key))
	assert.Equal(t, 2, fetches)
	assert.Equal(t, "aggregated", load(key))
	assert.Equal(t, 2, fetches)
}

func TestExpiredValueEvictedOnRead(t *testing.T) {
	c := New()
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("projects:org-1", []string{"a"}, TTLProjects)
	assert.Equal(t, 1, c.Len())

	c.now = func() time.Time { return base.Add(TTLProjects + time.Second) }
	_, ok := c.Get("projects:org-1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestTiersExpireIndependently(t *testing.T) {
	c := New()
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set(Key("staffing", "org-1"), 1, TTLStaffing)
	c.Set(Key("employees", "org-1"), 2, TTLEmployees)
	c.Set(Key("calendar", "2025", "12"), 3, TTLCalendarDays)

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, ok := c.Get(Key("staffing", "org-1"))
	assert.False(t, ok)
	_, ok = c.Get(Key("employees", "org-1"))
	assert.True(t, ok)
	_, ok = c.Get(Key("calendar", "2025", "12"))
	assert.True(t, ok)
}

func TestClear(t *testing.T) {
	c := New()
	c.Set(Key("staffing", "org-1", "a"), 1, TTLStaffing)
	c.Set(Key("staffing", "org-2", "b"), 2, TTLStaffing)
	c.Set(Key("projects", "org-1"), 3, TTLProjects)

	c.Clear("staffing:org-1")
	_, ok := c.Get(Key("staffing", "org-1", "a"))
	assert.False(t, ok)
	_, ok = c.Get(Key("staffing", "org-2", "b"))
	assert.True(t, ok)
	_, ok = c.Get(Key("projects", "org-1"))
	assert.True(t, ok)

	c.Clear("")
	assert.Equal(t, 0, c.Len())
}
