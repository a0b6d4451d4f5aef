package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasse00042-cmyk/HandUp/models"
	"github.com/lasse00042-cmyk/HandUp/store"
)

func newStatsController(st *store.MemoryStore, day string) *StatsController {
	now, _ := time.Parse("2006-01-02", day)
	return NewStatsController(st, &fakeClock{now: now})
}

func TestGetStatsCurrentWeek(t *testing.T) {
	setupTest(t)
	st := store.NewMemoryStore()
	seedUser(t, st, "2024-01-03",
		models.SubjectMap{"Math": {Count: 2}},
		models.HistoryMap{
			"2024-01-03": {"Math": 2, "Bio": 1},
			"2024-01-02": {"Math": 1},
		})
	sc := newStatsController(st, "2024-01-03")

	c, w := newTestContext(t, http.MethodGet, "/api/v1/stats", "", "u1")
	sc.GetStats(c)

	requireStatus(t, w, http.StatusOK)
	data, ok := decodeEnvelope(t, w).Data.(map[string]interface{})
	require.True(t, ok)

	week, ok := data["week"].(map[string]interface{})
	require.True(t, ok)
	labels, ok := week["labels"].([]interface{})
	require.True(t, ok)
	values, ok := week["values"].([]interface{})
	require.True(t, ok)
	require.Len(t, labels, 7)
	require.Len(t, values, 7)
	assert.Equal(t, "2023-12-28", labels[0])
	assert.Equal(t, "2024-01-03", labels[6])
	assert.Equal(t, float64(3), values[6])
	assert.Equal(t, float64(2), data["current_streak"])
}

func TestGetStatsOffsetShiftsWindow(t *testing.T) {
	setupTest(t)
	st := store.NewMemoryStore()
	seedUser(t, st, "2024-01-15", nil,
		models.HistoryMap{"2024-01-08": {"Math": 4}})
	sc := newStatsController(st, "2024-01-15")

	c, w := newTestContext(t, http.MethodGet, "/api/v1/stats?offset=-1", "", "u1")
	sc.GetStats(c)

	requireStatus(t, w, http.StatusOK)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	week := data["week"].(map[string]interface{})
	labels := week["labels"].([]interface{})
	values := week["values"].([]interface{})
	assert.Equal(t, "2024-01-02", labels[0])
	assert.Equal(t, "2024-01-08", labels[6])
	assert.Equal(t, float64(4), values[6])
}

func TestGetStatsMalformedOffsetFallsBackToCurrentWeek(t *testing.T) {
	setupTest(t)
	st := store.NewMemoryStore()
	seedUser(t, st, "2024-01-15", nil, nil)
	sc := newStatsController(st, "2024-01-15")

	c, w := newTestContext(t, http.MethodGet, "/api/v1/stats?offset=banana", "", "u1")
	sc.GetStats(c)

	requireStatus(t, w, http.StatusOK)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	week := data["week"].(map[string]interface{})
	labels := week["labels"].([]interface{})
	assert.Equal(t, "2024-01-15", labels[6])
}

func TestGetStatsRollsOverBeforeComputing(t *testing.T) {
	setupTest(t)
	st := store.NewMemoryStore()
	seedUser(t, st, "2024-01-14",
		models.SubjectMap{"Math": {Count: 6}},
		nil)
	sc := newStatsController(st, "2024-01-15")

	c, w := newTestContext(t, http.MethodGet, "/api/v1/stats", "", "u1")
	sc.GetStats(c)

	requireStatus(t, w, http.StatusOK)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	week := data["week"].(map[string]interface{})
	values := week["values"].([]interface{})
	assert.Equal(t, float64(6), values[5], "yesterday's counters land in history before totals run")
	assert.Equal(t, float64(0), values[6])

	u := loadUser(t, st, "u1")
	assert.Equal(t, "2024-01-15", u.LastActiveDay)
}

func TestGetStatsUnknownUser(t *testing.T) {
	setupTest(t)
	st := store.NewMemoryStore()
	sc := newStatsController(st, "2024-01-15")

	c, w := newTestContext(t, http.MethodGet, "/api/v1/stats", "", "nobody")
	sc.GetStats(c)

	requireStatus(t, w, http.StatusNotFound)
}
