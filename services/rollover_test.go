package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasse00042-cmyk/HandUp/models"
)

func newUser(lastActiveDay string) *models.User {
	u := &models.User{
		ID:            "u1",
		Name:          "Lena",
		Email:         "lena@example.com",
		LastActiveDay: lastActiveDay,
	}
	u.Normalize()
	return u
}

func TestReconcileFreshRecordAdoptsDay(t *testing.T) {
	u := newUser("")

	changed := Reconcile(u, "2024-01-05")

	assert.True(t, changed)
	assert.Equal(t, "2024-01-05", u.LastActiveDay)
	assert.Empty(t, u.History["2024-01-05"])
	assert.Contains(t, u.History, "2024-01-05")
}

func TestReconcileSameDayIsNoop(t *testing.T) {
	u := newUser("2024-01-05")
	u.Subjects["Math"] = &models.SubjectState{Count: 3}

	changed := Reconcile(u, "2024-01-05")

	assert.False(t, changed)
	assert.Equal(t, 3, u.Subjects["Math"].Count)
}

func TestReconcileArchivesAndResets(t *testing.T) {
	u := newUser("2024-01-01")
	u.Subjects["Math"] = &models.SubjectState{Count: 5, Goal: 3}

	changed := Reconcile(u, "2024-01-02")

	require.True(t, changed)
	assert.Equal(t, models.DayCounts{"Math": 5}, u.History["2024-01-01"])
	assert.Equal(t, 0, u.Subjects["Math"].Count)
	assert.Equal(t, 3, u.Subjects["Math"].Goal, "goals survive rollover")
	assert.Equal(t, "2024-01-02", u.LastActiveDay)
	assert.Contains(t, u.History, "2024-01-02")
}

func TestReconcileIsIdempotent(t *testing.T) {
	u := newUser("2024-01-01")
	u.Subjects["Math"] = &models.SubjectState{Count: 5}
	u.Subjects["Bio"] = &models.SubjectState{Count: 2}

	require.True(t, Reconcile(u, "2024-01-02"))
	snapshot := u.Clone()

	assert.False(t, Reconcile(u, "2024-01-02"))
	assert.Equal(t, snapshot.Subjects, u.Subjects)
	assert.Equal(t, snapshot.History, u.History)
	assert.Equal(t, snapshot.LastActiveDay, u.LastActiveDay)
}

func TestReconcileOverMultipleMissedDays(t *testing.T) {
	// Only the last active day is archived; skipped days stay absent.
	u := newUser("2024-01-01")
	u.Subjects["Math"] = &models.SubjectState{Count: 4}

	Reconcile(u, "2024-01-04")

	assert.Equal(t, models.DayCounts{"Math": 4}, u.History["2024-01-01"])
	assert.NotContains(t, u.History, "2024-01-02")
	assert.NotContains(t, u.History, "2024-01-03")
	assert.Equal(t, "2024-01-04", u.LastActiveDay)
}

func TestReconcileLazyAndScheduledConverge(t *testing.T) {
	lazy := newUser("2024-01-01")
	lazy.Subjects["Math"] = &models.SubjectState{Count: 7}
	scheduled := lazy.Clone()

	// Lazy trigger fires first for one copy, the scheduler for the other,
	// then the remaining trigger runs on both.
	Reconcile(lazy, "2024-01-02")
	ReconcileAll([]*models.User{scheduled}, "2024-01-02")
	Reconcile(scheduled, "2024-01-02")
	ReconcileAll([]*models.User{lazy}, "2024-01-02")

	assert.Equal(t, scheduled.Subjects, lazy.Subjects)
	assert.Equal(t, scheduled.History, lazy.History)
	assert.Equal(t, scheduled.LastActiveDay, lazy.LastActiveDay)
}

func TestReconcileAllReportsChange(t *testing.T) {
	current := newUser("2024-01-02")
	stale := newUser("2024-01-01")
	stale.Subjects["Art"] = &models.SubjectState{Count: 1}

	assert.False(t, ReconcileAll([]*models.User{current}, "2024-01-02"))
	assert.True(t, ReconcileAll([]*models.User{current, stale}, "2024-01-02"))
	assert.Equal(t, models.DayCounts{"Art": 1}, stale.History["2024-01-01"])
}
