package services

import "github.com/lasse00042-cmyk/HandUp/models"

// Reconcile advances a user record to currentDay, archiving the previous
// active day when the day has changed. It is invoked lazily before every
// counter read or write and unconditionally by the nightly scheduler; both
// triggers converge to the same state because the transition is a no-op once
// LastActiveDay matches currentDay.
//
// Returns true when the record changed and must be persisted.
func Reconcile(u *models.User, currentDay string) bool {
	if u.LastActiveDay == currentDay {
		return false
	}

	if u.LastActiveDay == "" {
		// Fresh record: adopt the day, nothing to archive.
		u.LastActiveDay = currentDay
		ensureDay(u, currentDay)
		return true
	}

	// Snapshot before reset. Overwriting an existing entry is safe: re-running
	// this step against not-yet-reset counters recomputes the same snapshot.
	snap := make(models.DayCounts, len(u.Subjects))
	for name, st := range u.Subjects {
		snap[name] = st.Count
	}
	u.History[u.LastActiveDay] = snap

	ensureDay(u, currentDay)
	for _, st := range u.Subjects {
		st.Count = 0
	}
	// Known gap: a crash after the reset above but before the assignment below
	// re-archives zeroed counts on the next reconcile, overwriting the correct
	// snapshot. LastActiveDay is updated last so a crash before the reset is
	// recovered by simply re-running the transition.
	u.LastActiveDay = currentDay
	return true
}

// ReconcileAll runs Reconcile over every record and reports whether any of
// them changed.
func ReconcileAll(users []*models.User, currentDay string) bool {
	changed := false
	for _, u := range users {
		if Reconcile(u, currentDay) {
			changed = true
		}
	}
	return changed
}

func ensureDay(u *models.User, day string) {
	if _, ok := u.History[day]; !ok {
		u.History[day] = models.DayCounts{}
	}
}
