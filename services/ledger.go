package services

import "github.com/lasse00042-cmyk/HandUp/models"

// Subject ledger operations. All of them mutate the record in memory only;
// the caller is responsible for persisting the user table afterwards.

// EnsureSubject creates an empty counter for name if absent. Idempotent.
func EnsureSubject(u *models.User, name string) {
	if _, ok := u.Subjects[name]; !ok {
		u.Subjects[name] = &models.SubjectState{}
	}
}

// AdjustCount applies delta to the subject's live counter, clamping at zero,
// and mirrors the new value into the in-progress day's history entry so that
// history always carries an up-to-date row for the active day.
func AdjustCount(u *models.User, name string, delta int, today string) error {
	st, ok := u.Subjects[name]
	if !ok {
		return ErrSubjectNotFound
	}
	st.Count += delta
	if st.Count < 0 {
		st.Count = 0
	}
	if _, ok := u.History[today]; !ok {
		u.History[today] = models.DayCounts{}
	}
	u.History[today][name] = st.Count
	return nil
}

// SetGoal overwrites the subject's daily goal.
func SetGoal(u *models.User, name string, goal int) error {
	st, ok := u.Subjects[name]
	if !ok {
		return ErrSubjectNotFound
	}
	st.Goal = goal
	return nil
}

// DeleteSubject removes the live counter. Historical snapshots under the
// name are left untouched.
func DeleteSubject(u *models.User, name string) error {
	if _, ok := u.Subjects[name]; !ok {
		return ErrSubjectNotFound
	}
	delete(u.Subjects, name)
	return nil
}

// RenameSubject moves the live counter from oldName to newName and rewrites
// every history day entry recorded under the old name, preserving counts.
func RenameSubject(u *models.User, oldName, newName string) error {
	st, ok := u.Subjects[oldName]
	if !ok {
		return ErrSubjectNotFound
	}
	if _, ok := u.Subjects[newName]; ok {
		return ErrSubjectExists
	}

	u.Subjects[newName] = st
	delete(u.Subjects, oldName)

	for _, counts := range u.History {
		if n, ok := counts[oldName]; ok {
			counts[newName] = n
			delete(counts, oldName)
		}
	}
	return nil
}
