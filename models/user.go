package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubjectState is one live counter with its optional daily goal (0 = unset).
type SubjectState struct {
	Count int `json:"count"`
	Goal  int `json:"goal"`
}

// DayCounts maps subject name to the count recorded for one calendar day.
type DayCounts map[string]int

// SubjectMap maps subject name to its live state for the active day.
type SubjectMap map[string]*SubjectState

// HistoryMap maps ISO day (YYYY-MM-DD) to that day's per-subject counts.
// Closed days are immutable snapshots; the active day's entry is a live mirror.
type HistoryMap map[string]DayCounts

// User represents an account with its subject counters and daily history.
// Passwords are stored as bcrypt hashes only.
type User struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Name          string     `gorm:"size:64;not null" json:"name"`
	Email         string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"size:255" json:"-"`
	Subjects      SubjectMap `gorm:"serializer:json" json:"subjects"`
	History       HistoryMap `gorm:"serializer:json" json:"history"`
	LastActiveDay string     `gorm:"size:10" json:"last_active_day"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BeforeCreate assigns an ID when missing and guarantees non-nil maps.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Normalize()
	return nil
}

// AfterFind normalizes records loaded from storage.
func (u *User) AfterFind(tx *gorm.DB) error {
	u.Normalize()
	return nil
}

// Normalize coerces a record into its fixed shape: non-nil maps, non-nil
// subject states, and counts/goals clamped to be non-negative. Stored rows
// written by older clients may carry nulls or negative values.
func (u *User) Normalize() {
	if u.Subjects == nil {
		u.Subjects = SubjectMap{}
	}
	for name, st := range u.Subjects {
		if st == nil {
			u.Subjects[name] = &SubjectState{}
			continue
		}
		if st.Count < 0 {
			st.Count = 0
		}
		if st.Goal < 0 {
			st.Goal = 0
		}
	}
	if u.History == nil {
		u.History = HistoryMap{}
	}
	for day, counts := range u.History {
		if counts == nil {
			u.History[day] = DayCounts{}
			continue
		}
		for subj, n := range counts {
			if n < 0 {
				counts[subj] = 0
			}
		}
	}
}

// Clone returns a deep copy of the user record.
func (u *User) Clone() *User {
	cp := *u
	cp.Subjects = make(SubjectMap, len(u.Subjects))
	for name, st := range u.Subjects {
		if st == nil {
			cp.Subjects[name] = nil
			continue
		}
		s := *st
		cp.Subjects[name] = &s
	}
	cp.History = make(HistoryMap, len(u.History))
	for day, counts := range u.History {
		dc := make(DayCounts, len(counts))
		for subj, n := range counts {
			dc[subj] = n
		}
		cp.History[day] = dc
	}
	return &cp
}

// Public returns the fields safe to expose over the API.
func (u *User) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	}
}
