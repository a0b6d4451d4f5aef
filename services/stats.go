package services

import (
	"time"

	"github.com/lasse00042-cmyk/HandUp/models"
)

// maxStreakDays bounds the backward walk when computing streaks.
const maxStreakDays = 365

// WeeklyTotals computes a 7-day window of daily activity totals ending at
// referenceDay shifted by weekOffset weeks. Labels and values are aligned and
// ordered oldest first; days without a history entry count as zero.
func WeeklyTotals(history models.HistoryMap, referenceDay string, weekOffset int) ([]string, []int) {
	ref, _ := time.Parse(DayFormat, referenceDay)
	end := ref.AddDate(0, 0, 7*weekOffset)

	labels := make([]string, 0, 7)
	values := make([]int, 0, 7)
	for i := 6; i >= 0; i-- {
		day := end.AddDate(0, 0, -i).Format(DayFormat)
		labels = append(labels, day)
		values = append(values, dayTotal(history[day]))
	}
	return labels, values
}

// CurrentStreak counts consecutive days with nonzero activity, walking
// backward from referenceDay inclusive. A reference day without activity
// yields zero.
func CurrentStreak(history models.HistoryMap, referenceDay string) int {
	ref, _ := time.Parse(DayFormat, referenceDay)

	streak := 0
	for i := 0; i < maxStreakDays; i++ {
		day := ref.AddDate(0, 0, -i).Format(DayFormat)
		if dayTotal(history[day]) == 0 {
			break
		}
		streak++
	}
	return streak
}

func dayTotal(counts models.DayCounts) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
