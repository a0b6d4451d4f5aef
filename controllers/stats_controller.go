package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lasse00042-cmyk/HandUp/services"
	"github.com/lasse00042-cmyk/HandUp/store"
	"github.com/lasse00042-cmyk/HandUp/utils"
)

const statsCacheTTL = 5 * time.Minute

// StatsController reports weekly totals and the current streak, derived by
// replaying the history log.
type StatsController struct {
	store store.UserStore
	clock services.Clock
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(st store.UserStore, clock services.Clock) *StatsController {
	return &StatsController{store: st, clock: clock}
}

// GetStats returns a 7-day window of daily totals (shifted by ?offset= weeks)
// and the caller's current streak.
func (s *StatsController) GetStats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	// A malformed offset coerces to the current week.
	offset := 0
	if v := ctx.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}

	today := s.clock.Today()
	cacheKey := fmt.Sprintf("cache:stats:%s:%s:%d", userID, today, offset)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	users, err := s.store.LoadAll(ctx)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load users")
		return
	}
	user, ok := findUser(users, userID)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}

	if services.Reconcile(user, today) {
		if err := s.store.SaveAll(ctx, users); err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to save rollover")
			return
		}
	}

	labels, values := services.WeeklyTotals(user.History, today, offset)
	streak := services.CurrentStreak(user.History, today)

	payload := gin.H{
		"week": gin.H{
			"labels": labels,
			"values": values,
		},
		"current_streak": streak,
	}
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, statsCacheTTL)
	utils.Success(ctx, payload)
}
