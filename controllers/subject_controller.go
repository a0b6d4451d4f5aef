package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lasse00042-cmyk/HandUp/models"
	"github.com/lasse00042-cmyk/HandUp/services"
	"github.com/lasse00042-cmyk/HandUp/store"
	"github.com/lasse00042-cmyk/HandUp/utils"
)

// SubjectController manages the per-user subject counters and goals.
type SubjectController struct {
	store store.UserStore
	clock services.Clock
}

// NewSubjectController creates a new controller instance.
func NewSubjectController(st store.UserStore, clock services.Clock) *SubjectController {
	return &SubjectController{store: st, clock: clock}
}

// List returns the caller's live subjects and history. Reading across a day
// boundary triggers the lazy rollover so stale counters are never served.
func (s *SubjectController) List(ctx *gin.Context) {
	users, user, ok := s.loadUser(ctx)
	if !ok {
		return
	}

	if services.Reconcile(user, s.clock.Today()) {
		if err := s.store.SaveAll(ctx, users); err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to save rollover")
			return
		}
	}

	utils.Success(ctx, gin.H{
		"subjects": user.Subjects,
		"history":  user.History,
	})
}

// Add creates a subject counter if it does not exist yet.
func (s *SubjectController) Add(ctx *gin.Context) {
	var req struct {
		Subject string `json:"subject" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "missing required fields")
		return
	}
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Subject == "" {
		utils.Error(ctx, http.StatusBadRequest, 40011, "subject must not be empty")
		return
	}

	users, user, ok := s.loadUser(ctx)
	if !ok {
		return
	}

	services.Reconcile(user, s.clock.Today())
	services.EnsureSubject(user, req.Subject)
	s.persist(ctx, users, user.ID)
}

// Adjust applies a delta to a subject's live counter, clamped at zero.
func (s *SubjectController) Adjust(ctx *gin.Context) {
	var req struct {
		Subject string `json:"subject" binding:"required"`
		Delta   *int   `json:"delta" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40012, "missing required fields")
		return
	}

	users, user, ok := s.loadUser(ctx)
	if !ok {
		return
	}

	today := s.clock.Today()
	services.Reconcile(user, today)
	if err := services.AdjustCount(user, req.Subject, *req.Delta, today); err != nil {
		s.subjectError(ctx, err)
		return
	}
	s.persist(ctx, users, user.ID)
}

// SetGoal overwrites a subject's daily goal.
func (s *SubjectController) SetGoal(ctx *gin.Context) {
	var req struct {
		Subject string `json:"subject" binding:"required"`
		Goal    *int   `json:"goal" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40013, "missing required fields")
		return
	}
	if *req.Goal < 0 {
		utils.Error(ctx, http.StatusBadRequest, 40013, "goal must not be negative")
		return
	}

	users, user, ok := s.loadUser(ctx)
	if !ok {
		return
	}

	services.Reconcile(user, s.clock.Today())
	if err := services.SetGoal(user, req.Subject, *req.Goal); err != nil {
		s.subjectError(ctx, err)
		return
	}
	s.persist(ctx, users, user.ID)
}

// Delete removes a subject's live counter, leaving its history untouched.
func (s *SubjectController) Delete(ctx *gin.Context) {
	var req struct {
		Subject string `json:"subject" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40014, "missing required fields")
		return
	}

	users, user, ok := s.loadUser(ctx)
	if !ok {
		return
	}

	services.Reconcile(user, s.clock.Today())
	if err := services.DeleteSubject(user, req.Subject); err != nil {
		s.subjectError(ctx, err)
		return
	}
	s.persist(ctx, users, user.ID)
}

// Rename moves a subject to a new name, migrating its history entries.
func (s *SubjectController) Rename(ctx *gin.Context) {
	var req struct {
		OldName string `json:"old_name" binding:"required"`
		NewName string `json:"new_name" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40015, "missing required fields")
		return
	}
	req.NewName = strings.TrimSpace(req.NewName)
	if req.NewName == "" {
		utils.Error(ctx, http.StatusBadRequest, 40015, "new name must not be empty")
		return
	}

	users, user, ok := s.loadUser(ctx)
	if !ok {
		return
	}

	services.Reconcile(user, s.clock.Today())
	if err := services.RenameSubject(user, req.OldName, req.NewName); err != nil {
		s.subjectError(ctx, err)
		return
	}
	s.persist(ctx, users, user.ID)
}

func (s *SubjectController) loadUser(ctx *gin.Context) ([]*models.User, *models.User, bool) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return nil, nil, false
	}

	users, err := s.store.LoadAll(ctx)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to load users")
		return nil, nil, false
	}
	user, ok := findUser(users, userID)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return nil, nil, false
	}
	return users, user, true
}

func (s *SubjectController) persist(ctx *gin.Context, users []*models.User, userID string) {
	if err := s.store.SaveAll(ctx, users); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to save users")
		return
	}
	// Cached stats are stale after any counter mutation.
	utils.InvalidateByPrefix("cache:stats:" + userID)
	utils.Success(ctx, gin.H{"message": "ok"})
}

func (s *SubjectController) subjectError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSubjectExists):
		utils.Error(ctx, http.StatusBadRequest, 40016, err.Error())
	case errors.Is(err, services.ErrSubjectNotFound):
		utils.Error(ctx, http.StatusNotFound, 40411, err.Error())
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50013, "subject operation failed")
	}
}
