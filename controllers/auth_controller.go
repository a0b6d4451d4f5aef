package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lasse00042-cmyk/HandUp/models"
	"github.com/lasse00042-cmyk/HandUp/services"
	"github.com/lasse00042-cmyk/HandUp/store"
	"github.com/lasse00042-cmyk/HandUp/utils"
)

const tokenValidity = 72 * time.Hour

// AuthController handles registration, login and session endpoints.
type AuthController struct {
	store store.UserStore
	clock services.Clock
}

// NewAuthController creates an AuthController.
func NewAuthController(st store.UserStore, clock services.Clock) *AuthController {
	return &AuthController{store: st, clock: clock}
}

// Register handles account registration with bcrypt hashing.
func (a *AuthController) Register(ctx *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required,min=1,max=64"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40002, "name must not be empty")
		return
	}

	users, err := a.store.LoadAll(ctx)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to load users")
		return
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, req.Email) {
			utils.Error(ctx, http.StatusBadRequest, 40003, "email already registered")
			return
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to hash password")
		return
	}

	user := &models.User{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  hash,
		LastActiveDay: a.clock.Today(),
	}
	user.Normalize()

	users = append(users, user)
	if err := a.store.SaveAll(ctx, users); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to save user")
		return
	}

	utils.Success(ctx, user.Public())
}

// Login verifies credentials and issues a JWT.
func (a *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid request payload")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	users, err := a.store.LoadAll(ctx)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to load users")
		return
	}

	var user *models.User
	for _, u := range users {
		if strings.EqualFold(u.Email, req.Email) {
			user = u
			break
		}
	}
	if user == nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, tokenValidity)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50005, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  user.Public(),
	})
}

// Logout invalidates the token by blacklisting it until expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "invalid authorization header")
		return
	}

	token := strings.TrimSpace(parts[1])
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(tokenValidity)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	utils.BlacklistToken(token, expiresAt)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's public profile.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	users, err := a.store.LoadAll(ctx)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50006, "failed to load users")
		return
	}
	user, ok := findUser(users, userID)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	utils.Success(ctx, user.Public())
}
