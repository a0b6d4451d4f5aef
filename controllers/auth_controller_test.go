package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasse00042-cmyk/HandUp/store"
	"github.com/lasse00042-cmyk/HandUp/utils"
)

func newAuthController(st *store.MemoryStore, day string) *AuthController {
	now, _ := time.Parse("2006-01-02", day)
	return NewAuthController(st, &fakeClock{now: now})
}

func TestRegisterCreatesUser(t *testing.T) {
	setupTest(t)
	st := store.NewMemoryStore()
	ac := newAuthController(st, "2024-03-10")

	c, w := newTestContext(t, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Omar","email":"Omar@Example.com","password":"hunter22"}`, "")
	ac.Register(c)

	requireStatus(t, w, http.StatusOK)
	users, err := st.LoadAll(c)
	require.NoError(t, err)
	require.Len(t, users, 1)
	u := users[0]
	assert.Equal(t, "omar@example.com", u.Email, "emails are stored lowercased")
	assert.Equal(t, "2024-03-10", u.LastActiveDay)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "hunter22", u.PasswordHash)
	assert.NotNil(t, u.Subjects)
	assert.NotNil(t, u.History)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTest(t)
	st := store.NewMemoryStore()
	seedUser(t, st, "2024-03-10", nil, nil)
	ac := newAuthController(st, "2024-03-10")

	c, w := newTestContext(t, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Other","email":"LENA@example.com","password":"hunter22"}`, "")
	ac.Register(c)

	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, 40003, decodeEnvelope(t, w).Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	setupTest(t)
	st := store.NewMemoryStore()
	ac := newAuthController(st, "2024-03-10")

	c, w := newTestContext(t, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Omar","email":"omar@example.com","password":"abc"}`, "")
	ac.Register(c)

	requireStatus(t, w, http.StatusBadRequest)
}

func TestLoginIssuesParsableToken(t *testing.T) {
	setupTest(t)
	st := store.NewMemoryStore()
	ac := newAuthController(st, "2024-03-10")

	c, w := newTestContext(t, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Omar","email":"omar@example.com","password":"hunter22"}`, "")
	ac.Register(c)
	requireStatus(t, w, http.StatusOK)

	c, w = newTestContext(t, http.MethodPost, "/api/v1/auth/login",
		`{"email":"omar@example.com","password":"hunter22"}`, "")
	ac.Login(c)
	requireStatus(t, w, http.StatusOK)

	data, ok := decodeEnvelope(t, w).Data.(map[string]interface{})
	require.True(t, ok)
	token, ok := data["token"].(string)
	require.True(t, ok)

	claims, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "omar@example.com", claims.Email)

	users, err := st.LoadAll(c)
	require.NoError(t, err)
	assert.Equal(t, users[0].ID, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	setupTest(t)
	st := store.NewMemoryStore()
	ac := newAuthController(st, "2024-03-10")

	c, w := newTestContext(t, http.MethodPost, "/api/v1/auth/register",
		`{"name":"Omar","email":"omar@example.com","password":"hunter22"}`, "")
	ac.Register(c)
	requireStatus(t, w, http.StatusOK)

	c, w = newTestContext(t, http.MethodPost, "/api/v1/auth/login",
		`{"email":"omar@example.com","password":"wrong"}`, "")
	ac.Login(c)

	requireStatus(t, w, http.StatusUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	setupTest(t)
	st := store.NewMemoryStore()
	ac := newAuthController(st, "2024-03-10")

	c, w := newTestContext(t, http.MethodPost, "/api/v1/auth/login",
		`{"email":"nobody@example.com","password":"hunter22"}`, "")
	ac.Login(c)

	requireStatus(t, w, http.StatusUnauthorized)
}

func TestMeReturnsProfileWithoutCredentials(t *testing.T) {
	setupTest(t)
	st := store.NewMemoryStore()
	seedUser(t, st, "2024-03-10", nil, nil)
	ac := newAuthController(st, "2024-03-10")

	c, w := newTestContext(t, http.MethodGet, "/api/v1/auth/me", "", "u1")
	ac.Me(c)

	requireStatus(t, w, http.StatusOK)
	data, ok := decodeEnvelope(t, w).Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "u1", data["id"])
	assert.NotContains(t, data, "password_hash")
}
