package controllers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/lasse00042-cmyk/HandUp/middleware"
	"github.com/lasse00042-cmyk/HandUp/models"
	"github.com/lasse00042-cmyk/HandUp/services"
	"github.com/lasse00042-cmyk/HandUp/store"
	"github.com/lasse00042-cmyk/HandUp/utils"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }
func (f *fakeClock) Today() string  { return f.now.Format(services.DayFormat) }

func setupTest(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
}

// newTestContext builds a recorder-backed gin context carrying an optional
// authenticated user id and JSON body.
func newTestContext(t *testing.T, method, target, body, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if userID != "" {
		c.Set(middleware.ContextUserIDKey, userID)
	}
	return c, w
}

func seedUser(t *testing.T, st *store.MemoryStore, lastActiveDay string, subjects models.SubjectMap, history models.HistoryMap) *models.User {
	t.Helper()
	u := &models.User{
		ID:            "u1",
		Name:          "Lena",
		Email:         "lena@example.com",
		Subjects:      subjects,
		History:       history,
		LastActiveDay: lastActiveDay,
	}
	u.Normalize()
	require.NoError(t, st.SaveAll(context.Background(), []*models.User{u}))
	return u
}

func loadUser(t *testing.T, st *store.MemoryStore, id string) *models.User {
	t.Helper()
	users, err := st.LoadAll(context.Background())
	require.NoError(t, err)
	for _, u := range users {
		if u.ID == id {
			return u
		}
	}
	t.Fatalf("user %s not found", id)
	return nil
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) utils.JSONResponse {
	t.Helper()
	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
