package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasse00042-cmyk/HandUp/models"
)

func TestFileArchiveWriterDump(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	w := &FileArchiveWriter{Dir: dir}

	u := newUser("2024-01-02")
	u.Subjects["Math"] = &models.SubjectState{Count: 0, Goal: 3}
	u.History["2024-01-01"] = models.DayCounts{"Math": 5}

	require.NoError(t, w.Dump("2024-01-02", []*models.User{u}))

	b, err := os.ReadFile(filepath.Join(dir, "archive-2024-01-02.json"))
	require.NoError(t, err)

	var restored []*models.User
	require.NoError(t, json.Unmarshal(b, &restored))
	require.Len(t, restored, 1)
	assert.Equal(t, "u1", restored[0].ID)
	assert.Equal(t, 5, restored[0].History["2024-01-01"]["Math"])
	assert.Empty(t, restored[0].PasswordHash, "credentials are never serialized")
}

func TestFileArchiveWriterOverwritesSameDay(t *testing.T) {
	dir := t.TempDir()
	w := &FileArchiveWriter{Dir: dir}

	require.NoError(t, w.Dump("2024-01-02", nil))
	u := newUser("2024-01-02")
	require.NoError(t, w.Dump("2024-01-02", []*models.User{u}))

	b, err := os.ReadFile(filepath.Join(dir, "archive-2024-01-02.json"))
	require.NoError(t, err)
	var restored []*models.User
	require.NoError(t, json.Unmarshal(b, &restored))
	assert.Len(t, restored, 1)
}
