package services

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/lasse00042-cmyk/HandUp/models"
)

// ArchiveWriter dumps a point-in-time copy of all user records for disaster
// recovery. Dump failures are treated as non-fatal by callers.
type ArchiveWriter interface {
	Dump(day string, users []*models.User) error
}

// FileArchiveWriter writes one pretty-printed JSON file per day under Dir.
type FileArchiveWriter struct {
	Dir string
}

func (w *FileArchiveWriter) Dump(day string, users []*models.User) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.Dir, "archive-"+day+".json"), b, 0o644)
}
