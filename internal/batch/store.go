package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/finsim/wealth-projector/internal/domain"
)

// ResultStore persists one projection summary per user and run timestamp.
// The core owns no encoding contract; this interface is the seam to whatever
// storage collaborator the deployment wires in.
type ResultStore interface {
	Save(ctx context.Context, userID string, runAt time.Time, summary *domain.ProjectionSummary) error
}

// FileStore writes summaries as pretty-printed JSON files under
// dir/<user>/<timestamp>.json. It is the default collaborator for local runs.
type FileStore struct {
	Dir string
}

// NewFileStore creates a file store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Save writes the summary for one user keyed by run timestamp.
func (s *FileStore) Save(_ context.Context, userID string, runAt time.Time, summary *domain.ProjectionSummary) error {
	userDir := filepath.Join(s.Dir, userID)
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return fmt.Errorf("failed to create results dir %s: %w", userDir, err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary for %s: %w", userID, err)
	}

	path := filepath.Join(userDir, runAt.UTC().Format("20060102T150405Z")+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", path, err)
	}
	return nil
}
