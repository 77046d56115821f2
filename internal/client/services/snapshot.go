package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/apexfit/apexfit-go/internal/client/models"
	"github.com/apexfit/apexfit-go/internal/logging"
)

// SnapshotStore caches the SessionUser across restarts. It is a cache, not
// a source of truth: Load reports absence for anything it cannot parse, and
// every failure is swallowed.
type SnapshotStore interface {
	Load(ctx context.Context) (*models.SessionUser, bool)
	Save(ctx context.Context, user models.SessionUser)
	Clear(ctx context.Context)
}

// FileSnapshotStore keeps the snapshot as a plain JSON file.
type FileSnapshotStore struct {
	path string
	log  logging.Logger
}

func NewFileSnapshotStore(path string, log logging.Logger) *FileSnapshotStore {
	return &FileSnapshotStore{path: path, log: log.With("component", "snapshot")}
}

func (s *FileSnapshotStore) Load(ctx context.Context) (*models.SessionUser, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn(ctx, "snapshot read failed", "error", err)
		}
		return nil, false
	}
	var u models.SessionUser
	if err := json.Unmarshal(data, &u); err != nil || u.ID == "" {
		// Corrupt snapshots are discarded, not surfaced.
		s.log.Warn(ctx, "snapshot unparseable, discarding", "error", err)
		s.Clear(ctx)
		return nil, false
	}
	return &u, true
}

func (s *FileSnapshotStore) Save(ctx context.Context, user models.SessionUser) {
	data, err := json.Marshal(user)
	if err != nil {
		s.log.Warn(ctx, "snapshot encode failed", "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.log.Warn(ctx, "snapshot dir create failed", "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.log.Warn(ctx, "snapshot write failed", "error", err)
	}
}

func (s *FileSnapshotStore) Clear(ctx context.Context) {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.log.Warn(ctx, "snapshot remove failed", "error", err)
	}
}
