package faculty

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JaimeStill/schedease/pkg/docstore"
	"github.com/JaimeStill/schedease/pkg/storage"
)

// Snapshot is the restorable record of a committed faculty deletion.
type Snapshot struct {
	FacultyID  string              `json:"facultyId"`
	Faculty    map[string]any      `json:"faculty"`
	Teachers   []docstore.Document `json:"teachers"`
	Revocation RevocationStatus    `json:"revocation"`
	UID        string              `json:"uid,omitempty"`
	RevokeErr  string              `json:"revokeError,omitempty"`
	DeletedAt  time.Time           `json:"deletedAt"`
}

// Archiver persists deletion snapshots.
type Archiver interface {
	Archive(ctx context.Context, s Snapshot) error
}

type blobArchiver struct {
	store storage.System
}

// NewBlobArchiver returns an Archiver that uploads each snapshot as JSON to
// faculty/{id}/{unix-nano}.json.
func NewBlobArchiver(store storage.System) Archiver {
	return &blobArchiver{store: store}
}

func (a *blobArchiver) Archive(ctx context.Context, s Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := a.store.Upload(ctx, SnapshotKey(s), bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("archive faculty %s: %w", s.FacultyID, err)
	}
	return nil
}

// SnapshotKey returns the blob key for s.
func SnapshotKey(s Snapshot) string {
	return fmt.Sprintf("faculty/%s/%d.json", s.FacultyID, s.DeletedAt.UnixNano())
}
