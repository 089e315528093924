package exam

import (
	"encoding/json"
	"time"

	"github.com/abhisek/certprep/internal/errors"
)

// snapshotVersion is bumped whenever State changes incompatibly.
const snapshotVersion = 1

// Snapshot is a resumable copy of an unfinished attempt.
type Snapshot struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	State   State     `json:"state"`
}

// Snapshot captures the current state. It does not change the session.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Version: snapshotVersion,
		SavedAt: s.now(),
		State:   s.state.Clone(),
	}
}

// Marshal encodes the snapshot as JSON.
func (s Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSnapshot decodes a snapshot produced by Marshal.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.New(errors.CodeInvalidInput,
			errors.WithMessagef("decode snapshot"), errors.WithCause(err))
	}
	if snap.Version != snapshotVersion {
		return Snapshot{}, errors.InvalidInput("unsupported snapshot version %d", snap.Version)
	}
	return snap, nil
}
