package queue

import (
	"encoding/json"
	"fmt"
)

// Task types
const (
	TypeSnapshot = "tracker:snapshot"
)

// SnapshotPayload is the payload for snapshot tasks. It carries only the
// tracked community and query: the payload bytes are part of asynq's
// uniqueness key, so they must be identical for every enqueue of the same
// tracker. Anything per-enqueue (a timestamp, an id) would give each call
// its own uniqueness lock and let snapshot runs overlap.
type SnapshotPayload struct {
	Community string `json:"community"`
	Query     string `json:"query"`
}

// NewSnapshotTask creates a snapshot task payload.
func NewSnapshotTask(community, query string) (*SnapshotPayload, error) {
	if community == "" {
		return nil, fmt.Errorf("community is required")
	}
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	return &SnapshotPayload{
		Community: community,
		Query:     query,
	}, nil
}

// Marshal serializes the payload to JSON.
func (p *SnapshotPayload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalSnapshotPayload deserializes JSON to payload.
func UnmarshalSnapshotPayload(data []byte) (*SnapshotPayload, error) {
	var payload SnapshotPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return &payload, nil
}
