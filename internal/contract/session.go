package contract

import "github.com/alexanderramin/etude/internal/app"

type LogSessionRequest = app.LogSessionRequest

type SnapshotRequest = app.SnapshotRequest

type SnapshotResponse = app.SnapshotResponse

type ListLogRequest = app.ListLogRequest

// NewListLogRequest returns a request for the most recent limit entries.
func NewListLogRequest(limit int) ListLogRequest {
	return ListLogRequest{Limit: limit}
}
