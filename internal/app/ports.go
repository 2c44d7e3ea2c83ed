package app

import (
	"context"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/grade"
)

type PracticeUseCase interface {
	GetStatus(ctx context.Context, userID, id string) (domain.Status, error)
	SetStatus(ctx context.Context, userID, id string, status domain.Status) error
	ListStatuses(ctx context.Context, userID string) ([]StatusView, error)
	GetMasteryBPM(ctx context.Context, userID, shapeID string) (int, error)
	RaiseMasteryBPM(ctx context.Context, userID, shapeID string, bpm int) (*RaiseBPMResponse, error)
	ResetMasteryBPM(ctx context.Context, userID, shapeID string) error
	ListBPMs(ctx context.Context, userID string) ([]BPMView, error)
	ClearFamily(ctx context.Context, userID string, family domain.Family) (*ClearFamilyResponse, error)
}

type SessionLogUseCase interface {
	LogSession(ctx context.Context, userID string, req LogSessionRequest) (*domain.PracticeLogEntry, error)
	SubmitSnapshot(ctx context.Context, userID string, req SnapshotRequest) (*SnapshotResponse, error)
	ListLog(ctx context.Context, userID string, req ListLogRequest) ([]*domain.PracticeLogEntry, error)
	LastTargetedBPM(ctx context.Context, userID, shapeID string) (int, error)
}

type ProgressUseCase interface {
	Grades(ctx context.Context, userID string) (*GradesResponse, error)
	Grade(ctx context.Context, userID string, level int) (*grade.Completion, error)
	Standing(ctx context.Context, userID string) (grade.Standing, error)
	Focus(ctx context.Context, userID string, req FocusRequest) (*FocusResponse, error)
}
