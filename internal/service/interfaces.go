package service

import (
	"context"

	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/grade"
)

type PracticeService interface {
	GetStatus(ctx context.Context, userID, id string) (domain.Status, error)
	SetStatus(ctx context.Context, userID, id string, status domain.Status) error
	ListStatuses(ctx context.Context, userID string) ([]contract.StatusView, error)
	GetMasteryBPM(ctx context.Context, userID, shapeID string) (int, error)
	RaiseMasteryBPM(ctx context.Context, userID, shapeID string, bpm int) (*contract.RaiseBPMResponse, error)
	ResetMasteryBPM(ctx context.Context, userID, shapeID string) error
	ListBPMs(ctx context.Context, userID string) ([]contract.BPMView, error)
	ClearFamily(ctx context.Context, userID string, family domain.Family) (*contract.ClearFamilyResponse, error)
}

type SessionLogService interface {
	LogSession(ctx context.Context, userID string, req contract.LogSessionRequest) (*domain.PracticeLogEntry, error)
	SubmitSnapshot(ctx context.Context, userID string, req contract.SnapshotRequest) (*contract.SnapshotResponse, error)
	ListLog(ctx context.Context, userID string, req contract.ListLogRequest) ([]*domain.PracticeLogEntry, error)
	LastTargetedBPM(ctx context.Context, userID, shapeID string) (int, error)
}

type ProgressService interface {
	Grades(ctx context.Context, userID string) (*contract.GradesResponse, error)
	Grade(ctx context.Context, userID string, level int) (*grade.Completion, error)
	Standing(ctx context.Context, userID string) (grade.Standing, error)
	Focus(ctx context.Context, userID string, req contract.FocusRequest) (*contract.FocusResponse, error)
}
