package httpapi

import (
	"time"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/recommend"
)

type statusBody struct {
	ID     string        `json:"id"`
	Family domain.Family `json:"family"`
	Status domain.Status `json:"status"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type bpmBody struct {
	ID        string        `json:"id"`
	Family    domain.Family `json:"family,omitempty"`
	BPM       int           `json:"bpm"`
	NewRecord *bool         `json:"new_record,omitempty"`
}

type raiseBPMRequest struct {
	BPM int `json:"bpm"`
}

type snapshotRequest struct {
	Item  *domain.ItemEnvelope `json:"item"`
	Notes string               `json:"notes"`
}

type snapshotResponse struct {
	Accepted  bool      `json:"accepted"`
	NewRecord bool      `json:"new_record"`
	ShapeID   string    `json:"shape_id"`
	BPM       int       `json:"bpm"`
	Entry     *logEntry `json:"entry,omitempty"`
}

type logSessionRequest struct {
	DurationMinutes int                   `json:"duration_minutes"`
	Items           []domain.ItemEnvelope `json:"items"`
	Notes           string                `json:"notes"`
}

type logEntry struct {
	ID              string                `json:"id"`
	Kind            domain.LogKind        `json:"kind"`
	DurationMinutes int                   `json:"duration_minutes"`
	Items           []domain.ItemEnvelope `json:"items"`
	Notes           string                `json:"notes"`
	CreatedAt       time.Time             `json:"created_at"`
}

func toLogEntry(e *domain.PracticeLogEntry) *logEntry {
	if e == nil {
		return nil
	}
	items := make([]domain.ItemEnvelope, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, domain.Envelope(it))
	}
	return &logEntry{
		ID:              e.ID,
		Kind:            e.Kind(),
		DurationMinutes: e.DurationMinutes,
		Items:           items,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
	}
}

type focusBody struct {
	ID     string              `json:"id"`
	Reason recommend.Reason    `json:"reason"`
	Tier   int                 `json:"tier"`
	Family domain.Family       `json:"family"`
	Item   domain.ItemEnvelope `json:"item"`
}

type catalogScale struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Type     string `json:"type"`
	Arpeggio bool   `json:"arpeggio"`
}

type catalogExercise struct {
	Name    string `json:"name"`
	ShapeID string `json:"shape_id"`
}

type catalogBody struct {
	Scales   []catalogScale    `json:"scales"`
	Dohnanyi []catalogExercise `json:"dohnanyi"`
	Hanon    []catalogExercise `json:"hanon"`
}

func envelopeItems(envs []domain.ItemEnvelope) ([]domain.PracticeItem, error) {
	items := make([]domain.PracticeItem, 0, len(envs))
	for _, env := range envs {
		it, err := env.Item()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}
