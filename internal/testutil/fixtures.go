package testutil

import (
	"time"

	"github.com/alexanderramin/etude/internal/domain"
)

// Permutation options
type PermutationOption func(*domain.ScalePermutation)

func WithKey(k domain.Key) PermutationOption {
	return func(p *domain.ScalePermutation) { p.Key = k }
}

func WithType(t domain.ItemType) PermutationOption {
	return func(p *domain.ScalePermutation) { p.Type = t }
}

func WithTempo(t domain.TempoLevel) PermutationOption {
	return func(p *domain.ScalePermutation) { p.Tempo = t }
}

// NewTestPermutation returns the C major arpeggio default selection with
// opts applied.
func NewTestPermutation(opts ...PermutationOption) domain.ScalePermutation {
	p := domain.DefaultPermutation(domain.KeyC, domain.MajorArpeggio)
	for _, o := range opts {
		o(&p)
	}
	return p
}

// NewTestScalePractice wraps NewTestPermutation at the given BPM.
func NewTestScalePractice(bpm int, opts ...PermutationOption) domain.ScalePractice {
	return domain.ScalePractice{Permutation: NewTestPermutation(opts...), BPM: bpm}
}

// Log draft options
type DraftOption func(*domain.LogDraft)

func WithItems(items ...domain.PracticeItem) DraftOption {
	return func(d *domain.LogDraft) { d.Items = items }
}

func WithNotes(notes string) DraftOption {
	return func(d *domain.LogDraft) { d.Notes = notes }
}

func NewTestDraft(minutes int, opts ...DraftOption) domain.LogDraft {
	d := domain.LogDraft{DurationMinutes: minutes}
	for _, o := range opts {
		o(&d)
	}
	return d
}

// TestEpoch is a fixed instant for deterministic clocks.
var TestEpoch = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
