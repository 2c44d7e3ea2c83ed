package grade

import (
	"fmt"
	"math"

	"github.com/alexanderramin/etude/internal/domain"
)

// StatusReader is the read access completion needs.
type StatusReader interface {
	Status(id string) domain.Status
}

type Completion struct {
	Level     int `json:"level" yaml:"level" cbor:"level"`
	Total     int `json:"total" yaml:"total" cbor:"total"`
	Mastered  int `json:"mastered" yaml:"mastered" cbor:"mastered"`
	Practiced int `json:"practiced" yaml:"practiced" cbor:"practiced"`
	Percent   int `json:"percent" yaml:"percent" cbor:"percent"`
}

func (c Completion) Complete() bool { return c.Total > 0 && c.Mastered == c.Total }

// Completion counts how much of level's required set is mastered.
func (c *Curriculum) Completion(level int, r StatusReader) (Completion, error) {
	if level < FirstLevel || level > MaxLevel {
		return Completion{}, fmt.Errorf("%w: grade %d", domain.ErrInvalidDomainValue, level)
	}
	out := Completion{Level: level, Total: len(c.required[level])}
	for _, id := range c.required[level] {
		switch r.Status(id) {
		case domain.StatusMastered:
			out.Mastered++
		case domain.StatusPracticed:
			out.Practiced++
		}
	}
	out.Percent = Percent(out.Mastered, out.Total)
	return out, nil
}

// Report returns the completion of every grade in order.
func (c *Curriculum) Report(r StatusReader) []Completion {
	out := make([]Completion, 0, MaxLevel)
	for level := FirstLevel; level <= MaxLevel; level++ {
		comp, _ := c.Completion(level, r)
		out = append(out, comp)
	}
	return out
}

// Percent is round(100*part/total), 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

// Standing is a user's position in the curriculum.
type Standing struct {
	// Current is the highest fully mastered grade, 0 for a beginner.
	Current int `json:"current" yaml:"current" cbor:"current"`
	// Next is the grade being worked toward, 0 once everything is mastered.
	Next  int    `json:"next" yaml:"next" cbor:"next"`
	Label string `json:"label" yaml:"label" cbor:"label"`
}

const (
	LabelBeginner = "Beginner"
	LabelMastery  = "Mastery Achieved"
)

// StandingOf derives the standing from a completion report.
func StandingOf(report []Completion) Standing {
	current := 0
	all := len(report) == MaxLevel
	for _, c := range report {
		if c.Complete() {
			current = max(current, c.Level)
		} else {
			all = false
		}
	}
	switch {
	case all:
		return Standing{Current: MaxLevel, Label: LabelMastery}
	case current == 0:
		return Standing{Next: FirstLevel, Label: LabelBeginner}
	default:
		return Standing{Current: current, Next: min(current+1, MaxLevel), Label: fmt.Sprintf("Grade %d", current)}
	}
}

// Standing computes the standing of r directly.
func (c *Curriculum) Standing(r StatusReader) Standing {
	return StandingOf(c.Report(r))
}
