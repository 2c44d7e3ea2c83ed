package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/etude/internal/catalog"
	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/identity"
)

func FormatStatuses(views []contract.StatusView) string {
	if len(views) == 0 {
		return Dim("Nothing practiced yet.") + "\n"
	}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{FamilyBadge(v.Family), v.ID, StatusPill(v.Status)})
	}
	return RenderTable([]string{"FAMILY", "ID", "STATUS"}, rows)
}

func FormatBPMs(views []contract.BPMView) string {
	if len(views) == 0 {
		return Dim("No mastery BPMs recorded.") + "\n"
	}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{FamilyBadge(v.Family), v.ShapeID, FormatBPM(v.BPM)})
	}
	return RenderTable([]string{"FAMILY", "SHAPE", "MASTERY"}, rows)
}

// FormatLog renders log entries newest first, relative to now.
func FormatLog(entries []*domain.PracticeLogEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No practice logged.") + "\n"
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		items := Dim("--")
		switch len(e.Items) {
		case 0:
		case 1:
			items = truncate(e.Items[0].Label(), 60)
		default:
			items = fmt.Sprintf("%s (+%d)", truncate(e.Items[0].Label(), 52), len(e.Items)-1)
		}
		kind := FormatMinutes(e.DurationMinutes)
		if e.IsSnapshot() {
			kind = StylePurple.Render(kind)
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			HumanTimestampFrom(e.CreatedAt, now),
			kind,
			items,
			Dim(truncate(e.Notes, 30)),
		})
	}
	return RenderBox("Practice Log", RenderTable([]string{"ID", "WHEN", "LENGTH", "ITEMS", "NOTES"}, rows)) + "\n"
}

// FormatCatalog renders the catalog of one family.
func FormatCatalog(family domain.Family) string {
	if family.IsExercise() {
		exs := catalog.Exercises(family)
		rows := make([][]string, 0, len(exs))
		for _, ex := range exs {
			rows = append(rows, []string{ex.Name, ex.ShapeID})
		}
		return RenderTable([]string{"NO.", "SHAPE"}, rows)
	}
	scales := catalog.Scales()
	rows := make([][]string, 0, len(scales))
	for _, s := range scales {
		kind := "scale"
		if s.IsArpeggio() {
			kind = "arpeggio"
		}
		rows = append(rows, []string{s.ID, s.Key.String(), s.Type.String(), Dim(kind)})
	}
	return RenderTable([]string{"ID", "KEY", "TYPE", "KIND"}, rows)
}

// FormatDecoded renders a decoded identifier field by field.
func FormatDecoded(d identity.Decoded) string {
	e := d.Envelope
	fields := [][]string{
		{"kind", string(d.Kind)},
		{"family", FamilyBadge(d.Family)},
	}
	add := func(k, v string) {
		if v != "" {
			fields = append(fields, []string{k, v})
		}
	}
	add("key", e.Key)
	add("type", e.Type)
	add("articulation", e.Articulation)
	add("tempo", e.Tempo)
	if e.Octaves > 0 {
		add("octaves", fmt.Sprint(e.Octaves))
	}
	add("direction", e.Direction)
	add("hands", e.Hands)
	add("rhythm", e.Rhythm)
	add("accent", e.Accent)
	add("exercise", e.Exercise)
	if e.BPM > 0 {
		add("bpm", fmt.Sprint(e.BPM))
	}
	return RenderBox(d.ID, RenderTable([]string{"FIELD", "VALUE"}, fields)) + "\n"
}
