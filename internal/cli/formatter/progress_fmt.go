package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/grade"
	"github.com/alexanderramin/etude/internal/recommend"
)

// FormatStanding renders a one-line curriculum position.
func FormatStanding(s grade.Standing) string {
	switch {
	case s.Label == grade.LabelMastery:
		return StyleGreen.Render("★ " + s.Label)
	case s.Next > 0:
		return fmt.Sprintf("%s %s", Bold(s.Label), Dim(fmt.Sprintf("· working on Grade %d", s.Next)))
	default:
		return Bold(s.Label)
	}
}

// FormatGrades renders every grade with a progress bar and counts.
func FormatGrades(resp *contract.GradesResponse) string {
	headers := []string{"GRADE", "PROGRESS", "MASTERED", "PRACTICED"}
	rows := make([][]string, 0, len(resp.Grades))
	for _, c := range resp.Grades {
		label := fmt.Sprintf("Grade %d", c.Level)
		if c.Complete() {
			label = StyleGreen.Render(label + " ✔")
		}
		rows = append(rows, []string{
			label,
			RenderProgress(c.Percent, 20),
			fmt.Sprintf("%d/%d", c.Mastered, c.Total),
			Dim(fmt.Sprintf("%d", c.Practiced)),
		})
	}
	var b strings.Builder
	b.WriteString(FormatStanding(resp.Standing))
	b.WriteString("\n\n")
	b.WriteString(RenderTable(headers, rows))
	return RenderBox("Grades", b.String()) + "\n"
}

// FormatCompletion renders a single grade.
func FormatCompletion(c *grade.Completion) string {
	return fmt.Sprintf("Grade %d  %s  %d/%d mastered, %d practiced\n",
		c.Level, RenderProgress(c.Percent, 20), c.Mastered, c.Total, c.Practiced)
}

// FormatFocus renders the next suggested target, or the mastery banner
// when nothing is left.
func FormatFocus(resp *contract.FocusResponse) string {
	f := resp.Focus
	if f == nil {
		return RenderBox("Next Focus", StyleGreen.Render("Everything is mastered.")+"\n"+FormatStanding(resp.Standing)) + "\n"
	}
	reason := StyleBlue.Render("new")
	if f.Reason == recommend.ReasonReview {
		reason = StyleYellow.Render("review")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n\n", FamilyBadge(f.Family), reason, Dim(fmt.Sprintf("tier %d", f.Tier)))
	fmt.Fprintf(&b, "%s\n", Bold(f.Item.Label()))
	fmt.Fprintf(&b, "%s\n\n", Dim(f.ID))
	b.WriteString(FormatStanding(resp.Standing))
	return RenderBox("Next Focus", b.String()) + "\n"
}
