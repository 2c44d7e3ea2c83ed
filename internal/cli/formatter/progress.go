package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45% for an integer percent.
// Green from 67%, yellow from 34%, red below.
func RenderProgress(percent, width int) string {
	percent = min(max(percent, 0), 100)
	width = max(width, 2)

	filled := percent * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case percent < 34:
		style = StyleRed
	case percent < 67:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), percent)
}
