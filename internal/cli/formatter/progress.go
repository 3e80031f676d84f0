package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░]  45% for a
// percentage in 0-100. Green above 66, yellow from 33, red below.
func RenderProgress(pct float64, width int) string {
	pct = clampPct(pct)
	return fmt.Sprintf("[%s] %3.0f%%", RenderCompactBar(pct, width, false), pct)
}

// RenderCompactBar is the bare bar without brackets or label. Dimmed bars
// are left unstyled.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}
	filled := min(int(pct/100*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	if dim {
		return bar
	}
	switch {
	case pct < 33:
		return StyleRed.Render(bar)
	case pct < 66:
		return StyleYellow.Render(bar)
	default:
		return StyleGreen.Render(bar)
	}
}

func clampPct(pct float64) float64 {
	return min(max(pct, 0), 100)
}
