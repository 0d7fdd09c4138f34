package formatter

import (
	"fmt"
	"strings"

	"github.com/ashlinalex1/mindstride/internal/activity"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderShare renders a percentage bar like [████░░░░]  45%. The bar takes
// the color of the status tier the percentage would earn.
func RenderShare(pct int, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	style := TierStyle(activity.TierFor(pct))
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}
