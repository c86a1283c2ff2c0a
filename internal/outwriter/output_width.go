package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/elijahadejumo/DocStability/internal/contract"
)

// GetMaxTablePathWidth calculates the maximum width for a path or identity column
// in table output, given the width already taken by the other columns.
func GetMaxTablePathWidth(cfg *contract.Config, fixedWidth int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Table borders, separators, and padding
	baseWidth := fixedWidth + 20

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
