package ui

import "time"

// Screen rows outside the timeline canvas.
const (
	// StatusRows is the height of the top status bar.
	StatusRows = 1

	// DetailsRows is the height of the event details panel.
	DetailsRows = 2

	// FooterRows is the height of the key hint or search line.
	FooterRows = 1
)

// LayoutCompactWidth is the threshold below which the status bar drops
// secondary fields.
const LayoutCompactWidth = 100

// Timing constants.
const (
	// DefaultUIInterval is the default source check interval.
	DefaultUIInterval = time.Second
)

// canvasHeight returns the rows available to the timeline canvas.
func canvasHeight(screen int) int {
	return max(screen-StatusRows-DetailsRows-FooterRows, 0)
}
