package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncate shortens a string to the given display width, adding an ellipsis
// if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	return ansi.Truncate(value, limit, "…")
}

// truncateMiddle keeps both ends of a string, which suits file paths.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || ansi.StringWidth(value) <= limit {
		return value
	}
	if limit <= 3 {
		return ansi.Truncate(value, limit, "")
	}
	keep := limit - 1
	prefix := keep / 2
	suffix := keep - prefix
	return ansi.Truncate(value, prefix, "") + "…" + ansi.TruncateLeft(value, ansi.StringWidth(value)-suffix, "")
}
