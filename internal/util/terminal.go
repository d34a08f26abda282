package util

import (
	"fmt"
	"strings"
)

// MakeHyperlink creates a terminal hyperlink using OSC 8 escape sequences.
// Terminals without OSC 8 support just show displayText.
func MakeHyperlink(url, displayText string) string {
	if url == "" {
		return displayText
	}
	// BEL terminator, more widely supported than ST
	return fmt.Sprintf("\033]8;;%s\a%s\033]8;;\a", url, displayText)
}

// TruncateText truncates s to maxLen runes, appending "…" if truncated.
func TruncateText(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}

// FirstLine returns the first non-blank line of s, trimmed.
// Event descriptions are often several paragraphs; list views show one.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
