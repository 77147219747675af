package client

import "golang.org/x/term"

// TerminalWidth returns the column width of the terminal behind fd, or 0
// when fd is not a terminal (pipes, files, CI output).
func TerminalWidth(fd int) int {
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 0
	}
	return width
}

// Truncate shortens s to at most max runes. Truncated values end with an
// ellipsis when there is room for one. max <= 0 disables truncation.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
