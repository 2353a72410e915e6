package app

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// Grid breakpoints in character cells; the HTML page switches at 640px and
// 1024px, which is 80 and 128 cells at 8px per cell.
const (
	smallBreakpoint = 80
	largeBreakpoint = 128
	columnGap       = 2
	minCardWidth    = 12
)

// GridColumns returns how many cards fit side by side at the given width
func GridColumns(width int) int {
	switch {
	case width < smallBreakpoint:
		return 1
	case width < largeBreakpoint:
		return 2
	default:
		return 4
	}
}

// RenderText writes cards as a text grid that fits into width cells
func RenderText(w io.Writer, cards []Card, width int) error {
	cols := GridColumns(width)
	cardWidth := (width - columnGap*(cols-1)) / cols
	if cardWidth < minCardWidth {
		cardWidth = minCardWidth
	}

	bw := bufio.NewWriter(w)
	for start := 0; start < len(cards); start += cols {
		end := start + cols
		if end > len(cards) {
			end = len(cards)
		}
		if start > 0 {
			bw.WriteString("\n")
		}

		blocks := make([][]string, 0, end-start)
		for _, c := range cards[start:end] {
			blocks = append(blocks, cardLines(c, cardWidth))
		}
		for line := 0; line < len(blocks[0]); line++ {
			parts := make([]string, len(blocks))
			for i, b := range blocks {
				parts[i] = padRight(b[line], cardWidth)
			}
			row := strings.Join(parts, strings.Repeat(" ", columnGap))
			bw.WriteString(strings.TrimRight(row, " "))
			bw.WriteString("\n")
		}
	}

	if err := bw.Flush(); err != nil {
		return err
	}
	pageRenders.WithLabelValues("text").Inc()
	return nil
}

// cardLines lays out one card: image, occasion and review on one line, then
// location and date.
func cardLines(c Card, width int) []string {
	review := truncate(c.Review, width/3)
	occasionWidth := width - utf8.RuneCountInString(review) - 1
	occasion := truncate(c.Occasion, occasionWidth)
	gap := width - utf8.RuneCountInString(occasion) - utf8.RuneCountInString(review)
	if gap < 1 {
		gap = 1
	}

	return []string{
		truncate(c.ImageURL, width),
		occasion + strings.Repeat(" ", gap) + review,
		truncate(c.Location, width),
		truncate(c.Date, width),
	}
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	if n == 1 {
		return string(runes[:1])
	}
	return string(runes[:n-1]) + "…"
}

func padRight(s string, n int) string {
	if count := utf8.RuneCountInString(s); count < n {
		return s + strings.Repeat(" ", n-count)
	}
	return s
}
