package Report

import (
	"strings"
	"sync"

	"github.com/go-pdf/fpdf"
)

// Measurer returns the width in millimetres of s set in font f.
type Measurer interface {
	Width(s string, f Font) float64
}

// fpdfMeasurer reads Helvetica metrics from a scratch fpdf instance. fpdf
// is not safe for concurrent use, so calls are serialised.
type fpdfMeasurer struct {
	mu        sync.Mutex
	pdf       *fpdf.Fpdf
	translate func(string) string
}

func NewMeasurer() Measurer {
	pdf := fpdf.New("P", "mm", "A4", "")
	return &fpdfMeasurer{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (m *fpdfMeasurer) Width(s string, f Font) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdf.SetFont("Helvetica", f.Style, f.Size)
	return m.pdf.GetStringWidth(m.translate(s))
}

// lineHeight is the distance between wrapped lines for a font size in
// points, with a 1.15 line factor.
func lineHeight(size float64) float64 {
	return size * 1.15 * 25.4 / 72
}

// wrap breaks s into lines no wider than width. Explicit newlines start new
// lines; a word wider than width is split across lines.
func wrap(m Measurer, s string, f Font, width float64) []string {
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, w := range words {
			candidate := w
			if current != "" {
				candidate = current + " " + w
			}
			if m.Width(candidate, f) <= width {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			for m.Width(w, f) > width {
				head, tail := splitToWidth(m, w, f, width)
				lines = append(lines, head)
				w = tail
			}
			current = w
		}
		lines = append(lines, current)
	}
	return lines
}

// splitToWidth cuts the longest prefix of w that fits width, keeping at
// least one rune so progress is always made.
func splitToWidth(m Measurer, w string, f Font, width float64) (string, string) {
	runes := []rune(w)
	n := 1
	for n < len(runes) && m.Width(string(runes[:n+1]), f) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
