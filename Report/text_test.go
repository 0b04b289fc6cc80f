package Report

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runeMeasurer makes every rune 1mm wide.
type runeMeasurer struct{}

func (runeMeasurer) Width(s string, _ Font) float64 {
	return float64(utf8.RuneCountInString(s))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width float64
		want  []string
	}{
		{"fits", "curto", 10, []string{"curto"}},
		{"greedy", "um dois três quatro", 9, []string{"um dois", "três", "quatro"}},
		{"newlines", "a\n\nb", 10, []string{"a", "", "b"}},
		{"long word", "abcdefghij kl", 4, []string{"abcd", "efgh", "ij", "kl"}},
		{"collapses spaces", "a    b", 10, []string{"a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrap(runeMeasurer{}, tt.in, fontBody, tt.width))
		})
	}
}

func TestMeasurerHandlesAccents(t *testing.T) {
	m := NewMeasurer()
	plain := m.Width("Combustivel", fontBody)
	accented := m.Width("Combustível", fontBody)
	assert.Greater(t, accented, 0.0)
	assert.InDelta(t, plain, accented, 1.0)
	assert.Greater(t, m.Width("Combustível", fontSection), accented)
}

func TestLineHeight(t *testing.T) {
	assert.InDelta(t, 3.6513, lineHeight(9), 1e-3)
}

func TestRenderer_NotesWrapWithInjectedMeasurer(t *testing.T) {
	rec := baseRecord()
	rec.Notes = strings.TrimSpace(strings.Repeat("abcd ", 40))

	doc, err := NewRendererWithMeasurer(runeMeasurer{}).Render(rec)
	require.NoError(t, err)

	var lines []Text
	for _, p := range doc.Pages {
		for _, txt := range p.Texts() {
			if strings.HasPrefix(txt.Value, "abcd") {
				lines = append(lines, txt)
			}
		}
	}
	require.Len(t, lines, 3)
	assert.Equal(t, 16, strings.Count(lines[0].Value, "abcd"))
	assert.Equal(t, 16, strings.Count(lines[1].Value, "abcd"))
	assert.Equal(t, 8, strings.Count(lines[2].Value, "abcd"))
	for i, l := range lines {
		assert.Equal(t, float64(Margin), l.X)
		if i > 0 {
			assert.InDelta(t, lineHeight(fontBody.Size), l.Y-lines[i-1].Y, 1e-9)
		}
	}
}
