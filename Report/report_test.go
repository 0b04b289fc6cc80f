package Report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Checklist/Models"
)

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 5), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func baseRecord() *Models.ChecklistRecord {
	return &Models.ChecklistRecord{
		ChecklistType: "entrega",
		InspectedAt:   time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
		Plate:         "ABC1234",
		Model:         "Gol",
		Observer:      "Ana",
		Supervisor:    "Bruno",
	}
}

func circles(doc *Document) []Circle {
	var out []Circle
	for _, p := range doc.Pages {
		for _, e := range p.Elements {
			if c, ok := e.(Circle); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

func imageNamed(doc *Document, name string) (Image, int, bool) {
	for _, p := range doc.Pages {
		for _, e := range p.Elements {
			if img, ok := e.(Image); ok && img.Name == name {
				return img, p.Number, true
			}
		}
	}
	return Image{}, 0, false
}

func TestRender_RequiresChecklistType(t *testing.T) {
	r := NewRenderer()
	for _, typ := range []string{"", "   "} {
		rec := baseRecord()
		rec.ChecklistType = typ
		doc, err := r.Render(rec)
		assert.Nil(t, doc)
		assert.ErrorIs(t, err, Models.ErrValidation)
	}
	_, err := r.RenderPDF(nil)
	assert.ErrorIs(t, err, Models.ErrValidation)
}

func TestRender_GeneralInfo(t *testing.T) {
	doc, err := NewRenderer().Render(baseRecord())
	require.NoError(t, err)

	date, page, ok := doc.FindText("05/03/2024 14:30:00")
	require.True(t, ok)
	assert.Equal(t, 1, page)
	assert.Equal(t, Margin+valueOffset, date.X)

	plate, _, ok := doc.FindText("ABC1234")
	require.True(t, ok)
	assert.Equal(t, Margin+rightColumn+valueOffset, plate.X)
	assert.Equal(t, date.Y, plate.Y)

	var placeholders int
	for _, txt := range doc.Pages[0].Texts() {
		if txt.Value == "---" {
			placeholders++
		}
	}
	// condutor, km, combustível, telefone, entregue por, recebido por
	assert.Equal(t, 6, placeholders)
}

func TestRender_MarkerPositions(t *testing.T) {
	rec := baseRecord()
	rec.VehicleImage = pngDataURL(t, 40, 20)
	rec.DamageMarkers = []Models.DamageMarker{
		{ID: 1, Type: Models.DamageCrack, X: 0, Y: 0, Description: "canto"},
		{ID: 2, Type: Models.DamageDent, X: 100, Y: 100, Description: "outro canto"},
		{ID: 3, Type: Models.DamageScratch, X: 50, Y: 50, Description: "arranhão leve"},
	}

	doc, err := NewRenderer().Render(rec)
	require.NoError(t, err)

	photo, _, ok := imageNamed(doc, PhotoImage)
	require.True(t, ok)
	assert.Equal(t, 180.0, photo.W)
	assert.Equal(t, 100.0, photo.H)

	dots := circles(doc)
	require.Len(t, dots, 3)
	assert.InDelta(t, photo.X, dots[0].X, 1e-9)
	assert.InDelta(t, photo.Y, dots[0].Y, 1e-9)
	assert.InDelta(t, photo.X+photo.W, dots[1].X, 1e-9)
	assert.InDelta(t, photo.Y+photo.H, dots[1].Y, 1e-9)
	assert.InDelta(t, photo.X+90, dots[2].X, 1e-9)
	assert.InDelta(t, photo.Y+50, dots[2].Y, 1e-9)
	assert.Equal(t, Color{R: 255, G: 193, B: 7}, dots[2].Color)
	assert.Equal(t, 2.0, dots[2].R)

	_, _, ok = doc.FindText("- [S] arranhão leve")
	assert.True(t, ok)
	_, _, ok = doc.FindText("- [C] canto")
	assert.True(t, ok)
}

func TestRender_AccessoryAndScratchTogether(t *testing.T) {
	rec := baseRecord()
	rec.Accessories = Models.Selection{"macaco"}
	rec.VehicleImage = pngDataURL(t, 40, 20)
	rec.DamageMarkers = []Models.DamageMarker{
		{ID: 1, Type: Models.DamageScratch, X: 50, Y: 50, Description: "arranhão leve"},
	}

	doc, err := NewRenderer().Render(rec)
	require.NoError(t, err)

	var ticks []Text
	for _, p := range doc.Pages {
		for _, txt := range p.Texts() {
			if txt.Value == "X" {
				ticks = append(ticks, txt)
			}
		}
	}
	require.Len(t, ticks, 1)
	label, labelPage, ok := doc.FindText("Macaco")
	require.True(t, ok)
	_, tickPage, _ := doc.FindText("X")
	assert.Equal(t, labelPage, tickPage)
	assert.Equal(t, label.Y-0.5, ticks[0].Y)
	assert.InDelta(t, label.X-7+2.7, ticks[0].X, 1e-9)

	photo, _, ok := imageNamed(doc, PhotoImage)
	require.True(t, ok)
	dots := circles(doc)
	require.Len(t, dots, 1)
	assert.InDelta(t, photo.X+photo.W/2, dots[0].X, 1e-9)
	assert.InDelta(t, photo.Y+photo.H/2, dots[0].Y, 1e-9)
	assert.Equal(t, Models.DamageScratch.Color(), dots[0].Color)
	assert.Equal(t, 2.0, dots[0].R)

	_, _, ok = doc.FindText("- [S] arranhão leve")
	assert.True(t, ok)
}

func TestRender_UncheckedGroupStillListed(t *testing.T) {
	doc, err := NewRenderer().Render(baseRecord())
	require.NoError(t, err)

	for _, row := range Models.ChecklistGroups {
		for _, g := range row {
			_, _, ok := doc.FindText(g.Title)
			assert.True(t, ok, g.Title)
			for _, o := range g.Options {
				_, _, ok := doc.FindText(o.Label)
				assert.True(t, ok, o.Label)
			}
		}
	}
	_, _, ok := doc.FindText("X")
	assert.False(t, ok, "nothing is ticked")

	var boxes int
	for _, e := range doc.Pages[0].Elements {
		if r, ok := e.(Rect); ok && !r.Filled && r.W == 3 {
			boxes++
		}
	}
	assert.Equal(t, 28, boxes)

	tyre, _, ok := doc.FindText("Não preenchido")
	require.True(t, ok)
	assert.Equal(t, Margin+2, tyre.X)
}

func TestRender_TicksSelectedOptions(t *testing.T) {
	rec := baseRecord()
	rec.Brakes = Models.Selection{"batendo"}
	rec.FrontTires = "regular"

	doc, err := NewRenderer().Render(rec)
	require.NoError(t, err)

	label, _, ok := doc.FindText("Batendo")
	require.True(t, ok)
	tick, _, ok := doc.FindText("X")
	require.True(t, ok)
	assert.Equal(t, label.Y-0.5, tick.Y)
	assert.InDelta(t, label.X-7+2.7, tick.X, 1e-9)

	_, _, ok = doc.FindText("Regular")
	assert.True(t, ok)
}

func TestRender_NoPhotoNoInspectionSection(t *testing.T) {
	doc, err := NewRenderer().Render(baseRecord())
	require.NoError(t, err)

	_, _, ok := doc.FindText("Inspeção Visual e Avarias")
	assert.False(t, ok)
	_, _, ok = imageNamed(doc, PhotoImage)
	assert.False(t, ok)
	assert.Empty(t, doc.Images)
}

func TestRender_PhotoWithoutMarkers(t *testing.T) {
	rec := baseRecord()
	rec.VehicleImage = pngDataURL(t, 10, 10)

	doc, err := NewRenderer().Render(rec)
	require.NoError(t, err)

	_, _, ok := doc.FindText("- Nenhuma avaria registrada.")
	assert.True(t, ok)
	assert.Empty(t, circles(doc))
}

func TestRender_NotesStayLeftOfSignature(t *testing.T) {
	rec := baseRecord()
	rec.Signature = pngDataURL(t, 30, 15)
	rec.Notes = strings.Repeat("Veículo entregue com pequenos riscos na porta traseira esquerda. ", 8)

	r := NewRenderer()
	doc, err := r.Render(rec)
	require.NoError(t, err)

	sig, sigPage, ok := imageNamed(doc, SignatureImage)
	require.True(t, ok)
	assert.Equal(t, PageWidth-Margin-80, sig.X)
	assert.LessOrEqual(t, sig.Y, 220.0)

	label, labelPage, ok := doc.FindText("Anotações:")
	require.True(t, ok)
	assert.Equal(t, sigPage, labelPage)

	var noteLines int
	for _, p := range doc.Pages {
		for _, txt := range p.Texts() {
			if txt.Font != fontBody || txt.X != Margin || (p.Number == labelPage && txt.Y <= label.Y) {
				continue
			}
			noteLines++
			right := txt.X + r.measure.Width(txt.Value, txt.Font)
			assert.Less(t, right, sig.X, "%q overlaps the signature column", txt.Value)
		}
	}
	assert.Greater(t, noteLines, 1)

	caption, _, ok := doc.FindText("Assinatura do Condutor")
	require.True(t, ok)
	assert.Equal(t, sig.Y+46, caption.Y)
}

func TestRender_EmptyNotesPlaceholder(t *testing.T) {
	doc, err := NewRenderer().Render(baseRecord())
	require.NoError(t, err)
	_, _, ok := doc.FindText("Nenhuma anotação.")
	assert.True(t, ok)
	_, _, ok = imageNamed(doc, SignatureImage)
	assert.False(t, ok)
}

func TestRender_FooterOnEveryPage(t *testing.T) {
	rec := baseRecord()
	rec.VehicleImage = pngDataURL(t, 10, 10)
	rec.Notes = strings.Repeat("linha de anotação\n", 60)

	doc, err := NewRenderer().Render(rec)
	require.NoError(t, err)
	require.Greater(t, doc.PageCount(), 2)

	for _, p := range doc.Pages {
		footer := fmt.Sprintf("Página %d de %d", p.Number, doc.PageCount())
		var found bool
		for _, txt := range p.Texts() {
			if txt.Value == footer {
				found = true
				assert.Equal(t, PageHeight-10, txt.Y)
				assert.Equal(t, Gray, txt.Color)
			}
			if txt.Font == fontBody && txt.Color == Black {
				assert.LessOrEqual(t, txt.Y, bottomLimit+lineHeight(fontBody.Size))
			}
		}
		assert.True(t, found, "page %d has no footer", p.Number)

		band, ok := p.Elements[0].(Rect)
		require.True(t, ok)
		assert.Equal(t, BrandBlue, band.Color)
		assert.Equal(t, headerBand, band.H)
	}
}

func TestSectionTitleMovesToNewPage(t *testing.T) {
	doc := &Document{}
	l := &layout{m: NewMeasurer(), doc: doc}
	l.newPage()
	l.y = 251

	l.sectionTitle("Transferência, Anotações e Assinatura")

	require.Len(t, doc.Pages, 2)
	assert.Empty(t, doc.Pages[0].Elements)
	title, page, ok := doc.FindText("Transferência, Anotações e Assinatura")
	require.True(t, ok)
	assert.Equal(t, 2, page)
	assert.Equal(t, ContentTop+6, title.Y)
	assert.Equal(t, ContentTop+12, l.y)
}

func TestRenderPDF_Deterministic(t *testing.T) {
	rec := baseRecord()
	rec.VehicleImage = pngDataURL(t, 64, 32)
	rec.Signature = pngDataURL(t, 32, 16)
	rec.DamageMarkers = []Models.DamageMarker{{ID: 1, Type: Models.DamageDent, X: 25, Y: 75, Description: "amassado"}}
	rec.Notes = "Sem observações adicionais."

	r := NewRenderer()
	first, err := r.RenderPDF(rec)
	require.NoError(t, err)
	second, err := r.RenderPDF(rec)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))
	assert.True(t, bytes.Equal(first, second), "same record must produce identical bytes")
}

func TestRenderPDF_InvalidPhoto(t *testing.T) {
	rec := baseRecord()
	rec.VehicleImage = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("not a jpeg"))

	_, err := NewRenderer().RenderPDF(rec)
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestNormalizeImage(t *testing.T) {
	sig, err := normalizeImage(SignatureImage, pngDataURL(t, 1600, 400))
	require.NoError(t, err)
	assert.Equal(t, "PNG", sig.kind)

	img, err := png.Decode(bytes.NewReader(sig.data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx(), "signature is bounded to 800x400")
	assert.Equal(t, 200, img.Bounds().Dy())

	raw := strings.TrimPrefix(pngDataURL(t, 8, 8), "data:image/png;base64,")
	photo, err := normalizeImage(PhotoImage, raw)
	require.NoError(t, err)
	assert.Equal(t, "JPG", photo.kind)
}
