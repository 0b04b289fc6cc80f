package Report

import (
	"fmt"
	"time"

	"Checklist/Models"
)

const (
	// bottomLimit is the lowest baseline content may use before flowing
	// to the next page.
	bottomLimit = 280.0

	sectionBreakY  = 250.0
	photoBreakY    = 150.0
	transferBreakY = 220.0

	columnOffset = 65.0
	valueOffset  = 25.0
	rightColumn  = 100.0

	photoWidth      = 180.0
	photoHeight     = 100.0
	markerRadius    = 2.0
	signatureWidth  = 80.0
	signatureHeight = 40.0
	signatureMaxY   = 220.0
)

const dateLayout = "02/01/2006 15:04:05"

// Renderer turns checklist records into Documents and PDFs. It holds no
// per-report state and is safe for concurrent use.
type Renderer struct {
	measure Measurer
}

func NewRenderer() *Renderer {
	return &Renderer{measure: NewMeasurer()}
}

// NewRendererWithMeasurer is used when text metrics come from elsewhere.
func NewRendererWithMeasurer(m Measurer) *Renderer {
	return &Renderer{measure: m}
}

// Render lays the record out. A record without a checklist type is
// rejected before any layout work.
func (r *Renderer) Render(rec *Models.ChecklistRecord) (*Document, error) {
	if rec == nil || !rec.HasChecklistType() {
		return nil, Models.MissingChecklistType()
	}

	doc := &Document{
		Width:     PageWidth,
		Height:    PageHeight,
		Images:    map[string]string{},
		CreatedAt: rec.InspectedAt,
		Title:     fmt.Sprintf("Checklist %s", orPlaceholder(rec.Plate)),
	}
	l := &layout{m: r.measure, doc: doc}
	l.newPage()

	l.generalInfo(rec)
	l.checklistItems(rec)
	l.tires(rec)
	if rec.VehicleImage != "" {
		doc.Images[PhotoImage] = rec.VehicleImage
		l.visualInspection(rec)
	}
	if rec.Signature != "" {
		doc.Images[SignatureImage] = rec.Signature
	}
	l.transfer(rec)

	decorate(doc, r.measure)
	return doc, nil
}

type layout struct {
	m    Measurer
	doc  *Document
	page *Page
	y    float64
}

func (l *layout) newPage() {
	p := &Page{Number: len(l.doc.Pages) + 1}
	l.doc.Pages = append(l.doc.Pages, p)
	l.page = p
	l.y = ContentTop
}

func (l *layout) text(x, y float64, s string, f Font) {
	l.page.add(Text{X: x, Y: y, Value: s, Font: f, Color: Black})
}

// sectionTitle draws the grey title bar. A title starting too low moves to
// a fresh page together with its section.
func (l *layout) sectionTitle(title string) {
	if l.y > sectionBreakY {
		l.newPage()
	}
	l.page.add(Rect{X: Margin, Y: l.y, W: PageWidth - 2*Margin, H: 8, Color: LightGray, Filled: true})
	l.text(Margin+2, l.y+6, title, fontSection)
	l.y += 12
}

func (l *layout) keyValue(xOffset float64, key, value string) {
	l.text(Margin+xOffset, l.y, key, fontBold)
	l.text(Margin+valueOffset+xOffset, l.y, orPlaceholder(value), fontBody)
}

func orPlaceholder(s string) string {
	if s == "" {
		return "---"
	}
	return s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func (l *layout) generalInfo(rec *Models.ChecklistRecord) {
	l.sectionTitle("Informações Gerais")
	rows := [][4]string{
		{"Data:", formatDate(rec.InspectedAt), "Placa:", rec.Plate},
		{"Observador:", rec.Observer, "Modelo:", rec.Model},
		{"Supervisor:", rec.Supervisor, "Condutor:", rec.Driver},
		{"KM:", rec.Odometer, "Combustível:", rec.FuelLevel},
		{"Tipo:", rec.ChecklistType, "Telefone:", rec.Phone},
	}
	for _, row := range rows {
		l.keyValue(0, row[0], row[1])
		l.keyValue(rightColumn, row[2], row[3])
		l.y += 6
	}
	l.y += 4
}

func columnX(i int) float64 {
	return Margin + float64(i)*columnOffset
}

// groupHeight is the vertical space a checkbox group uses: its title line
// plus one line per option.
func groupHeight(g Models.Group) float64 {
	return 5 + 5*float64(len(g.Options))
}

func (l *layout) checklistItems(rec *Models.ChecklistRecord) {
	l.sectionTitle("Itens do Checklist")
	for _, row := range Models.ChecklistGroups {
		height := 0.0
		for _, g := range row {
			height = max(height, groupHeight(g))
		}
		if l.y+height > bottomLimit {
			l.newPage()
		}
		end := l.y
		for i, g := range row {
			end = max(end, l.checkboxGroup(columnX(i), l.y, g, rec.Selected(g.Field)))
		}
		l.y = end + 5
	}
}

// checkboxGroup draws every option of g, ticking the selected ones, and
// returns the y below the last option.
func (l *layout) checkboxGroup(x, y float64, g Models.Group, selected Models.Selection) float64 {
	l.text(x, y, g.Title, fontGroup)
	y += 5
	for _, o := range g.Options {
		l.page.add(Rect{X: x + 2, Y: y - 3, W: 3, H: 3, Color: Black})
		if selected.Has(o.Key) {
			l.text(x+2.7, y-0.5, "X", fontBody)
		}
		l.text(x+7, y, o.Label, fontBody)
		y += 5
	}
	return y
}

func (l *layout) tires(rec *Models.ChecklistRecord) {
	if l.y+15 > bottomLimit {
		l.newPage()
	}
	l.page.add(Line{X1: Margin, Y1: l.y, X2: PageWidth - Margin, Y2: l.y, Color: LightGray})
	l.y += 5
	for i, g := range Models.TireGroups {
		x := columnX(i)
		value := "Não preenchido"
		if v := rec.Choice(g.Field); v != "" {
			value = g.Label(v)
		}
		l.text(x, l.y, g.Title, fontGroup)
		l.text(x+2, l.y+5, value, fontBody)
	}
	l.y += 15
}

func (l *layout) visualInspection(rec *Models.ChecklistRecord) {
	if l.y > photoBreakY {
		l.newPage()
	}
	l.sectionTitle("Inspeção Visual e Avarias")

	top := l.y
	l.page.add(Image{X: Margin, Y: top, W: photoWidth, H: photoHeight, Name: PhotoImage})
	for _, m := range rec.DamageMarkers {
		l.page.add(Circle{
			X:     Margin + photoWidth*m.X/100,
			Y:     top + photoHeight*m.Y/100,
			R:     markerRadius,
			Color: m.Type.Color(),
		})
	}
	l.y += photoHeight + 5

	if len(rec.DamageMarkers) == 0 {
		l.text(Margin, l.y, "- Nenhuma avaria registrada.", fontBody)
		l.y += 5
		return
	}
	for _, m := range rec.DamageMarkers {
		if l.y > bottomLimit {
			l.newPage()
		}
		l.text(Margin, l.y, fmt.Sprintf("- [%s] %s", m.Type.Initial(), m.Description), fontBody)
		l.y += 5
	}
}

// notesWidth keeps the notes column clear of the signature box on the right.
const notesWidth = PageWidth - 2*Margin - 100

func (l *layout) transfer(rec *Models.ChecklistRecord) {
	if l.y > transferBreakY {
		l.newPage()
	}
	l.sectionTitle("Transferência, Anotações e Assinatura")
	signaturePage, signatureY := l.page, min(l.y, signatureMaxY)

	l.keyValue(0, "Entregue por:", rec.DeliveredBy)
	l.y += 6
	l.keyValue(0, "Recebido por:", rec.ReceivedBy)
	l.y += 10
	l.text(Margin, l.y, "Anotações:", fontBold)
	l.y += 5

	notes := rec.Notes
	if notes == "" {
		notes = "Nenhuma anotação."
	}
	for _, line := range wrap(l.m, notes, fontBody, notesWidth) {
		if l.y > bottomLimit {
			l.newPage()
		}
		l.text(Margin, l.y, line, fontBody)
		l.y += lineHeight(fontBody.Size)
	}

	if rec.Signature == "" {
		return
	}
	x := PageWidth - Margin - signatureWidth
	signaturePage.add(Image{X: x, Y: signatureY, W: signatureWidth, H: signatureHeight, Name: SignatureImage})
	signaturePage.add(Line{X1: x, Y1: signatureY + 42, X2: PageWidth - Margin, Y2: signatureY + 42, Color: Black})
	caption := "Assinatura do Condutor"
	signaturePage.add(Text{
		X:     PageWidth - Margin - signatureWidth/2 - l.m.Width(caption, fontBody)/2,
		Y:     signatureY + 46,
		Value: caption,
		Font:  fontBody,
		Color: Black,
	})
}
