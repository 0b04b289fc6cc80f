package Report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"Checklist/Models"
)

// Encode writes the document as PDF. The output depends only on the
// document: the creation date comes from the record and catalogs are
// written in sorted order.
func (r *Renderer) Encode(doc *Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	created := doc.CreatedAt
	if created.IsZero() {
		created = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("checklist", true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	names := make([]string, 0, len(doc.Images))
	for name := range doc.Images {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		img, err := normalizeImage(name, doc.Images[name])
		if err != nil {
			return nil, err
		}
		pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: img.kind}, bytes.NewReader(img.data))
	}

	for _, p := range doc.Pages {
		pdf.AddPage()
		for _, e := range p.Elements {
			draw(pdf, tr, e)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func draw(pdf *fpdf.Fpdf, tr func(string) string, e Element) {
	switch el := e.(type) {
	case Text:
		pdf.SetFont("Helvetica", el.Font.Style, el.Font.Size)
		pdf.SetTextColor(el.Color.R, el.Color.G, el.Color.B)
		pdf.Text(el.X, el.Y, tr(el.Value))
	case Rect:
		if el.Filled {
			pdf.SetFillColor(el.Color.R, el.Color.G, el.Color.B)
			pdf.Rect(el.X, el.Y, el.W, el.H, "F")
			return
		}
		pdf.SetDrawColor(el.Color.R, el.Color.G, el.Color.B)
		pdf.SetLineWidth(0.2)
		pdf.Rect(el.X, el.Y, el.W, el.H, "D")
	case Line:
		pdf.SetDrawColor(el.Color.R, el.Color.G, el.Color.B)
		pdf.SetLineWidth(0.2)
		pdf.Line(el.X1, el.Y1, el.X2, el.Y2)
	case Circle:
		pdf.SetFillColor(el.Color.R, el.Color.G, el.Color.B)
		pdf.Circle(el.X, el.Y, el.R, "F")
	case Image:
		pdf.ImageOptions(el.Name, el.X, el.Y, el.W, el.H, false, fpdf.ImageOptions{}, 0, "")
	}
}

// RenderPDF renders and encodes in one step.
func (r *Renderer) RenderPDF(rec *Models.ChecklistRecord) ([]byte, error) {
	doc, err := r.Render(rec)
	if err != nil {
		return nil, err
	}
	return r.Encode(doc)
}
