// Package Report lays a checklist record out on A4 pages and encodes the
// result as PDF.
//
// Rendering runs in two passes. The content pass flows the record's
// sections down the pages with a single cursor. The decoration pass then
// stamps the header band and the "Página i de N" footer on every page,
// which needs the final page count.
package Report

import (
	"time"

	"Checklist/Models"
)

// Page geometry in millimetres.
const (
	PageWidth  = 210.0
	PageHeight = 297.0
	Margin     = 15.0
	ContentTop = 30.0
)

// Image names referenced by Image elements.
const (
	PhotoImage     = "photo"
	SignatureImage = "signature"
)

type Color = Models.RGB

var (
	Black     = Color{R: 0, G: 0, B: 0}
	White     = Color{R: 255, G: 255, B: 255}
	LightGray = Color{R: 220, G: 220, B: 220}
	Gray      = Color{R: 150, G: 150, B: 150}
	BrandBlue = Color{R: 76, G: 81, B: 109}
)

// Font is always Helvetica; Style is "" or "B".
type Font struct {
	Style string
	Size  float64
}

var (
	fontBody    = Font{"", 9}
	fontBold    = Font{"B", 9}
	fontGroup   = Font{"B", 10}
	fontSection = Font{"B", 12}
	fontBrand   = Font{"B", 16}
	fontTitle   = Font{"", 14}
	fontFooter  = Font{"", 8}
)

// Element is one drawing instruction on a page.
type Element interface {
	element()
}

// Text is drawn with its baseline at Y, starting at X.
type Text struct {
	X, Y  float64
	Value string
	Font  Font
	Color Color
}

type Rect struct {
	X, Y, W, H float64
	Color      Color
	Filled     bool
}

type Line struct {
	X1, Y1, X2, Y2 float64
	Color          Color
}

// Circle is a filled dot centred on X, Y.
type Circle struct {
	X, Y, R float64
	Color   Color
}

type Image struct {
	X, Y, W, H float64
	Name       string
}

func (Text) element()   {}
func (Rect) element()   {}
func (Line) element()   {}
func (Circle) element() {}
func (Image) element()  {}

type Page struct {
	Number   int
	Elements []Element
}

func (p *Page) add(e Element) {
	p.Elements = append(p.Elements, e)
}

// Texts returns the text elements of the page in drawing order.
func (p *Page) Texts() []Text {
	var out []Text
	for _, e := range p.Elements {
		if t, ok := e.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}

// Document is the paginated description of a report, ready to encode.
type Document struct {
	Width, Height float64
	Pages         []*Page
	// Images maps image names to the data URL or base64 payload taken from
	// the record. They are decoded at encode time.
	Images map[string]string
	// CreatedAt is written as the PDF creation date.
	CreatedAt time.Time
	Title     string
}

func (d *Document) PageCount() int {
	return len(d.Pages)
}

// FindText returns the first text element whose value equals s and the
// number of the page it is on.
func (d *Document) FindText(s string) (Text, int, bool) {
	for _, p := range d.Pages {
		for _, t := range p.Texts() {
			if t.Value == s {
				return t, p.Number, true
			}
		}
	}
	return Text{}, 0, false
}
