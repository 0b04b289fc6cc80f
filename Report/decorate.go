package Report

import "fmt"

const (
	brandName   = "C.P.M"
	reportTitle = "Relatório de Checklist Veicular"
	headerBand  = 20.0
)

// decorate stamps the header band and the page footer on every page. It
// runs after the content pass because the footer needs the page count.
func decorate(doc *Document, m Measurer) {
	total := len(doc.Pages)
	titleX := PageWidth - Margin - m.Width(reportTitle, fontTitle)
	for _, p := range doc.Pages {
		header := []Element{
			Rect{X: 0, Y: 0, W: PageWidth, H: headerBand, Color: BrandBlue, Filled: true},
			Text{X: Margin, Y: 12, Value: brandName, Font: fontBrand, Color: White},
			Text{X: titleX, Y: 12, Value: reportTitle, Font: fontTitle, Color: White},
		}
		footer := fmt.Sprintf("Página %d de %d", p.Number, total)
		p.Elements = append(header, p.Elements...)
		p.add(Text{
			X:     PageWidth/2 - m.Width(footer, fontFooter)/2,
			Y:     PageHeight - 10,
			Value: footer,
			Font:  fontFooter,
			Color: Gray,
		})
	}
}
