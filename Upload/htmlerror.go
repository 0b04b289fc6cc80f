package Upload

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxMessageRunes = 300

// htmlMessage reduces an HTML error page, as served by Apps Script when
// the deployment is broken, to its visible text.
func htmlMessage(page []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()
	if text := collapse(doc.Find("body").Text()); text != "" {
		return truncate(text)
	}
	return truncate(collapse(doc.Find("title").First().Text()))
}

func looksLikeHTML(contentType string, body []byte) bool {
	if strings.Contains(contentType, "text/html") {
		return true
	}
	return bytes.HasPrefix(bytes.TrimSpace(body), []byte("<"))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxMessageRunes {
		return s
	}
	return string(r[:maxMessageRunes]) + "…"
}
