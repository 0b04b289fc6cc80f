package Upload

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/zeebo/xxh3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"Checklist/Models"
)

// Payload is the JSON envelope the Drive web app expects.
type Payload struct {
	PDFData       string `json:"pdfData"`
	FileName      string `json:"fileName"`
	ChecklistType string `json:"tipoChecklist"`
	Year          string `json:"ano"`
	Month         string `json:"mes"`

	// Key identifies the submission for the in-flight guard. When empty the
	// rendered PDF is used instead.
	Key string `json:"-"`
}

// Response is the web app's answer. Only Status "success" is a success.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

const fileTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// BuildPayload packs a rendered PDF for upload. The year and month folders
// follow now in its own location; the file name carries now in UTC.
func BuildPayload(rec *Models.ChecklistRecord, pdf []byte, now time.Time) Payload {
	typ := capitalize(rec.ChecklistType)
	plate := rec.Plate
	if plate == "" {
		plate = "Veiculo"
	}
	return Payload{
		PDFData:       base64.StdEncoding.EncodeToString(pdf),
		FileName:      fmt.Sprintf("%s_%s_%s.pdf", plate, typ, now.UTC().Format(fileTimeLayout)),
		ChecklistType: typ,
		Year:          fmt.Sprintf("%04d", now.Year()),
		Month:         fmt.Sprintf("%02d - %s", int(now.Month()), monthNames[now.Month()-1]),
	}
}

// capitalize upper-cases the first letter and leaves the rest untouched.
// A Caser keeps state, so each call gets its own.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.BrazilianPortuguese).String(string(r)) + s[size:]
}

// SubmissionKey hashes the record as the user sent it. Call it before the
// record is stamped with the submit time, so that two clicks on the same
// form map to the same key even when they straddle a second.
func SubmissionKey(rec *Models.ChecklistRecord) string {
	data, err := json.Marshal(rec)
	if err != nil {
		return ""
	}
	h := xxh3.New()
	_, _ = h.WriteString(rec.ChecklistType)
	_, _ = h.WriteString("\x00")
	_, _ = h.Write(data)
	return strconv.FormatUint(h.Sum64(), 16)
}
