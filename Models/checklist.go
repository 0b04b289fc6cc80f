package Models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DamageType is the kind of damage a marker points at on the vehicle photo.
type DamageType string

const (
	DamageScratch DamageType = "scratch"
	DamageDent    DamageType = "dent"
	DamageCrack   DamageType = "crack"
)

// RGB is a colour with 0-255 channels.
type RGB struct {
	R, G, B int
}

// Glyph is the letter drawn inside the marker on the inspection screen.
func (t DamageType) Glyph() string {
	switch t {
	case DamageScratch:
		return "N"
	case DamageDent:
		return "O"
	case DamageCrack:
		return "X"
	}
	return "?"
}

// Initial is the upper-cased first letter used in the report's damage list.
func (t DamageType) Initial() string {
	if t == "" {
		return "?"
	}
	return strings.ToUpper(string(t)[:1])
}

// Color of the dot plotted on the report photo.
func (t DamageType) Color() RGB {
	switch t {
	case DamageScratch:
		return RGB{R: 255, G: 193, B: 7}
	case DamageDent:
		return RGB{R: 253, G: 126, B: 20}
	default:
		return RGB{R: 220, G: 53, B: 69}
	}
}

func (t DamageType) Valid() bool {
	return t == DamageScratch || t == DamageDent || t == DamageCrack
}

// DamageMarker is a point annotation on the vehicle photo. X and Y are
// percentages of the displayed image box, not pixels.
type DamageMarker struct {
	ID          int64      `json:"id" validate:"required"`
	Type        DamageType `json:"type" validate:"required,oneof=scratch dent crack"`
	X           float64    `json:"x" validate:"min=0,max=100"`
	Y           float64    `json:"y" validate:"min=0,max=100"`
	Description string     `json:"description" validate:"max=500"`
}

// Selection holds the option keys ticked in a multi-select group. The web
// form posts a bare string when only one box is ticked, so both forms decode.
type Selection []string

func (s *Selection) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		if single == "" {
			*s = nil
			return nil
		}
		*s = Selection{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("selection must be a string or an array of strings: %w", err)
	}
	*s = Selection(many)
	return nil
}

func (s Selection) Has(key string) bool {
	for _, v := range s {
		if v == key {
			return true
		}
	}
	return false
}

// ChecklistRecord is the complete state of one inspection form.
type ChecklistRecord struct {
	ChecklistType string    `json:"tipoChecklist" validate:"max=40"`
	InspectedAt   time.Time `json:"inspectedAt"`

	Plate       string `json:"placa" validate:"max=10"`
	Model       string `json:"modelo" validate:"max=80"`
	Driver      string `json:"condutor" validate:"max=120"`
	Phone       string `json:"telefone" validate:"omitempty,phone_br"`
	Observer    string `json:"observador" validate:"max=120"`
	Supervisor  string `json:"supervisor" validate:"max=120"`
	Odometer    string `json:"km" validate:"max=20"`
	FuelLevel   string `json:"combustivel" validate:"max=20"`
	DeliveredBy string `json:"entregue_por" validate:"max=120"`
	ReceivedBy  string `json:"recebido_por" validate:"max=120"`
	Notes       string `json:"anotacoes" validate:"max=4000"`

	Accessories   Selection `json:"acessorios" validate:"dive,option=acessorios"`
	Electrical    Selection `json:"sistema_eletrico" validate:"dive,option=sistema_eletrico"`
	Brakes        Selection `json:"freios" validate:"dive,option=freios"`
	Engine        Selection `json:"motor" validate:"dive,option=motor"`
	Suspension    Selection `json:"eixo_suspensao" validate:"dive,option=eixo_suspensao"`
	Documentation Selection `json:"documentacao" validate:"dive,option=documentacao"`

	FrontTires string `json:"pneus_dianteiros" validate:"omitempty,oneof=bom regular ruim"`
	RearTires  string `json:"pneus_traseiros" validate:"omitempty,oneof=bom regular ruim"`
	SpareTire  string `json:"estepe" validate:"omitempty,oneof=bom regular ruim"`

	VehicleImage  string         `json:"vehicleImageBase64,omitempty" validate:"omitempty,datauri|base64"`
	DamageMarkers []DamageMarker `json:"damageMarkers" validate:"unique=ID,dive"`
	Signature     string         `json:"signatureBase64,omitempty" validate:"omitempty,datauri|base64"`
}

// Selected returns the ticked keys of the multi-select group stored under
// the given JSON field name.
func (r *ChecklistRecord) Selected(field string) Selection {
	switch field {
	case "acessorios":
		return r.Accessories
	case "sistema_eletrico":
		return r.Electrical
	case "freios":
		return r.Brakes
	case "motor":
		return r.Engine
	case "eixo_suspensao":
		return r.Suspension
	case "documentacao":
		return r.Documentation
	}
	return nil
}

// Choice returns the value of the single-select group stored under field.
func (r *ChecklistRecord) Choice(field string) string {
	switch field {
	case "pneus_dianteiros":
		return r.FrontTires
	case "pneus_traseiros":
		return r.RearTires
	case "estepe":
		return r.SpareTire
	}
	return ""
}

// HasChecklistType reports whether the record carries a non-blank type tag.
func (r *ChecklistRecord) HasChecklistType() bool {
	return strings.TrimSpace(r.ChecklistType) != ""
}

// ApplySession stamps the logged-in observer and supervisor on the record.
func (r *ChecklistRecord) ApplySession(s *Session) {
	if s == nil {
		return
	}
	r.Observer = s.Observer
	r.Supervisor = s.Supervisor
}

// AddMarker appends a marker, giving it an id from the creation time when
// it has none.
func (r *ChecklistRecord) AddMarker(m DamageMarker, now time.Time) DamageMarker {
	if strings.TrimSpace(m.Description) == "" {
		m.Description = "Dano não especificado"
	}
	if m.ID == 0 {
		m.ID = now.UnixMilli()
	}
	for r.hasMarker(m.ID) {
		m.ID++
	}
	r.DamageMarkers = append(r.DamageMarkers, m)
	return m
}

// RemoveMarker drops the marker with the given id and reports whether it existed.
func (r *ChecklistRecord) RemoveMarker(id int64) bool {
	kept := r.DamageMarkers[:0]
	removed := false
	for _, m := range r.DamageMarkers {
		if m.ID == id {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	r.DamageMarkers = kept
	return removed
}

func (r *ChecklistRecord) hasMarker(id int64) bool {
	for _, m := range r.DamageMarkers {
		if m.ID == id {
			return true
		}
	}
	return false
}
