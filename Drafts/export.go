package Drafts

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Rascunhos"

var exportHeaders = []string{"Chave", "Salvo em", "Placa", "Modelo", "Condutor", "Tipo", "Avarias"}

// Export writes owner's drafts, newest first, as an xlsx workbook.
func (s *Store) Export(ctx context.Context, owner string, loc *time.Location, w io.Writer) error {
	entries, err := s.entries(ctx, owner)
	if err != nil {
		return err
	}
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCDCDC"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("error styling header row: %w", err)
	}

	for i, e := range entries {
		values := []interface{}{
			e.Key,
			time.UnixMilli(e.Timestamp).In(loc).Format("02/01/2006 15:04:05"),
			e.Record.Plate,
			e.Record.Model,
			e.Record.Driver,
			e.Record.ChecklistType,
			len(e.Record.DamageMarkers),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return err
		}
	}

	last, _ := excelize.ColumnNumberToName(len(exportHeaders))
	if err := f.SetColWidth(exportSheet, "A", last, 18); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing Excel file: %w", err)
	}
	return nil
}
