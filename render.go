package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"Checklist/Models"
	"Checklist/Report"
)

// NewRenderCmd renders a checklist record saved as JSON to a PDF file.
func NewRenderCmd() *cobra.Command {
	var (
		output string
		at     string
	)
	cmd := &cobra.Command{
		Use:   "render <record.json>",
		Short: "Render a checklist record to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var rec Models.ChecklistRecord
			if err := json.Unmarshal(data, &rec); err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}

			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--at: %w", err)
				}
				rec.InspectedAt = t
			}
			if rec.InspectedAt.IsZero() {
				rec.InspectedAt = time.Now()
			}
			if err := Models.Validate(&rec); err != nil {
				return err
			}

			pdf, err := Report.NewRenderer().RenderPDF(&rec)
			if err != nil {
				return err
			}
			if output == "" {
				output = orDefault(rec.Plate, "checklist") + ".pdf"
			}
			if err := os.WriteFile(output, pdf, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", output, len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <placa>.pdf)")
	cmd.Flags().StringVar(&at, "at", "", "inspection time, RFC 3339 (default: the record's inspectedAt, else now)")
	return cmd
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
