package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Dan9191/library-fees/internal/models"
)

type csvEncoder struct{}

func init() {
	Register(csvEncoder{})
}

func (csvEncoder) Name() string        { return "csv" }
func (csvEncoder) Extension() string   { return ".csv" }
func (csvEncoder) ContentType() string { return "text/csv" }

func (csvEncoder) Encode(w io.Writer, totals []models.FeeTotal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.ReportHeader); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}
	for _, t := range totals {
		if err := cw.Write([]string{t.PatronID, t.Fixed()}); err != nil {
			return fmt.Errorf("csv write error: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv flush error: %w", err)
	}
	return nil
}
