package report

import (
	"fmt"
	"io"

	"github.com/Dan9191/library-fees/internal/models"
	"github.com/beevik/etree"
)

type xmlEncoder struct{}

func init() {
	Register(xmlEncoder{})
}

func (xmlEncoder) Name() string        { return "xml" }
func (xmlEncoder) Extension() string   { return ".xml" }
func (xmlEncoder) ContentType() string { return "application/xml" }

// Encode writes <fee_report><patron id=".." late_fees=".."/>...</fee_report>
func (xmlEncoder) Encode(w io.Writer, totals []models.FeeTotal) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("fee_report")
	for _, t := range totals {
		patron := root.CreateElement("patron")
		patron.CreateAttr("id", t.PatronID)
		patron.CreateAttr("late_fees", t.Fixed())
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}
	return nil
}
