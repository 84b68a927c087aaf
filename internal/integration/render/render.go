// Package render serialises aggregated report tables as JSON, XLSX or PDF.
// Rendering is a pure function of the table: it never queries or re-aggregates.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

// Format is a report output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// ParseFormat accepts json, excel (or xlsx) and pdf. An empty value means json.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "json":
		return FormatJSON, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", domainerror.NewReportError(
		domainerror.ErrCodeInvalidFormat,
		"format must be one of json, excel, pdf",
		domainerror.ErrInvalidReportFormat,
	)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json; charset=utf-8"
	}
}

// Extension returns the file extension of the format without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatExcel:
		return "xlsx"
	case FormatPDF:
		return "pdf"
	default:
		return "json"
	}
}

// Options configures a Renderer.
type Options struct {
	Locale valueobject.Locale
	// PDFCompression toggles stream compression in generated PDFs.
	PDFCompression bool
}

// Renderer turns report tables into documents.
type Renderer struct {
	locale         valueobject.Locale
	pdfCompression bool
}

// NewRenderer creates a new Renderer.
func NewRenderer(opts Options) *Renderer {
	locale := opts.Locale
	if locale.Code == "" {
		locale = valueobject.LocaleID
	}
	return &Renderer{
		locale:         locale,
		pdfCompression: opts.PDFCompression,
	}
}

// Render writes table to w in the given format. Failures are reported as RenderFailure.
func (r *Renderer) Render(w io.Writer, table *entity.ReportTable, format Format) error {
	var err error
	switch format {
	case FormatJSON:
		err = r.renderJSON(w, table)
	case FormatExcel:
		err = r.renderXLSX(w, table)
	case FormatPDF:
		err = r.renderPDF(w, table)
	default:
		_, err = ParseFormat(string(format))
		return err
	}
	if err != nil {
		return domainerror.NewReportError(domainerror.ErrCodeRenderFailure, "failed to render report", fmt.Errorf("%w: %v", domainerror.ErrRenderFailed, err))
	}
	return nil
}

// FileName builds a download name such as "product_2024-01-01_2024-01-31.xlsx".
func FileName(table *entity.ReportTable, format Format) string {
	base := strings.ReplaceAll(string(table.Dimension), "_", "-")
	start := table.StartDate.Format(valueobject.DateLayout)
	end := table.EndDate.Format(valueobject.DateLayout)
	if start == end {
		return fmt.Sprintf("%s_%s.%s", base, start, format.Extension())
	}
	return fmt.Sprintf("%s_%s_%s.%s", base, start, end, format.Extension())
}

// cellText prints a cell for human-facing formats.
func (r *Renderer) cellText(kind entity.ColumnKind, cell entity.ReportCell) string {
	switch kind {
	case entity.ColumnKindMoney:
		return r.locale.FormatMoney(cell.Amount)
	case entity.ColumnKindInteger:
		return r.locale.FormatNumber(decimal.NewFromInt(cell.Int), 0)
	case entity.ColumnKindDate:
		if cell.Date.IsZero() {
			return ""
		}
		return cell.Date.UTC().Format(valueobject.DateLayout)
	default:
		return cell.Text
	}
}

func (r *Renderer) summaryText(item entity.ReportSummaryItem) string {
	if item.Kind == entity.ColumnKindMoney {
		return r.locale.FormatMoney(item.Amount)
	}
	return r.locale.FormatNumber(decimal.NewFromInt(item.Int), 0)
}
