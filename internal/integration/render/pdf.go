package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/salesledger/backend/internal/domain/entity"
)

const (
	pdfFont         = "Helvetica"
	pdfRowHeight    = 6.0
	pdfHeaderHeight = 7.0
	pdfMargin       = 10.0
	pdfBottomMargin = 14.0
)

type rgb struct{ r, g, b int }

var (
	pdfHeaderFill = rgb{79, 129, 189}
	pdfZebraFill  = rgb{233, 239, 247}
	pdfTotalFill  = rgb{217, 217, 217}
)

// renderPDF writes a landscape A4 document. The column header is repeated on
// every page and money is printed with the configured locale.
func (r *Renderer) renderPDF(w io.Writer, table *entity.ReportTable) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetCompression(r.pdfCompression)
	pdf.SetTitle(table.Title, true)
	pdf.SetCreator("salesledger", true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfBottomMargin)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pageW, pageH := pdf.GetPageSize()
	widths := columnWidths(table.Columns, pageW-2*pdfMargin)
	limit := pageH - pdfBottomMargin

	drawHeader := func() {
		pdf.SetFont(pdfFont, "B", 9)
		setFill(pdf, pdfHeaderFill)
		pdf.SetTextColor(255, 255, 255)
		for i, col := range table.Columns {
			pdf.CellFormat(widths[i], pdfHeaderHeight, tr(col.Header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(pdfFont, "", 9)
	}

	ensureSpace := func(h float64, withHeader bool) {
		if pdf.GetY()+h <= limit {
			return
		}
		pdf.AddPage()
		if withHeader {
			drawHeader()
		}
	}

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 9, tr(table.Title), "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 10)
	pdf.CellFormat(0, 6, tr("Period: "+table.Period), "", 1, "C", false, 0, "")
	if !table.GeneratedAt.IsZero() {
		pdf.CellFormat(0, 6, "Generated: "+table.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	drawHeader()

	for i, row := range table.Rows {
		ensureSpace(pdfRowHeight, true)
		fill := i%2 == 1
		if fill {
			setFill(pdf, pdfZebraFill)
		}
		for j, col := range table.Columns {
			text := ""
			if j < len(row) {
				text = fitText(pdf, tr, r.cellText(col.Kind, row[j]), widths[j]-2)
			}
			pdf.CellFormat(widths[j], pdfRowHeight, text, "1", 0, alignFor(col.Kind), fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if total, ok := table.GrandTotal(); ok {
		ensureSpace(pdfRowHeight, true)
		idx := table.ColumnIndex(table.TotalColumn)
		pdf.SetFont(pdfFont, "B", 9)
		setFill(pdf, pdfTotalFill)

		labelWidth := 0.0
		for j := 0; j < idx; j++ {
			labelWidth += widths[j]
		}
		if labelWidth > 0 {
			pdf.CellFormat(labelWidth, pdfRowHeight, grandTotalText, "1", 0, "L", true, 0, "")
		}
		pdf.CellFormat(widths[idx], pdfRowHeight, tr(r.locale.FormatMoney(total)), "1", 0, "R", true, 0, "")
		for j := idx + 1; j < len(widths); j++ {
			pdf.CellFormat(widths[j], pdfRowHeight, "", "1", 0, "", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(pdfFont, "", 9)
	}

	if len(table.Summary) > 0 {
		pdf.Ln(4)
		ensureSpace(pdfRowHeight*float64(len(table.Summary)+1), false)
		pdf.SetFont(pdfFont, "B", 10)
		pdf.CellFormat(0, pdfRowHeight, "Summary", "", 1, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 10)
		for _, item := range table.Summary {
			pdf.CellFormat(60, pdfRowHeight, tr(item.Label), "B", 0, "L", false, 0, "")
			pdf.CellFormat(50, pdfRowHeight, tr(r.summaryText(item)), "B", 1, "R", false, 0, "")
		}
	}

	return pdf.Output(w)
}

// columnWidths scales the relative column weights to the printable width.
func columnWidths(columns []entity.ReportColumn, available float64) []float64 {
	widths := make([]float64, len(columns))
	sum := 0.0
	for i, col := range columns {
		w := col.Width
		if w <= 0 {
			w = 1
		}
		widths[i] = w
		sum += w
	}
	if sum == 0 {
		return widths
	}
	for i := range widths {
		widths[i] = widths[i] / sum * available
	}
	return widths
}

// fitText truncates s with an ellipsis until its translated form fits into width.
func fitText(pdf *fpdf.Fpdf, tr func(string) string, s string, width float64) string {
	if pdf.GetStringWidth(tr(s)) <= width {
		return tr(s)
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := tr(string(runes) + "...")
		if pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}

func alignFor(kind entity.ColumnKind) string {
	switch kind {
	case entity.ColumnKindMoney, entity.ColumnKindInteger:
		return "R"
	case entity.ColumnKindDate:
		return "C"
	default:
		return "L"
	}
}

func setFill(pdf *fpdf.Fpdf, c rgb) {
	pdf.SetFillColor(c.r, c.g, c.b)
}
