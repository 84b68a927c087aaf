package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/salesledger/backend/internal/domain/entity"
)

const (
	sheetName      = "Report"
	headerFill     = "4F81BD"
	zebraFill      = "E9EFF7"
	totalFill      = "D9D9D9"
	headerRow      = 4
	moneyNumFormat = "#,##0.00"
	grandTotalText = "GRAND TOTAL"
)

type xlsxStyles struct {
	title      int
	header     int
	text       int
	textZebra  int
	money      int
	moneyZebra int
	totalLabel int
	totalMoney int
}

type styleDef struct {
	target *int
	style  *excelize.Style
}

func newXLSXStyles(f *excelize.File) (*xlsxStyles, error) {
	numFmt := moneyNumFormat
	border := []excelize.Border{
		{Type: "left", Color: "BFBFBF", Style: 1},
		{Type: "top", Color: "BFBFBF", Style: 1},
		{Type: "right", Color: "BFBFBF", Style: 1},
		{Type: "bottom", Color: "BFBFBF", Style: 1},
	}
	zebra := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{zebraFill}}
	total := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{totalFill}}

	s := &xlsxStyles{}
	defs := []styleDef{
		{&s.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}},
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
			Border:    border,
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}},
		{&s.text, &excelize.Style{Border: border}},
		{&s.textZebra, &excelize.Style{Border: border, Fill: zebra}},
		{&s.money, &excelize.Style{Border: border, CustomNumFmt: &numFmt}},
		{&s.moneyZebra, &excelize.Style{Border: border, Fill: zebra, CustomNumFmt: &numFmt}},
		{&s.totalLabel, &excelize.Style{Border: border, Fill: total, Font: &excelize.Font{Bold: true}}},
		{&s.totalMoney, &excelize.Style{Border: border, Fill: total, Font: &excelize.Font{Bold: true}, CustomNumFmt: &numFmt}},
	}

	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, fmt.Errorf("create style: %w", err)
		}
		*d.target = id
	}
	return s, nil
}

// renderXLSX writes a single-sheet workbook. Money cells hold the exact decimal
// value with a thousands-separated two-place number format.
func (r *Renderer) renderXLSX(w io.Writer, table *entity.ReportTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	styles, err := newXLSXStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetCellValue(sheetName, "A1", table.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", styles.title); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, "A2", "Period: "+table.Period); err != nil {
		return err
	}

	for i, col := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, col.Header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, styles.header); err != nil {
			return err
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, name, name, columnWidth(col)); err != nil {
			return err
		}
	}

	rowNum := headerRow
	for i, row := range table.Rows {
		rowNum = headerRow + 1 + i
		zebra := i%2 == 1
		for j, col := range table.Columns {
			if j >= len(row) {
				break
			}
			cell, err := excelize.CoordinatesToCellName(j+1, rowNum)
			if err != nil {
				return err
			}
			if err := r.writeXLSXCell(f, cell, col.Kind, row[j]); err != nil {
				return err
			}
			style := styles.text
			if col.Kind == entity.ColumnKindMoney {
				style = styles.money
				if zebra {
					style = styles.moneyZebra
				}
			} else if zebra {
				style = styles.textZebra
			}
			if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
				return err
			}
		}
	}

	if total, ok := table.GrandTotal(); ok {
		rowNum++
		idx := table.ColumnIndex(table.TotalColumn)
		for j := range table.Columns {
			cell, err := excelize.CoordinatesToCellName(j+1, rowNum)
			if err != nil {
				return err
			}
			style := styles.totalLabel
			switch {
			case j == idx:
				style = styles.totalMoney
				if err := f.SetCellDefault(sheetName, cell, total.StringFixed(2)); err != nil {
					return err
				}
			case j == 0:
				if err := f.SetCellValue(sheetName, cell, grandTotalText); err != nil {
					return err
				}
			}
			if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
				return err
			}
		}
	}

	if len(table.Summary) > 0 {
		rowNum += 2
		for _, item := range table.Summary {
			label, _ := excelize.CoordinatesToCellName(1, rowNum)
			value, _ := excelize.CoordinatesToCellName(2, rowNum)
			if err := f.SetCellValue(sheetName, label, item.Label); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheetName, label, label, styles.totalLabel); err != nil {
				return err
			}
			if item.Kind == entity.ColumnKindMoney {
				if err := f.SetCellDefault(sheetName, value, item.Amount.StringFixed(2)); err != nil {
					return err
				}
				if err := f.SetCellStyle(sheetName, value, value, styles.money); err != nil {
					return err
				}
			} else if err := f.SetCellValue(sheetName, value, item.Int); err != nil {
				return err
			}
			rowNum++
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	return f.Write(w)
}

func (r *Renderer) writeXLSXCell(f *excelize.File, cell string, kind entity.ColumnKind, value entity.ReportCell) error {
	switch kind {
	case entity.ColumnKindMoney:
		return f.SetCellDefault(sheetName, cell, value.Amount.StringFixed(2))
	case entity.ColumnKindInteger:
		return f.SetCellValue(sheetName, cell, value.Int)
	default:
		return f.SetCellValue(sheetName, cell, r.cellText(kind, value))
	}
}

func columnWidth(col entity.ReportColumn) float64 {
	if col.Width <= 0 {
		return 18
	}
	return col.Width * 6
}
