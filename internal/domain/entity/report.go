package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportDimension selects how transactions are grouped into report records.
type ReportDimension string

const (
	ReportDimensionProduct       ReportDimension = "product"
	ReportDimensionCustomer      ReportDimension = "customer"
	ReportDimensionSalesperson   ReportDimension = "salesperson"
	ReportDimensionIncomeExpense ReportDimension = "income_expense"
	ReportDimensionTransactions  ReportDimension = "transactions"
)

// IsValid reports whether the dimension is supported.
func (d ReportDimension) IsValid() bool {
	switch d {
	case ReportDimensionProduct, ReportDimensionCustomer, ReportDimensionSalesperson,
		ReportDimensionIncomeExpense, ReportDimensionTransactions:
		return true
	}
	return false
}

// ColumnKind describes how the values of a report column are typed and printed.
type ColumnKind string

const (
	ColumnKindText    ColumnKind = "text"
	ColumnKindInteger ColumnKind = "integer"
	ColumnKindMoney   ColumnKind = "money"
	ColumnKindDate    ColumnKind = "date"
)

// ReportColumn describes one column of a report table. Width is a relative
// weight used by paginated renderers.
type ReportColumn struct {
	Key    string     `json:"key"`
	Header string     `json:"header"`
	Kind   ColumnKind `json:"kind"`
	Width  float64    `json:"width"`
}

// ReportCell is a single typed value. Only the field matching the column kind is set.
type ReportCell struct {
	Text   string          `json:"text,omitempty"`
	Int    int64           `json:"int,omitempty"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date,omitempty"`
}

// TextCell builds a text cell.
func TextCell(s string) ReportCell { return ReportCell{Text: s} }

// IntCell builds an integer cell.
func IntCell(n int64) ReportCell { return ReportCell{Int: n} }

// MoneyCell builds a money cell.
func MoneyCell(d decimal.Decimal) ReportCell { return ReportCell{Amount: d} }

// DateCell builds a date cell.
func DateCell(t time.Time) ReportCell { return ReportCell{Date: t} }

// ReportRow is an ordered list of cells, one per column.
type ReportRow []ReportCell

// ReportSummaryItem is a labelled figure printed below the table.
type ReportSummaryItem struct {
	Label  string          `json:"label"`
	Key    string          `json:"key"`
	Kind   ColumnKind      `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	Int    int64           `json:"int,omitempty"`
}

// ReportTable is the renderer-agnostic result of a report aggregation.
type ReportTable struct {
	Title       string              `json:"title"`
	Dimension   ReportDimension     `json:"dimension"`
	StartDate   time.Time           `json:"start_date"`
	EndDate     time.Time           `json:"end_date"`
	Period      string              `json:"period"`
	Columns     []ReportColumn      `json:"columns"`
	Rows        []ReportRow         `json:"rows"`
	TotalColumn string              `json:"total_column,omitempty"`
	Summary     []ReportSummaryItem `json:"summary,omitempty"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// ColumnIndex returns the position of the column with the given key, or -1.
func (t *ReportTable) ColumnIndex(key string) int {
	for i, col := range t.Columns {
		if col.Key == key {
			return i
		}
	}
	return -1
}

// GrandTotal sums the designated total column. ok is false when the table has none.
func (t *ReportTable) GrandTotal() (total decimal.Decimal, ok bool) {
	idx := t.ColumnIndex(t.TotalColumn)
	if idx < 0 {
		return decimal.Zero, false
	}
	total = decimal.Zero
	for _, row := range t.Rows {
		if idx < len(row) {
			total = total.Add(row[idx].Amount)
		}
	}
	return total, true
}
