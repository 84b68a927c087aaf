package render

import (
	"encoding/json"
	"io"
	"time"

	"github.com/salesledger/backend/internal/domain/entity"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

type jsonColumn struct {
	Key    string `json:"key"`
	Header string `json:"header"`
	Kind   string `json:"kind"`
}

type jsonReport struct {
	Title       string           `json:"title"`
	Period      string           `json:"period"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	GeneratedAt time.Time        `json:"generated_at"`
	Columns     []jsonColumn     `json:"columns"`
	Records     []map[string]any `json:"records"`
	Total       *string          `json:"total,omitempty"`
	Summary     map[string]any   `json:"summary,omitempty"`
}

// renderJSON writes records keyed by column. Money is a fixed two-place
// decimal string so no precision is lost to floating point.
func (r *Renderer) renderJSON(w io.Writer, table *entity.ReportTable) error {
	out := jsonReport{
		Title:       table.Title,
		Period:      table.Period,
		StartDate:   table.StartDate.Format(valueobject.DateLayout),
		EndDate:     table.EndDate.Format(valueobject.DateLayout),
		GeneratedAt: table.GeneratedAt,
		Columns:     make([]jsonColumn, len(table.Columns)),
		Records:     make([]map[string]any, 0, len(table.Rows)),
	}

	for i, col := range table.Columns {
		out.Columns[i] = jsonColumn{Key: col.Key, Header: col.Header, Kind: string(col.Kind)}
	}

	for _, row := range table.Rows {
		record := make(map[string]any, len(table.Columns))
		for i, col := range table.Columns {
			if i >= len(row) {
				break
			}
			record[col.Key] = jsonValue(col.Kind, row[i])
		}
		out.Records = append(out.Records, record)
	}

	if total, ok := table.GrandTotal(); ok {
		s := total.StringFixed(2)
		out.Total = &s
	}

	if len(table.Summary) > 0 {
		out.Summary = make(map[string]any, len(table.Summary))
		for _, item := range table.Summary {
			if item.Kind == entity.ColumnKindMoney {
				out.Summary[item.Key] = item.Amount.StringFixed(2)
			} else {
				out.Summary[item.Key] = item.Int
			}
		}
	}

	return json.NewEncoder(w).Encode(out)
}

func jsonValue(kind entity.ColumnKind, cell entity.ReportCell) any {
	switch kind {
	case entity.ColumnKindMoney:
		return cell.Amount.StringFixed(2)
	case entity.ColumnKindInteger:
		return cell.Int
	case entity.ColumnKindDate:
		return cell.Date.UTC().Format(valueobject.DateLayout)
	default:
		return cell.Text
	}
}
