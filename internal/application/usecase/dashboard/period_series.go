package dashboard

import (
	"time"

	"github.com/salesledger/backend/internal/application/usecase/report"
	"github.com/salesledger/backend/internal/domain/entity"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

// Granularity is the bucket size of a chart series.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
)

// PeriodInfo describes one bucket of a series.
type PeriodInfo struct {
	Start time.Time
	End   time.Time
	Label string
}

// GeneratePeriodSeries returns every bucket that overlaps period, in order,
// so that charts have no gaps.
func GeneratePeriodSeries(period valueobject.DateRange, granularity Granularity) []PeriodInfo {
	var periods []PeriodInfo
	current := PeriodStart(period.Start, granularity)
	for !current.After(period.End) {
		next := nextPeriod(current, granularity)
		periods = append(periods, PeriodInfo{
			Start: current,
			End:   next.Add(-time.Nanosecond),
			Label: GeneratePeriodLabel(current, granularity),
		})
		current = next
	}
	return periods
}

// PeriodStart returns the first instant of the bucket containing t.
func PeriodStart(t time.Time, granularity Granularity) time.Time {
	t = t.UTC()
	if granularity == GranularityMonthly {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GeneratePeriodLabel formats a bucket start, e.g. "2024-01-15" or "Jan 2024".
func GeneratePeriodLabel(date time.Time, granularity Granularity) string {
	if granularity == GranularityMonthly {
		return date.Format("Jan 2006")
	}
	return date.Format(valueobject.DateLayout)
}

func nextPeriod(start time.Time, granularity Granularity) time.Time {
	if granularity == GranularityMonthly {
		return start.AddDate(0, 1, 0)
	}
	return start.AddDate(0, 0, 1)
}

// buildChart sums rows into the buckets of period. Rows outside period are ignored.
func buildChart(period valueobject.DateRange, granularity Granularity, rows []report.TransactionRow) []entity.ChartPoint {
	series := GeneratePeriodSeries(period, granularity)
	points := make([]entity.ChartPoint, len(series))
	index := make(map[time.Time]int, len(series))
	for i, p := range series {
		points[i] = entity.ChartPoint{Date: p.Start, Label: p.Label}
		index[p.Start] = i
	}

	for _, r := range rows {
		i, ok := index[PeriodStart(r.TransactionDate, granularity)]
		if !ok || !period.Contains(r.TransactionDate) {
			continue
		}
		switch r.Type {
		case entity.TransactionTypeIncome:
			points[i].Income = points[i].Income.Add(r.TotalAmount)
		case entity.TransactionTypeExpense:
			points[i].Expense = points[i].Expense.Add(r.TotalAmount)
		}
		points[i].TransactionCount++
	}
	return points
}

func clampLimit(limit, fallback, maximum int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maximum {
		return maximum
	}
	return limit
}
