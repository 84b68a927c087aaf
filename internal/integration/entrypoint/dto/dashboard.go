package dto

import (
	"time"

	"github.com/salesledger/backend/internal/application/usecase/report"
	"github.com/salesledger/backend/internal/domain/entity"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

// DashboardSummaryResponse represents the admin dashboard figures.
type DashboardSummaryResponse struct {
	TotalIncome      string `json:"total_income"`
	TotalExpense     string `json:"total_expense"`
	NetIncome        string `json:"net_income"`
	TransactionCount int64  `json:"transaction_count"`
	ProductCount     int64  `json:"product_count"`
	CustomerCount    int64  `json:"customer_count"`
	MonthlySales     string `json:"monthly_sales"`
}

// ToDashboardSummaryResponse converts the summary entity to its DTO.
func ToDashboardSummaryResponse(s *entity.DashboardSummary) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		TotalIncome:      s.TotalIncome.StringFixed(2),
		TotalExpense:     s.TotalExpense.StringFixed(2),
		NetIncome:        s.NetIncome.StringFixed(2),
		TransactionCount: s.TransactionCount,
		ProductCount:     s.ProductCount,
		CustomerCount:    s.CustomerCount,
		MonthlySales:     s.MonthlySales.StringFixed(2),
	}
}

// RankedItemResponse is one entry of a top products or top customers list.
type RankedItemResponse struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
	Total string `json:"total"`
}

// ChartPointResponse is one bucket of a dashboard chart.
type ChartPointResponse struct {
	Date             string `json:"date"`
	Label            string `json:"label"`
	Income           string `json:"income"`
	Expense          string `json:"expense"`
	Net              string `json:"net"`
	TransactionCount int64  `json:"transaction_count"`
}

// RecentTransactionResponse is a transaction header with customer and user names.
type RecentTransactionResponse struct {
	ID              string    `json:"id"`
	TransactionDate time.Time `json:"transaction_date"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Description     string    `json:"description"`
	TotalAmount     string    `json:"total_amount"`
	CustomerID      *string   `json:"customer_id,omitempty"`
	CustomerName    string    `json:"customer_name,omitempty"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
}

// ToRankedItemResponses converts a top-N list.
func ToRankedItemResponses(items []entity.RankedItem) []RankedItemResponse {
	out := make([]RankedItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, RankedItemResponse{
			Name:  item.Name,
			Count: item.Count,
			Total: item.Total.StringFixed(2),
		})
	}
	return out
}

// ToChartPointResponses converts a chart series.
func ToChartPointResponses(points []entity.ChartPoint) []ChartPointResponse {
	out := make([]ChartPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, ChartPointResponse{
			Date:             p.Date.Format(valueobject.DateLayout),
			Label:            p.Label,
			Income:           p.Income.StringFixed(2),
			Expense:          p.Expense.StringFixed(2),
			Net:              p.Net().StringFixed(2),
			TransactionCount: p.TransactionCount,
		})
	}
	return out
}

// ToRecentTransactionResponses converts joined transaction rows.
func ToRecentTransactionResponses(rows []report.TransactionRow) []RecentTransactionResponse {
	out := make([]RecentTransactionResponse, 0, len(rows))
	for _, r := range rows {
		resp := RecentTransactionResponse{
			ID:              r.TransactionID.String(),
			TransactionDate: r.TransactionDate,
			Type:            string(r.Type),
			Status:          string(r.Status),
			Description:     r.Description,
			TotalAmount:     r.TotalAmount.StringFixed(2),
			CustomerName:    r.CustomerName,
			UserID:          r.UserID.String(),
			UserName:        r.UserName,
		}
		if r.CustomerID != nil {
			id := r.CustomerID.String()
			resp.CustomerID = &id
		}
		out = append(out, resp)
	}
	return out
}
