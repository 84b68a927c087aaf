package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salesledger/backend/internal/application/usecase/dashboard"
	"github.com/salesledger/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getSummaryUseCase            *dashboard.GetSummaryUseCase
	getRecentTransactionsUseCase *dashboard.GetRecentTransactionsUseCase
	getTopProductsUseCase        *dashboard.GetTopProductsUseCase
	getTopCustomersUseCase       *dashboard.GetTopCustomersUseCase
	getSalesChartUseCase         *dashboard.GetSalesChartUseCase
	getIncomeExpenseChartUseCase *dashboard.GetIncomeExpenseChartUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getSummaryUseCase *dashboard.GetSummaryUseCase,
	getRecentTransactionsUseCase *dashboard.GetRecentTransactionsUseCase,
	getTopProductsUseCase *dashboard.GetTopProductsUseCase,
	getTopCustomersUseCase *dashboard.GetTopCustomersUseCase,
	getSalesChartUseCase *dashboard.GetSalesChartUseCase,
	getIncomeExpenseChartUseCase *dashboard.GetIncomeExpenseChartUseCase,
) *DashboardController {
	return &DashboardController{
		getSummaryUseCase:            getSummaryUseCase,
		getRecentTransactionsUseCase: getRecentTransactionsUseCase,
		getTopProductsUseCase:        getTopProductsUseCase,
		getTopCustomersUseCase:       getTopCustomersUseCase,
		getSalesChartUseCase:         getSalesChartUseCase,
		getIncomeExpenseChartUseCase: getIncomeExpenseChartUseCase,
	}
}

// GetSummary handles GET /dashboard/summary requests.
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	summary, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), dashboard.GetSummaryInput{})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(summary))
}

// GetRecentTransactions handles GET /dashboard/recent-transactions requests.
func (c *DashboardController) GetRecentTransactions(ctx *gin.Context) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		respondInvalidField(ctx, "limit", "must be a number")
		return
	}
	rows, err := c.getRecentTransactionsUseCase.Execute(ctx.Request.Context(), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"transactions": dto.ToRecentTransactionResponses(rows)})
}

// GetTopProducts handles GET /dashboard/top-products requests.
func (c *DashboardController) GetTopProducts(ctx *gin.Context) {
	input, ok := topInput(ctx)
	if !ok {
		return
	}
	items, err := c.getTopProductsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": dto.ToRankedItemResponses(items)})
}

// GetTopCustomers handles GET /dashboard/top-customers requests.
func (c *DashboardController) GetTopCustomers(ctx *gin.Context) {
	input, ok := topInput(ctx)
	if !ok {
		return
	}
	items, err := c.getTopCustomersUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"customers": dto.ToRankedItemResponses(items)})
}

// GetSalesChart handles GET /dashboard/sales-chart requests.
func (c *DashboardController) GetSalesChart(ctx *gin.Context) {
	days, err := queryInt(ctx, "days")
	if err != nil {
		respondInvalidField(ctx, "days", "must be a number")
		return
	}
	points, err := c.getSalesChartUseCase.Execute(ctx.Request.Context(), dashboard.GetSalesChartInput{Days: days})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"granularity": dashboard.GranularityDaily, "points": dto.ToChartPointResponses(points)})
}

// GetIncomeExpenseChart handles GET /dashboard/income-expense-chart requests.
func (c *DashboardController) GetIncomeExpenseChart(ctx *gin.Context) {
	months, err := queryInt(ctx, "months")
	if err != nil {
		respondInvalidField(ctx, "months", "must be a number")
		return
	}
	points, err := c.getIncomeExpenseChartUseCase.Execute(ctx.Request.Context(), dashboard.GetIncomeExpenseChartInput{Months: months})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"granularity": dashboard.GranularityMonthly, "points": dto.ToChartPointResponses(points)})
}

func topInput(ctx *gin.Context) (dashboard.GetTopInput, bool) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		respondInvalidField(ctx, "limit", "must be a number")
		return dashboard.GetTopInput{}, false
	}
	return dashboard.GetTopInput{
		StartDate: ctx.Query("start_date"),
		EndDate:   ctx.Query("end_date"),
		Limit:     limit,
	}, true
}
