package controller

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salesledger/backend/internal/application/usecase/report"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/integration/entrypoint/dto"
	"github.com/salesledger/backend/internal/integration/filesink"
	"github.com/salesledger/backend/internal/integration/render"
)

// ReportController handles report endpoints. All routes are admin-only.
type ReportController struct {
	generateUseCase *report.GenerateReportUseCase
	renderer        *render.Renderer
	sink            *filesink.TempFileSink
}

// NewReportController creates a new report controller instance.
func NewReportController(
	generateUseCase *report.GenerateReportUseCase,
	renderer *render.Renderer,
	sink *filesink.TempFileSink,
) *ReportController {
	return &ReportController{
		generateUseCase: generateUseCase,
		renderer:        renderer,
		sink:            sink,
	}
}

// ProductSales handles GET /reports/product-sales requests.
func (c *ReportController) ProductSales(ctx *gin.Context) {
	c.rangeReport(ctx, entity.ReportDimensionProduct)
}

// CustomerTransactions handles GET /reports/customer-transactions requests.
func (c *ReportController) CustomerTransactions(ctx *gin.Context) {
	c.rangeReport(ctx, entity.ReportDimensionCustomer)
}

// SalesPerformance handles GET /reports/sales-performance requests.
func (c *ReportController) SalesPerformance(ctx *gin.Context) {
	c.rangeReport(ctx, entity.ReportDimensionSalesperson)
}

// IncomeExpense handles GET /reports/income-expense requests.
func (c *ReportController) IncomeExpense(ctx *gin.Context) {
	c.rangeReport(ctx, entity.ReportDimensionIncomeExpense)
}

// Daily handles GET /reports/daily requests: every transaction of one day.
func (c *ReportController) Daily(ctx *gin.Context) {
	var q dto.DailyReportQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidRange))
		return
	}
	c.serve(ctx, q.Format, report.GenerateReportInput{
		Dimension: entity.ReportDimensionTransactions,
		StartDate: q.Date,
		EndDate:   q.Date,
		Title:     "Daily Transaction Report",
	})
}

// Monthly handles GET /reports/monthly requests: every transaction of one calendar month.
func (c *ReportController) Monthly(ctx *gin.Context) {
	var q dto.MonthlyReportQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidRange))
		return
	}
	c.serve(ctx, q.Format, report.GenerateReportInput{
		Dimension: entity.ReportDimensionTransactions,
		Month:     q.Month,
		Year:      q.Year,
		Title:     "Monthly Transaction Report",
	})
}

func (c *ReportController) rangeReport(ctx *gin.Context, dimension entity.ReportDimension) {
	var q dto.ReportQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidRange))
		return
	}
	c.serve(ctx, q.Format, report.GenerateReportInput{
		Dimension: dimension,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
	})
}

// serve aggregates the report and writes it in the requested format. Binary
// formats are staged in a temp file that is removed after the download.
func (c *ReportController) serve(ctx *gin.Context, rawFormat string, input report.GenerateReportInput) {
	format, err := render.ParseFormat(rawFormat)
	if err != nil {
		respondError(ctx, err)
		return
	}

	table, err := c.generateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if format == render.FormatJSON {
		var buf bytes.Buffer
		if err := c.renderer.Render(&buf, table, format); err != nil {
			respondError(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, format.ContentType(), buf.Bytes())
		return
	}

	filename := render.FileName(table, format)
	sent := false
	err = c.sink.Deliver(ctx.Request.Context(), format.Extension(),
		func(w io.Writer) error {
			return c.renderer.Render(w, table, format)
		},
		func(path string) error {
			ctx.Header("Content-Type", format.ContentType())
			ctx.FileAttachment(path, filename)
			sent = true
			return nil
		},
	)
	if err != nil && !sent {
		respondError(ctx, fmt.Errorf("deliver %s report: %w", format, err))
	}
}
