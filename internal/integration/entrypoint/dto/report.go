package dto

// ReportQuery represents the query string of range reports.
type ReportQuery struct {
	StartDate string `form:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"required,datetime=2006-01-02"`
	Format    string `form:"format" binding:"omitempty,oneof=json excel xlsx pdf"`
}

// DailyReportQuery represents the query string of the daily listing report.
type DailyReportQuery struct {
	Date   string `form:"date" binding:"required,datetime=2006-01-02"`
	Format string `form:"format" binding:"omitempty,oneof=json excel xlsx pdf"`
}

// MonthlyReportQuery represents the query string of the monthly listing report.
type MonthlyReportQuery struct {
	Month  int    `form:"month" binding:"required,min=1,max=12"`
	Year   int    `form:"year" binding:"required,min=1900,max=9999"`
	Format string `form:"format" binding:"omitempty,oneof=json excel xlsx pdf"`
}
