package handler

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ledgerapp "github.com/salonfin/backend/internal/application/ledger"
	"github.com/salonfin/backend/internal/infrastructure/export"
	"github.com/salonfin/backend/internal/interfaces/http/dto"
)

// ReportHandler handles the dashboard report endpoints
type ReportHandler struct {
	BaseHandler
	dashboard DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(dashboard DashboardService) *ReportHandler {
	return &ReportHandler{dashboard: dashboard}
}

// DailyQuery selects the day of a cash flow report
type DailyQuery struct {
	Date string `form:"date" example:"2026-03-14"`
}

// month resolves ?year=&month=, defaulting both to the current month
func (h *ReportHandler) month(c *gin.Context) (int, time.Month, bool) {
	var q dto.MonthQuery
	if !h.bindQuery(c, &q) {
		return 0, 0, false
	}
	year, month := h.dashboard.CurrentMonth()
	if q.Year != 0 {
		year = q.Year
	}
	if q.Month != 0 {
		month = time.Month(q.Month)
	}
	return year, month, true
}

type monthReport func(ctx context.Context, userID uuid.UUID, year int, month time.Month) (any, error)

// serveMonth resolves the user and the month, then writes the report fn returns
func (h *ReportHandler) serveMonth(c *gin.Context, fn monthReport) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	year, month, ok := h.month(c)
	if !ok {
		return
	}
	result, err := fn(c.Request.Context(), userID, year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// MonthlyReport godoc
//
//	@Summary	Monthly financial report
//	@Tags		reports
//	@Param		year	query	int	false	"Year"
//	@Param		month	query	int	false	"Month (1-12)"
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/reports/monthly [get]
func (h *ReportHandler) MonthlyReport(c *gin.Context) {
	h.serveMonth(c, func(ctx context.Context, userID uuid.UUID, year int, month time.Month) (any, error) {
		return h.dashboard.MonthlyReport(ctx, userID, year, month)
	})
}

// HistoricalTrend godoc
//
//	@Summary	Income, expense and profit for the months ending at the given one
//	@Tags		reports
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/reports/trend [get]
func (h *ReportHandler) HistoricalTrend(c *gin.Context) {
	h.serveMonth(c, func(ctx context.Context, userID uuid.UUID, year int, month time.Month) (any, error) {
		return h.dashboard.HistoricalTrend(ctx, userID, year, month)
	})
}

// CategoryBreakdown godoc
//
//	@Summary	Expense share per category
//	@Tags		reports
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/reports/categories [get]
func (h *ReportHandler) CategoryBreakdown(c *gin.Context) {
	h.serveMonth(c, func(ctx context.Context, userID uuid.UUID, year int, month time.Month) (any, error) {
		return h.dashboard.CategoryBreakdown(ctx, userID, year, month)
	})
}

// OperationalComparison godoc
//
//	@Summary	Estimated against actual operational cost
//	@Tags		reports
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/reports/operational-comparison [get]
func (h *ReportHandler) OperationalComparison(c *gin.Context) {
	h.serveMonth(c, func(ctx context.Context, userID uuid.UUID, year int, month time.Month) (any, error) {
		return h.dashboard.OperationalCostComparison(ctx, userID, year, month)
	})
}

// ChartData godoc
//
//	@Summary	Chart-ready series for the dashboard
//	@Tags		reports
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/reports/chart [get]
func (h *ReportHandler) ChartData(c *gin.Context) {
	h.serveMonth(c, func(ctx context.Context, userID uuid.UUID, year int, month time.Month) (any, error) {
		return h.dashboard.ChartData(ctx, userID, year, month)
	})
}

// GoalProgress godoc
//
//	@Summary	Progress towards the monthly revenue and appointment goals
//	@Tags		reports
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/reports/goals [get]
func (h *ReportHandler) GoalProgress(c *gin.Context) {
	h.serveMonth(c, func(ctx context.Context, userID uuid.UUID, year int, month time.Month) (any, error) {
		return h.dashboard.GoalProgress(ctx, userID, year, month)
	})
}

// DailyCashFlow godoc
//
//	@Summary	Income and expense of one day, today when no date is given
//	@Tags		reports
//	@Param		date	query	string	false	"Day (YYYY-MM-DD)"
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/reports/daily [get]
func (h *ReportHandler) DailyCashFlow(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var q DailyQuery
	if !h.bindQuery(c, &q) {
		return
	}
	var day time.Time
	if q.Date != "" {
		parsed, err := ledgerapp.ParseDate(q.Date, time.UTC)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		day = parsed
	}

	flow, err := h.dashboard.DailyCashFlow(c.Request.Context(), userID, day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flow)
}

// ExportMonthly godoc
//
//	@Summary	Monthly report, trend and expense breakdown as an XLSX workbook
//	@Tags		reports
//	@Produce	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param		year	query	int	false	"Year"
//	@Param		month	query	int	false	"Month (1-12)"
//	@Security	BearerAuth
//	@Router		/reports/monthly/export [get]
func (h *ReportHandler) ExportMonthly(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	year, month, ok := h.month(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	monthly, err := h.dashboard.MonthlyReport(ctx, userID, year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	trend, err := h.dashboard.HistoricalTrend(ctx, userID, year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	breakdown, err := h.dashboard.CategoryBreakdown(ctx, userID, year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// buffered: nothing is sent until the workbook renders
	var buf bytes.Buffer
	if err := export.WriteMonthlyXLSX(&buf, export.MonthlyWorkbook{
		Report:    *monthly,
		Trend:     trend,
		Breakdown: breakdown,
	}); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(year, month)+`"`)
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
