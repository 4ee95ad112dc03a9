package router

import "github.com/salonfin/backend/internal/interfaces/http/handler"

// Handlers holds the HTTP handlers mounted under the API prefix
type Handlers struct {
	Report      *handler.ReportHandler
	Transaction *handler.TransactionHandler
	Expense     *handler.ExpenseHandler
	Catalog     *handler.CatalogHandler
	Settings    *handler.SettingsHandler
}

// DomainGroups builds the route groups of the salon finance API
func DomainGroups(h Handlers) []RouteRegistrar {
	reports := NewDomainGroup("report", "/reports").
		GET("/monthly", h.Report.MonthlyReport).
		GET("/monthly/export", h.Report.ExportMonthly).
		GET("/trend", h.Report.HistoricalTrend).
		GET("/categories", h.Report.CategoryBreakdown).
		GET("/chart", h.Report.ChartData).
		GET("/daily", h.Report.DailyCashFlow).
		GET("/goals", h.Report.GoalProgress).
		GET("/operational-comparison", h.Report.OperationalComparison)

	transactions := NewDomainGroup("ledger", "/transactions").
		GET("", h.Transaction.List).
		POST("", h.Transaction.Create).
		GET("/:id", h.Transaction.GetByID).
		PUT("/:id", h.Transaction.Update).
		DELETE("/:id", h.Transaction.Delete)

	expenses := NewDomainGroup("expense", "/expenses").
		GET("", h.Expense.ListMonth).
		PUT("", h.Expense.Upsert).
		GET("/categories", h.Expense.ListCategories).
		POST("/categories", h.Expense.CreateCategory).
		DELETE("/categories/:id", h.Expense.DeleteCategory).
		POST("/categories/:id/apply-fixed", h.Expense.ApplyFixed)

	materials := NewDomainGroup("material", "/materials").
		GET("", h.Catalog.ListMaterials).
		POST("", h.Catalog.CreateMaterial).
		PUT("/:id", h.Catalog.UpdateMaterial).
		DELETE("/:id", h.Catalog.DeleteMaterial)

	services := NewDomainGroup("service", "/services").
		GET("", h.Catalog.ListServices).
		POST("", h.Catalog.CreateService).
		POST("/lines/recalculate", h.Catalog.RecalculateLine).
		GET("/:id", h.Catalog.GetService).
		PUT("/:id", h.Catalog.UpdateService).
		DELETE("/:id", h.Catalog.DeleteService).
		GET("/:id/analysis", h.Catalog.Analyze)

	settings := NewDomainGroup("settings", "/settings").
		GET("", h.Settings.Get).
		PUT("", h.Settings.Update)

	return []RouteRegistrar{reports, transactions, expenses, materials, services, settings}
}
