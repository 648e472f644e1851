package server

import (
	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, h *Handler, aiRateLimiter echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")

	ai := api.Group("/ai", aiRateLimiter)
	ai.POST("/payslip/process", h.ProcessPayslip)
	ai.POST("/bank-statement/process", h.ProcessBankStatement)
	ai.POST("/card-statement/process", h.ProcessCardStatement)
	ai.POST("/payslip/import", h.ImportPayslip)
	ai.GET("/payslip/history", h.PayslipHistory)
	ai.GET("/bank-statement/history", h.BankStatementHistory)
	ai.GET("/card-statement/history", h.CardStatementHistory)

	transactions := api.Group("/transactions")
	transactions.GET("", h.ListTransactions)
	transactions.DELETE("/:id", h.DeleteTransaction)

	configs := api.Group("/provider-configs")
	configs.GET("", h.ListProviderConfigs)
	configs.POST("", h.CreateProviderConfig)
	configs.DELETE("/:id", h.DeleteProviderConfig)

	api.GET("/export/xlsx", h.ExportXLSX)
}
