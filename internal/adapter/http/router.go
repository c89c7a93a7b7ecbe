package http

import (
	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health      *Handler
	Loans       *LoanHandler
	Orderbook   *OrderbookHandler
	Competitors *CompetitorHandler
}

// Register mounts the API. submitMW wraps the loan submission route only.
func Register(e *echo.Echo, h Handlers, submitMW ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/preferences/preview", h.Loans.Preview)
	v1.POST("/loan-requests", h.Loans.Submit, submitMW...)

	v1.GET("/orderbook", h.Orderbook.List)
	v1.GET("/orderbook/stats", h.Orderbook.Stats)
	v1.POST("/orderbook/refresh", h.Orderbook.Refresh)
	v1.POST("/orderbook/:order_id/accept", h.Orderbook.Accept)

	v1.GET("/competitors", h.Competitors.List)
}
