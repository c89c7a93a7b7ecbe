package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves liveness. Orders reports the current orderbook size.
type Handler struct {
	service string
	orders  func() int
}

func NewHandler(service string, orders func() int) *Handler {
	return &Handler{service: service, orders: orders}
}

func (h *Handler) Health(c echo.Context) error {
	body := map[string]any{
		"status":  "ok",
		"service": h.service,
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	}
	if h.orders != nil {
		body["orders"] = h.orders()
	}
	return c.JSON(http.StatusOK, body)
}
