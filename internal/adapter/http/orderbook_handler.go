package http

import (
	"net/http"

	"grynvault-backend/internal/domain/order"
	"grynvault-backend/internal/usecase/orderbook"

	"github.com/labstack/echo/v4"
)

type OrderbookHandler struct{ uc *orderbook.Usecase }

func NewOrderbookHandler(uc *orderbook.Usecase) *OrderbookHandler {
	return &OrderbookHandler{uc: uc}
}

type listResp struct {
	Tab    order.Tab     `json:"tab"`
	Count  int           `json:"count"`
	Orders []order.Order `json:"orders"`
}

func (h *OrderbookHandler) List(c echo.Context) error {
	tab, err := order.ParseTab(c.QueryParam("tab"))
	if err != nil {
		return writeError(c, err)
	}
	f, err := parseFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	orders := h.uc.List(c.Request().Context(), tab, f)
	return c.JSON(http.StatusOK, listResp{Tab: tab, Count: len(orders), Orders: orders})
}

func (h *OrderbookHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Stats(c.Request().Context()))
}

func (h *OrderbookHandler) Refresh(c echo.Context) error {
	dto, err := h.uc.Refresh(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type acceptReq struct {
	OrderID string `param:"order_id" json:"-" validate:"orderref"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}

// Accept returns 200 when the desk was notified and 202 when delivery failed.
func (h *OrderbookHandler) Accept(c echo.Context) error {
	var req acceptReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Accept(c.Request().Context(), orderbook.AcceptInput{
		OrderID: req.OrderID,
		Name:    req.Name,
		Email:   req.Email,
	})
	if err != nil {
		return writeError(c, err)
	}
	if !dto.Delivered {
		return c.JSON(http.StatusAccepted, dto)
	}
	return c.JSON(http.StatusOK, dto)
}
