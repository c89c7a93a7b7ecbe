package http

import (
	"net/http"

	"grynvault-backend/internal/domain/competitor"

	"github.com/labstack/echo/v4"
)

type CompetitorHandler struct{ src competitor.Source }

func NewCompetitorHandler(src competitor.Source) *CompetitorHandler {
	return &CompetitorHandler{src: src}
}

func (h *CompetitorHandler) List(c echo.Context) error {
	list, err := h.src.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"competitors": list})
}
