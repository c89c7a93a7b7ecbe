package http

import (
	"errors"
	"net/http"

	"grynvault-backend/internal/domain/apperr"
	"grynvault-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

func statusOf(code apperr.Code) int {
	switch code {
	case apperr.CodeValidation:
		return http.StatusUnprocessableEntity
	case apperr.CodeRedirectRequired, apperr.CodeSubmissionInFlight:
		return http.StatusConflict
	case apperr.CodeOrderNotFound:
		return http.StatusNotFound
	case apperr.CodeStorageUnavailable, apperr.CodeStorageConstraint:
		return http.StatusServiceUnavailable
	case apperr.CodeNotificationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

var messages = map[apperr.Code]string{
	apperr.CodeValidation:         "validation failed",
	apperr.CodeRedirectRequired:   "rate is better served by other lenders",
	apperr.CodeSubmissionInFlight: "submission already in progress",
	apperr.CodeOrderNotFound:      "order not found",
	apperr.CodeStorageUnavailable: "storage unavailable",
	apperr.CodeStorageConstraint:  "storage rejected the record",
	apperr.CodeNotificationFailed: "notification failed",
	apperr.CodeInternal:           "internal error",
}

// transient codes clear up on their own; clients may retry them with the same request id.
func transient(code apperr.Code) bool {
	switch code {
	case apperr.CodeSubmissionInFlight, apperr.CodeStorageUnavailable, apperr.CodeNotificationFailed:
		return true
	}
	return false
}

// writeError maps a usecase error onto the JSON error body.
func writeError(c echo.Context, err error) error {
	code := apperr.CodeOf(err)
	resp := ErrorResponse{
		Error:   messages[code],
		Code:    code,
		Details: apperr.DetailsOf(err),
	}
	var re *loan.RedirectError
	if errors.As(err, &re) {
		resp.Competitors = re.Competitors
	}
	if code == apperr.CodeInternal {
		c.Logger().Error(err)
	}
	if transient(code) {
		c.Response().Header().Set(echo.HeaderRetryAfter, "1")
	}
	return c.JSON(statusOf(code), resp)
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Code:    apperr.CodeValidation,
		Details: ToFieldErrors(err),
	})
}
