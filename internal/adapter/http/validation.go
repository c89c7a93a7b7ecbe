package http

import (
	"math"
	"reflect"
	"strings"

	"grynvault-backend/internal/domain/apperr"
	"grynvault-backend/internal/domain/competitor"
	"grynvault-backend/internal/domain/order"
	"grynvault-backend/internal/domain/preference"
	"grynvault-backend/pkg/id"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError = apperr.FieldError

type ErrorResponse struct {
	Error       string                  `json:"error"`
	Code        apperr.Code             `json:"code,omitempty"`
	Details     []FieldError            `json:"details,omitempty"`
	Competitors []competitor.Competitor `json:"competitors,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report fields by their json names, the same ones the domain uses
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			if p := f.Tag.Get("param"); p != "" {
				return p
			}
			return f.Name
		}
		return name
	})
	// order ref = bare order id or the orderbook view id "<kind>-<order id>"
	_ = v.RegisterValidation("orderref", func(fl validator.FieldLevel) bool {
		return validOrderRef(fl.Field().String())
	})
	// user rate moves in 0.5 steps
	_ = v.RegisterValidation("halfstep", func(fl validator.FieldLevel) bool {
		q := fl.Field().Float() / preference.UserRateStep
		return math.Abs(q-math.Round(q)) < 1e-9
	})
	_ = v.RegisterValidation("termdays", func(fl validator.FieldLevel) bool {
		return preference.ValidTerm(int(fl.Field().Int()))
	})

	return &CustomValidator{v: v}
}

func validOrderRef(s string) bool {
	if id.Valid(s) {
		return true
	}
	kind, raw, ok := strings.Cut(s, "-")
	return ok && order.Kind(kind).Valid() && id.Valid(raw)
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "orderref":
			out = append(out, FieldError{Field: field, Message: "must be a 32-char lowercase hex order id, optionally prefixed with demand- or supply-"})
		case "halfstep":
			out = append(out, FieldError{Field: field, Message: "must move in steps of 0.5"})
		case "termdays":
			out = append(out, FieldError{Field: field, Message: "must be one of 30, 90, 180, 365"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
