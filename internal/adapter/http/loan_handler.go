package http

import (
	"net/http"

	"grynvault-backend/internal/domain/preference"
	"grynvault-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type termsReq struct {
	LoanAmount      float64 `json:"loanAmount"      validate:"gte=5000"`
	LTV             int     `json:"ltv"             validate:"gte=30,lte=80"`
	TermDays        int     `json:"termDays"        validate:"termdays"`
	Custody         string  `json:"custody"         validate:"required"`
	KYC             string  `json:"kyc"             validate:"required"`
	LiquidationRisk string  `json:"liquidationRisk" validate:"required"`
	BTCChain        string  `json:"btcChain"        validate:"required"`
	WalletType      string  `json:"walletType"      validate:"required"`
	Currency        string  `json:"currency"        validate:"required"`
	UserRate        float64 `json:"userRate"        validate:"gte=4,lte=15,halfstep"`
}

func (r termsReq) toPreference(email string) preference.Preference {
	return preference.Preference{
		LoanAmount:      r.LoanAmount,
		LTV:             r.LTV,
		TermDays:        r.TermDays,
		Custody:         preference.Custody(r.Custody),
		KYC:             preference.KYC(r.KYC),
		LiquidationRisk: preference.LiquidationRisk(r.LiquidationRisk),
		BTCChain:        preference.BTCChain(r.BTCChain),
		WalletType:      preference.WalletType(r.WalletType),
		Currency:        preference.Currency(r.Currency),
		UserRate:        r.UserRate,
		Email:           email,
	}
}

type previewReq struct {
	termsReq
	Email string `json:"email" validate:"omitempty,email"`
}

type submitReq struct {
	termsReq
	Email        string `json:"email"        validate:"required,email"`
	SubmitAnyway bool   `json:"submitAnyway"`
}

func (h *LoanHandler) Preview(c echo.Context) error {
	var req previewReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Preview(c.Request().Context(), req.toPreference(req.Email))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Submit(c echo.Context) error {
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Submit(c.Request().Context(), loan.SubmitInput{
		Preference:   req.toPreference(req.Email),
		SubmitAnyway: req.SubmitAnyway,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
