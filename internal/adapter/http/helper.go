package http

import (
	"errors"
	"strings"

	"grynvault-backend/internal/domain/apperr"
	"grynvault-backend/internal/domain/order"
	"grynvault-backend/internal/domain/preference"

	"github.com/labstack/echo/v4"
)

// filterQuery is the raw orderbook query. Blank parameters stay zero.
type filterQuery struct {
	Custody, KYC, LiquidationRisk    string
	BTCChain, WalletType, Currency   string
	Status                           string
	MinLTV, MaxLTV, MinTerm, MaxTerm int
}

// parseFilter binds the orderbook query string into a filter. Every bad
// parameter is reported, not just the first one.
func parseFilter(c echo.Context) (order.Filter, error) {
	var q filterQuery
	bindErrs := echo.QueryParamsBinder(c).
		FailFast(false).
		String("custody", &q.Custody).
		String("kyc", &q.KYC).
		String("liquidation_risk", &q.LiquidationRisk).
		String("btc_chain", &q.BTCChain).
		String("wallet_type", &q.WalletType).
		String("currency", &q.Currency).
		String("status", &q.Status).
		Int("min_ltv", &q.MinLTV).
		Int("max_ltv", &q.MaxLTV).
		Int("min_term_days", &q.MinTerm).
		Int("max_term_days", &q.MaxTerm).
		BindErrors()

	var details []FieldError
	fail := func(field, msg string) { details = append(details, FieldError{Field: field, Message: msg}) }
	for _, err := range bindErrs {
		var be *echo.BindingError
		if errors.As(err, &be) {
			fail(be.Field, "must be an integer")
		}
	}

	// present means the parameter was sent with a value
	present := func(key string) bool { return strings.TrimSpace(c.QueryParam(key)) != "" }
	intOf := func(key string, v int) *int {
		if !present(key) {
			return nil
		}
		return &v
	}
	strOf := func(v string) *string {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		return &v
	}
	choice := func(key, raw, yes, no string) *bool {
		raw = strings.TrimSpace(raw)
		var b bool
		switch raw {
		case "":
			return nil
		case yes:
			b = true
		case no:
			b = false
		default:
			fail(key, "must be "+yes+" or "+no)
			return nil
		}
		return &b
	}

	f := order.Filter{
		ThirdPartyCustody: choice("custody", q.Custody, string(preference.CustodyThirdParty), string(preference.CustodySelf)),
		KYCRequired:       choice("kyc", q.KYC, string(preference.KYCRequired), string(preference.KYCNotRequired)),
		LiquidationRisk:   choice("liquidation_risk", q.LiquidationRisk, string(preference.LiquidationYes), string(preference.LiquidationNo)),
		MinLTV:            intOf("min_ltv", q.MinLTV),
		MaxLTV:            intOf("max_ltv", q.MaxLTV),
		MinTermDays:       intOf("min_term_days", q.MinTerm),
		MaxTermDays:       intOf("max_term_days", q.MaxTerm),
		WalletType:        strOf(q.WalletType),
		Currency:          strOf(q.Currency),
	}
	if raw := strOf(q.BTCChain); raw != nil {
		ch := preference.BTCChain(*raw)
		if ch.Valid() {
			f.BTCChain = &ch
		} else {
			fail("btc_chain", "must be L1 or bridged")
		}
	}
	if raw := strOf(q.Status); raw != nil {
		s := order.Status(strings.ToLower(*raw))
		if s.Valid() {
			f.Status = &s
		} else {
			fail("status", "must be one of open, matched, cancelled")
		}
	}
	if len(details) > 0 {
		return order.Filter{}, apperr.Validation("http.parseFilter", details)
	}
	return f, nil
}
