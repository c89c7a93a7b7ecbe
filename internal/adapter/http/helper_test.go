package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"grynvault-backend/internal/domain/apperr"
	"grynvault-backend/internal/domain/order"

	"github.com/labstack/echo/v4"
)

func filterCtx(rawQuery string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orderbook?"+rawQuery, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestParseFilter_Empty(t *testing.T) {
	f, err := parseFilter(filterCtx(""))
	if err != nil {
		t.Fatalf("parseFilter: %v", err)
	}
	if f != (order.Filter{}) {
		t.Fatalf("empty query should impose nothing: %+v", f)
	}
}

func TestParseFilter_BlankValuesAreAbsent(t *testing.T) {
	f, err := parseFilter(filterCtx("custody=&min_ltv=&status=%20&currency="))
	if err != nil {
		t.Fatalf("parseFilter: %v", err)
	}
	if f != (order.Filter{}) {
		t.Fatalf("blank params should impose nothing: %+v", f)
	}
}

func TestParseFilter_AllFields(t *testing.T) {
	f, err := parseFilter(filterCtx("custody=self&kyc=required&liquidation_risk=no&min_ltv=40&max_ltv=70" +
		"&min_term_days=30&max_term_days=180&btc_chain=bridged&wallet_type=multisig&currency=DAI&status=Cancelled"))
	if err != nil {
		t.Fatalf("parseFilter: %v", err)
	}
	switch {
	case f.ThirdPartyCustody == nil || *f.ThirdPartyCustody:
		t.Fatalf("custody: %v", f.ThirdPartyCustody)
	case f.KYCRequired == nil || !*f.KYCRequired:
		t.Fatalf("kyc: %v", f.KYCRequired)
	case f.LiquidationRisk == nil || *f.LiquidationRisk:
		t.Fatalf("liquidation: %v", f.LiquidationRisk)
	case f.MinLTV == nil || f.MaxLTV == nil || f.MinTermDays == nil || f.MaxTermDays == nil:
		t.Fatalf("ranges missing: %+v", f)
	case *f.MinLTV != 40 || *f.MaxLTV != 70 || *f.MinTermDays != 30 || *f.MaxTermDays != 180:
		t.Fatalf("ranges: %+v", f)
	case string(*f.BTCChain) != "bridged" || *f.WalletType != "multisig" || *f.Currency != "DAI":
		t.Fatalf("strings: %+v", f)
	case *f.Status != order.StatusCancelled:
		t.Fatalf("status: %v", *f.Status)
	}
}

func TestParseFilter_ZeroBoundIsKept(t *testing.T) {
	f, err := parseFilter(filterCtx("min_ltv=0"))
	if err != nil {
		t.Fatalf("parseFilter: %v", err)
	}
	if f.MinLTV == nil || *f.MinLTV != 0 || f.MaxLTV != nil {
		t.Fatalf("min_ltv=0 must be an explicit bound: %+v", f)
	}
}

func TestParseFilter_CollectsEveryError(t *testing.T) {
	_, err := parseFilter(filterCtx("min_ltv=x&max_term_days=1.5&kyc=sometimes&status=gone&btc_chain=L2"))
	if apperr.CodeOf(err) != apperr.CodeValidation {
		t.Fatalf("err = %v", err)
	}
	d := apperr.DetailsOf(err)
	for _, field := range []string{"min_ltv", "max_term_days", "kyc", "status", "btc_chain"} {
		if !containsFieldMsg(d, field, "") {
			t.Fatalf("missing %s in %+v", field, d)
		}
	}
	if !containsFieldMsg(d, "min_ltv", "integer") {
		t.Fatalf("min_ltv message: %+v", d)
	}
}
