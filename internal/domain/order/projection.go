package order

import (
	"errors"
	"strings"
	"time"

	"grynvault-backend/internal/domain/preference"
)

// CustodyFromStored is the only place the stored custody enum becomes the
// projected flag. true means a third party holds the collateral.
func CustodyFromStored(c preference.Custody) bool {
	return c == preference.CustodyThirdParty
}

// StoredFromCustody is the inverse of CustodyFromStored.
func StoredFromCustody(thirdParty bool) preference.Custody {
	if thirdParty {
		return preference.CustodyThirdParty
	}
	return preference.CustodySelf
}

// ProjectStatus maps the stored status to the display status.
// Unknown values fall back to matched.
func ProjectStatus(s StoredStatus) Status {
	switch s {
	case StoredActive:
		return StatusOpen
	case StoredCancelled:
		return StatusCancelled
	default:
		return StatusMatched
	}
}

// Project builds the orderbook entry for a record read from kind's collection.
func Project(kind Kind, r Record) Order {
	return Order{
		ID:                string(kind) + "-" + r.OrderID,
		OrderID:           r.OrderID,
		Type:              kind,
		Amount:            r.LoanAmount,
		ThirdPartyCustody: CustodyFromStored(r.Custody),
		KYCRequired:       r.KYC == preference.KYCRequired,
		LTV:               r.LTV,
		TermDays:          r.TermDays,
		LiquidationRisk:   r.LiquidationRisk == preference.LiquidationYes,
		BTCChain:          r.BTCChain,
		WalletType:        string(r.WalletType),
		Currency:          string(r.Currency),
		APR:               r.UserRate,
		Timestamp:         r.CreatedAt.UTC(),
		Status:            ProjectStatus(r.Status),
	}
}

// ProjectAll projects a whole collection.
func ProjectAll(kind Kind, recs []Record) []Order {
	out := make([]Order, 0, len(recs))
	for _, r := range recs {
		out = append(out, Project(kind, r))
	}
	return out
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

var ErrBadTimestamp = errors.New("unrecognized timestamp")

// ParseTimestamp accepts the ISO-8601 shapes record stores hand back.
// Values without a zone are taken as UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrBadTimestamp
}
