package competitor

import "context"

// Features describes what a competing lender offers.
type Features struct {
	Custody             bool     `json:"custody"`
	NonCustody          bool     `json:"nonCustody"`
	KYCRequired         bool     `json:"kycRequired"`
	MaxLTV              int      `json:"maxLTV"`
	MinTermDays         int      `json:"minTermDays"`
	MaxTermDays         int      `json:"maxTermDays"`
	LiquidationRisk     bool     `json:"liquidationRisk"`
	BridgedBTC          bool     `json:"bridgedBTC"`
	L1BTC               bool     `json:"l1BTC"`
	SupportedWallets    []string `json:"supportedWallets"`
	SupportedCurrencies []string `json:"supportedCurrencies"`
	MaxAPR              float64  `json:"maxAPR"`
}

type Competitor struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Tagline  string   `json:"tagline"`
	Features Features `json:"features"`
}

// Source supplies the competitors shown when a borrower's rate is above our cap.
type Source interface {
	List(ctx context.Context) ([]Competitor, error)
}

// DefaultLimit is how many competitors a redirect shows.
const DefaultLimit = 3

// Recommend returns at most limit competitors in source order.
func Recommend(list []Competitor, limit int) []Competitor {
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}
	out := make([]Competitor, limit)
	copy(out, list[:limit])
	return out
}
