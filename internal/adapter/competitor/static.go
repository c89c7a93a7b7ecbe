package competitor

import (
	"context"

	domain "grynvault-backend/internal/domain/competitor"
)

// Static is an in-memory competitor source.
type Static struct{ items []domain.Competitor }

func NewStatic(items []domain.Competitor) *Static {
	cp := make([]domain.Competitor, len(items))
	copy(cp, items)
	return &Static{items: cp}
}

// NewDefault returns the source seeded with the lenders we currently point borrowers to.
func NewDefault() *Static { return NewStatic(Defaults()) }

func (s *Static) List(ctx context.Context) ([]domain.Competitor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Competitor, len(s.items))
	copy(out, s.items)
	return out, nil
}

func Defaults() []domain.Competitor {
	return []domain.Competitor{
		{
			ID:      "hodlhodl",
			Name:    "HodlHodl",
			URL:     "https://hodlhodl.com/",
			Tagline: "Global P2P Bitcoin lending platform",
			Features: domain.Features{
				NonCustody:          true,
				MaxLTV:              50,
				MinTermDays:         1,
				MaxTermDays:         90,
				LiquidationRisk:     true,
				L1BTC:               true,
				SupportedWallets:    []string{"own wallet"},
				SupportedCurrencies: []string{"USD", "EUR", "GBP"},
				MaxAPR:              18,
			},
		},
		{
			ID:      "nexo",
			Name:    "Nexo",
			URL:     "https://nexo.com/borrow",
			Tagline: "Instant crypto credit lines",
			Features: domain.Features{
				Custody:             true,
				KYCRequired:         true,
				MaxLTV:              50,
				MinTermDays:         1,
				MaxTermDays:         365,
				LiquidationRisk:     true,
				L1BTC:               true,
				SupportedWallets:    []string{"custodial"},
				SupportedCurrencies: []string{"USD", "EUR", "GBP", "USDC", "USDT"},
				MaxAPR:              13.9,
			},
		},
		{
			ID:      "sovryn",
			Name:    "Sovryn",
			URL:     "https://sovryn.com/",
			Tagline: "Bitcoin-native financial operating system",
			Features: domain.Features{
				NonCustody:          true,
				MaxLTV:              50,
				MinTermDays:         1,
				MaxTermDays:         30,
				LiquidationRisk:     true,
				BridgedBTC:          true,
				SupportedWallets:    []string{"metamask", "wallet connect"},
				SupportedCurrencies: []string{"USDT", "USDC", "RBTC"},
				MaxAPR:              16,
			},
		},
	}
}
