package order

import "github.com/shopspring/decimal"

// Stats are the headline numbers of the hero section.
type Stats struct {
	TotalDemand       decimal.Decimal `json:"totalDemand"`
	TotalSupply       decimal.Decimal `json:"totalSupply"`
	ActiveRequests    int             `json:"activeRequests"`
	ActiveCommitments int             `json:"activeCommitments"`
}

// ComputeStats sums amounts per side and counts open and matched orders across both sides.
func ComputeStats(orders []Order) Stats {
	s := Stats{TotalDemand: decimal.Zero, TotalSupply: decimal.Zero}
	for _, o := range orders {
		amt := decimal.NewFromFloat(o.Amount)
		switch o.Type {
		case KindDemand:
			s.TotalDemand = s.TotalDemand.Add(amt)
		case KindSupply:
			s.TotalSupply = s.TotalSupply.Add(amt)
		}
		switch o.Status {
		case StatusOpen:
			s.ActiveRequests++
		case StatusMatched:
			s.ActiveCommitments++
		}
	}
	return s
}
