package order

import (
	"sort"
	"strings"

	"grynvault-backend/internal/domain/apperr"
	"grynvault-backend/internal/domain/preference"
)

// Tab selects which side of the book is listed.
type Tab string

const (
	TabAll    Tab = "all"
	TabDemand Tab = "demand"
	TabSupply Tab = "supply"
)

// ParseTab treats an empty value as all.
func ParseTab(raw string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(raw))) {
	case "", TabAll:
		return TabAll, nil
	case TabDemand:
		return TabDemand, nil
	case TabSupply:
		return TabSupply, nil
	}
	return "", apperr.Validation("order.ParseTab", []apperr.FieldError{
		{Field: "tab", Message: "must be one of all, demand, supply"},
	})
}

// Filter holds optional predicates. A nil field imposes no constraint.
// Range bounds are inclusive.
type Filter struct {
	ThirdPartyCustody *bool
	KYCRequired       *bool
	MinLTV            *int
	MaxLTV            *int
	MinTermDays       *int
	MaxTermDays       *int
	LiquidationRisk   *bool
	BTCChain          *preference.BTCChain
	WalletType        *string
	Currency          *string
	Status            *Status
}

// Match reports whether o satisfies every provided predicate.
func (f Filter) Match(o Order) bool {
	switch {
	case f.ThirdPartyCustody != nil && o.ThirdPartyCustody != *f.ThirdPartyCustody:
		return false
	case f.KYCRequired != nil && o.KYCRequired != *f.KYCRequired:
		return false
	case f.MinLTV != nil && o.LTV < *f.MinLTV:
		return false
	case f.MaxLTV != nil && o.LTV > *f.MaxLTV:
		return false
	case f.MinTermDays != nil && o.TermDays < *f.MinTermDays:
		return false
	case f.MaxTermDays != nil && o.TermDays > *f.MaxTermDays:
		return false
	case f.LiquidationRisk != nil && o.LiquidationRisk != *f.LiquidationRisk:
		return false
	case f.BTCChain != nil && o.BTCChain != *f.BTCChain:
		return false
	case f.WalletType != nil && o.WalletType != *f.WalletType:
		return false
	case f.Currency != nil && o.Currency != *f.Currency:
		return false
	case f.Status != nil && o.Status != *f.Status:
		return false
	}
	return true
}

func (t Tab) allows(k Kind) bool {
	switch t {
	case TabDemand:
		return k == KindDemand
	case TabSupply:
		return k == KindSupply
	}
	return true
}

// Apply restricts by tab, then by filter, and returns a new slice sorted newest first.
// The input slice is left untouched.
func Apply(orders []Order, tab Tab, f Filter) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if !tab.allows(o.Type) || !f.Match(o) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}
