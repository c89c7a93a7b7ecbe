package order

import (
	"errors"
	"testing"
	"time"

	"grynvault-backend/internal/domain/apperr"
	"grynvault-backend/internal/domain/preference"
)

func ptr[T any](v T) *T { return &v }

var base = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func fixtures() []Order {
	return []Order{
		{ID: "demand-1", Type: KindDemand, LTV: 50, TermDays: 30, ThirdPartyCustody: false, KYCRequired: true, LiquidationRisk: true, BTCChain: preference.ChainL1, WalletType: "own wallet", Currency: "USDC", Status: StatusOpen, Timestamp: base.Add(1 * time.Hour)},
		{ID: "demand-2", Type: KindDemand, LTV: 70, TermDays: 180, ThirdPartyCustody: true, KYCRequired: false, LiquidationRisk: false, BTCChain: preference.ChainBridged, WalletType: "multisig", Currency: "USD", Status: StatusMatched, Timestamp: base.Add(5 * time.Hour)},
		{ID: "supply-1", Type: KindSupply, LTV: 60, TermDays: 90, ThirdPartyCustody: true, KYCRequired: true, LiquidationRisk: true, BTCChain: preference.ChainL1, WalletType: "custodial", Currency: "USDC", Status: StatusOpen, Timestamp: base.Add(3 * time.Hour)},
		{ID: "supply-2", Type: KindSupply, LTV: 80, TermDays: 365, ThirdPartyCustody: false, KYCRequired: false, LiquidationRisk: true, BTCChain: preference.ChainL1, WalletType: "own wallet", Currency: "EUR", Status: StatusCancelled, Timestamp: base.Add(2 * time.Hour)},
	}
}

func ids(os []Order) []string {
	out := make([]string, len(os))
	for i, o := range os {
		out[i] = o.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply(t *testing.T) {
	cases := []struct {
		name string
		tab  Tab
		f    Filter
		want []string
	}{
		{"all sorted newest first", TabAll, Filter{}, []string{"demand-2", "supply-1", "supply-2", "demand-1"}},
		{"demand tab", TabDemand, Filter{}, []string{"demand-2", "demand-1"}},
		{"supply tab", TabSupply, Filter{}, []string{"supply-1", "supply-2"}},
		{"third-party custody", TabAll, Filter{ThirdPartyCustody: ptr(true)}, []string{"demand-2", "supply-1"}},
		{"self custody", TabAll, Filter{ThirdPartyCustody: ptr(false)}, []string{"supply-2", "demand-1"}},
		{"kyc false", TabAll, Filter{KYCRequired: ptr(false)}, []string{"demand-2", "supply-2"}},
		{"min ltv inclusive", TabAll, Filter{MinLTV: ptr(60)}, []string{"demand-2", "supply-1", "supply-2"}},
		{"max ltv inclusive", TabAll, Filter{MaxLTV: ptr(60)}, []string{"supply-1", "demand-1"}},
		{"ltv band", TabAll, Filter{MinLTV: ptr(60), MaxLTV: ptr(70)}, []string{"demand-2", "supply-1"}},
		{"term band", TabAll, Filter{MinTermDays: ptr(90), MaxTermDays: ptr(180)}, []string{"demand-2", "supply-1"}},
		{"min term only", TabAll, Filter{MinTermDays: ptr(365)}, []string{"supply-2"}},
		{"no liquidation", TabAll, Filter{LiquidationRisk: ptr(false)}, []string{"demand-2"}},
		{"bridged", TabAll, Filter{BTCChain: ptr(preference.ChainBridged)}, []string{"demand-2"}},
		{"wallet", TabAll, Filter{WalletType: ptr("own wallet")}, []string{"supply-2", "demand-1"}},
		{"currency + tab", TabSupply, Filter{Currency: ptr("USDC")}, []string{"supply-1"}},
		{"status open", TabAll, Filter{Status: ptr(StatusOpen)}, []string{"supply-1", "demand-1"}},
		{"status cancelled", TabAll, Filter{Status: ptr(StatusCancelled)}, []string{"supply-2"}},
		{"conjunction empty", TabDemand, Filter{Currency: ptr("EUR")}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Apply(fixtures(), tc.tab, tc.f))
			if !equalIDs(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := fixtures()
	before := ids(in)
	out := Apply(in, TabAll, Filter{})
	if !equalIDs(ids(in), before) {
		t.Fatalf("input reordered: %v", ids(in))
	}
	out[0].ID = "changed"
	for _, o := range in {
		if o.ID == "changed" {
			t.Fatal("output aliases input")
		}
	}
}

func TestApply_SubsetAndSorted(t *testing.T) {
	filters := []Filter{
		{}, {KYCRequired: ptr(true)}, {MinLTV: ptr(55)}, {Status: ptr(StatusOpen), MaxTermDays: ptr(90)},
	}
	for _, tab := range []Tab{TabAll, TabDemand, TabSupply} {
		for _, f := range filters {
			out := Apply(fixtures(), tab, f)
			for i, o := range out {
				if !f.Match(o) || !tab.allows(o.Type) {
					t.Fatalf("%s: %s does not satisfy filter", tab, o.ID)
				}
				if i > 0 && out[i-1].Timestamp.Before(o.Timestamp) {
					t.Fatalf("%s: not sorted descending at %d", tab, i)
				}
			}
		}
	}
}

func TestParseTab(t *testing.T) {
	for raw, want := range map[string]Tab{"": TabAll, "all": TabAll, "Demand": TabDemand, " supply ": TabSupply} {
		got, err := ParseTab(raw)
		if err != nil || got != want {
			t.Fatalf("ParseTab(%q) = %s, %v", raw, got, err)
		}
	}
	_, err := ParseTab("borrow")
	if !errors.Is(err, &apperr.Error{Code: apperr.CodeValidation}) {
		t.Fatalf("want validation error, got %v", err)
	}
}
