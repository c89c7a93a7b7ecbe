package order

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeStats(t *testing.T) {
	orders := []Order{
		{Type: KindDemand, Amount: 50000.10, Status: StatusOpen},
		{Type: KindDemand, Amount: 25000.20, Status: StatusMatched},
		{Type: KindSupply, Amount: 100000, Status: StatusOpen},
		{Type: KindSupply, Amount: 1, Status: StatusCancelled},
	}
	s := ComputeStats(orders)

	if !s.TotalDemand.Equal(decimal.RequireFromString("75000.3")) {
		t.Fatalf("TotalDemand = %s", s.TotalDemand)
	}
	if !s.TotalSupply.Equal(decimal.RequireFromString("100001")) {
		t.Fatalf("TotalSupply = %s", s.TotalSupply)
	}
	if s.ActiveRequests != 2 || s.ActiveCommitments != 1 {
		t.Fatalf("counts = %d/%d", s.ActiveRequests, s.ActiveCommitments)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil)
	if !s.TotalDemand.IsZero() || !s.TotalSupply.IsZero() || s.ActiveRequests != 0 {
		t.Fatalf("unexpected: %+v", s)
	}
}
