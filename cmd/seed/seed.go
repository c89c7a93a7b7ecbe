package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"grynvault-backend/internal/domain/order"
	"grynvault-backend/internal/domain/preference"
)

//go:embed offers.json
var defaultOffers []byte

// offer is one lender offer in a seed fixture. CreatedAt is optional.
type offer struct {
	preference.Preference
	CreatedAt string `json:"createdAt"`
}

func parseOffers(raw []byte) ([]*order.Record, error) {
	var offers []offer
	if err := json.Unmarshal(raw, &offers); err != nil {
		return nil, fmt.Errorf("decode offers: %w", err)
	}
	recs := make([]*order.Record, 0, len(offers))
	for i, o := range offers {
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("offer %d: %w", i, err)
		}
		r := order.RecordFromPreference(o.Preference)
		if o.CreatedAt != "" {
			at, err := order.ParseTimestamp(o.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("offer %d: createdAt %q: %w", i, o.CreatedAt, err)
			}
			r.CreatedAt = at
		}
		recs = append(recs, r)
	}
	return recs, nil
}

// seed stores every offer in one transaction unless the supply side already has data.
func seed(ctx context.Context, repo order.Repository, recs []*order.Record) (int, error) {
	existing, err := repo.List(ctx, order.KindSupply)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	err = repo.Tx(ctx, func(tx order.Repository) error {
		for _, r := range recs {
			if err := tx.Create(ctx, order.KindSupply, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}
