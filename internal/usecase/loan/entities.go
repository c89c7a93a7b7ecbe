package loan

import (
	"grynvault-backend/internal/domain/competitor"
	"grynvault-backend/internal/domain/order"
	"grynvault-backend/internal/domain/preference"
)

type SubmitInput struct {
	Preference preference.Preference `json:"preference"`
	// SubmitAnyway bypasses the competitor redirect gate.
	SubmitAnyway bool `json:"submitAnyway"`
}

type PreviewDTO struct {
	Summary     *preference.Summary     `json:"summary,omitempty"`
	Redirect    bool                    `json:"redirect"`
	Competitors []competitor.Competitor `json:"competitors,omitempty"`
}

type SubmitDTO struct {
	Order   order.Order        `json:"order"`
	Summary preference.Summary `json:"summary"`
}
