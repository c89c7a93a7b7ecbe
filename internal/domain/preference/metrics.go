package preference

import "math"

// MatchTime is the estimated time-to-match bucket.
type MatchTime string

const (
	MatchFast     MatchTime = "fast"
	MatchAverage  MatchTime = "average"
	MatchSlow     MatchTime = "slow"
	MatchVerySlow MatchTime = "very_slow"
)

func (m MatchTime) Label() string {
	switch m {
	case MatchFast:
		return "Fast (1-3 days)"
	case MatchAverage:
		return "Average (4-7 days)"
	case MatchSlow:
		return "Slow (8-14 days)"
	case MatchVerySlow:
		return "Very Slow (15+ days)"
	}
	return string(m)
}

// RedirectRateThreshold is the highest APR we take without sending the borrower to competitors.
const RedirectRateThreshold = 10.0

const (
	baseMatchDays = 7.0
	minMatchDays  = 1.0
	maxMatchDays  = 21.0
	neutralRate   = 7.0
)

// matchDays is the unbucketed estimate, already clamped to [1, 21].
func matchDays(p Preference) float64 {
	days := baseMatchDays

	if p.LTV <= 50 {
		days -= 2
	} else if p.LTV >= 70 {
		days += 3
	}
	if p.Custody == CustodySelf {
		days++
	}
	if p.LiquidationRisk == LiquidationNo {
		days += 4
	}
	days -= (p.UserRate - neutralRate) * 0.5

	return math.Max(minMatchDays, math.Min(days, maxMatchDays))
}

// EstimatedMatchTime clamps first, then buckets with inclusive upper bounds.
func EstimatedMatchTime(p Preference) MatchTime {
	days := matchDays(p)
	switch {
	case days <= 3:
		return MatchFast
	case days <= 7:
		return MatchAverage
	case days <= 14:
		return MatchSlow
	default:
		return MatchVerySlow
	}
}

// VaultPoints is a reward score. Lower LTV and longer terms earn more.
func VaultPoints(p Preference) int {
	points := 100.0
	points += float64(70 - p.LTV)
	points += float64(p.TermDays) / 30 * 10
	if p.KYC == KYCRequired {
		points += 50
	}
	if p.LiquidationRisk == LiquidationYes {
		points += 30
	}
	return int(math.Round(points))
}

// CalculatedAPR is where rate pricing will live; today the offered rate passes through.
func CalculatedAPR(p Preference) float64 {
	return p.UserRate
}

func ShouldRedirectToCompetitors(p Preference) bool {
	return p.UserRate > RedirectRateThreshold
}

// Summary is everything the configurator preview shows for one preference.
type Summary struct {
	EstimatedMatchTime MatchTime `json:"estimatedMatchTime"`
	MatchTimeLabel     string    `json:"matchTimeLabel"`
	VaultPoints        int       `json:"vaultPoints"`
	APR                float64   `json:"apr"`
	Redirect           bool      `json:"redirect"`
}

func Summarize(p Preference) Summary {
	mt := EstimatedMatchTime(p)
	return Summary{
		EstimatedMatchTime: mt,
		MatchTimeLabel:     mt.Label(),
		VaultPoints:        VaultPoints(p),
		APR:                CalculatedAPR(p),
		Redirect:           ShouldRedirectToCompetitors(p),
	}
}
