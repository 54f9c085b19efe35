package incentive

import "strings"

// Tier is a sustainability tier inferred from a project's certifications or
// its energy-reduction percentage. Tiers are strictly ordered; TierNone means
// no tier applies.
type Tier int

const (
	TierNone Tier = iota
	TierEnergyStar
	TierLEEDGold
	TierNetZero
	TierLivingBuilding
)

var tierNames = map[Tier]string{
	TierNone:           "",
	TierEnergyStar:     "energy_star",
	TierLEEDGold:       "leed_gold",
	TierNetZero:        "net_zero",
	TierLivingBuilding: "living_building",
}

// String returns the canonical snake_case tier name, empty for TierNone.
func (t Tier) String() string {
	return tierNames[t]
}

// Multiplier returns the value multiplier applied to a program's base amount
// for projects at this tier.
func (t Tier) Multiplier() float64 {
	switch t {
	case TierLivingBuilding:
		return 1.15
	case TierNetZero:
		return 1.10
	case TierLEEDGold:
		return 1.05
	default:
		return 1.0
	}
}

// TierFromName resolves a canonical tier name back to its Tier. Unknown names
// resolve to TierNone.
func TierFromName(name string) Tier {
	for t, n := range tierNames {
		if n != "" && n == name {
			return t
		}
	}
	return TierNone
}

// InferTier derives the sustainability tier from certification keywords or
// the energy-reduction percentage, evaluated in strict descending order. The
// first matching rule wins; rules never combine.
func InferTier(certifications []string, energyReductionPct float64) Tier {
	joined := strings.ToLower(strings.Join(certifications, " "))

	switch {
	case strings.Contains(joined, "living building") || energyReductionPct >= 100:
		return TierLivingBuilding
	case strings.Contains(joined, "passive house") || strings.Contains(joined, "net zero") || energyReductionPct >= 80:
		return TierNetZero
	case strings.Contains(joined, "leed gold") || strings.Contains(joined, "leed platinum") || energyReductionPct >= 50:
		return TierLEEDGold
	case strings.Contains(joined, "energy star") || energyReductionPct >= 20:
		return TierEnergyStar
	}
	return TierNone
}
