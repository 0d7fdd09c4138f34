package domain

// StatusTier is the ordered productivity classification of a summary.
type StatusTier string

const (
	TierExcellent        StatusTier = "excellent"
	TierGood             StatusTier = "good"
	TierAverage          StatusTier = "average"
	TierNeedsImprovement StatusTier = "needs-improvement"
)

// Rank orders tiers from worst (0) to best (3).
func (t StatusTier) Rank() int {
	switch t {
	case TierExcellent:
		return 3
	case TierGood:
		return 2
	case TierAverage:
		return 1
	default:
		return 0
	}
}

// DerivedStatus is the tier plus its fixed message and display color.
type DerivedStatus struct {
	Tier    StatusTier `json:"status"`
	Message string     `json:"message"`
	Color   string     `json:"color"`
}
