package models

// Player is one entry of a manager's parsed squad. Ephemeral: only used as
// input to the sale recommendation processor, never persisted.
type Player struct {
	Name  string  `json:"name"`
	Pos   string  `json:"pos"`
	Ovr   int     `json:"ovr"`
	Value float64 `json:"value"`
}

// Player tiers by overall rating.
const (
	TierStar      = "Star"      // ovr > 90
	TierQuality   = "Quality"   // ovr > 80
	TierPromising = "Promising" // everything else
)

// Market trend indicators for the recommendation report.
const (
	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendStable  = "stable"
)

// RecommendedPlayer extends a squad player with suggested sale price bands
// computed from comparable historical sales.
type RecommendedPlayer struct {
	Player
	PlayerTier    string  `json:"playerTier"`
	Liquidity     int     `json:"liquidity"`
	Trend         string  `json:"trend"`
	CautiousPrice float64 `json:"cautiousPrice"`
	OptimalPrice  float64 `json:"optimalPrice"`
}
