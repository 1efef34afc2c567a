// backend/src/processors/recommendation_processor.go
package processors

import (
	"math"
	"sort"
	"time"

	"github.com/username/osmtracker/backend/src/models"
)

// positionGroups maps position codes to the four squad groups. Unknown
// codes fall back to Midfielder.
var positionGroups = map[string]string{
	"ST": groupForwardRec, "CF": groupForwardRec, "RW": groupForwardRec, "LW": groupForwardRec,
	"CAM": groupMidfielderRec, "CM": groupMidfielderRec, "CDM": groupMidfielderRec,
	"RM": groupMidfielderRec, "LM": groupMidfielderRec,
	"CB": groupDefenderRec, "RB": groupDefenderRec, "LB": groupDefenderRec,
	"RWB": groupDefenderRec, "LWB": groupDefenderRec,
	"GK": groupGoalkeeperRec,
}

const (
	groupForwardRec    = "Forward"
	groupMidfielderRec = "Midfielder"
	groupDefenderRec   = "Defender"
	groupGoalkeeperRec = "Goalkeeper"
)

// Recommendation pricing constants: fallback and cap multipliers over the
// player's current value, the comparable-sale value window, and the recent
// window for the trend indicator.
const (
	fallbackCautiousMultiplier = 1.8
	fallbackOptimalMultiplier  = 2.2
	cautiousPriceCap           = 3.0
	optimalPriceCap            = 3.5
	comparableValueLow         = 0.8
	comparableValueHigh        = 1.5
	trendWindow                = 7 * 24 * time.Hour
	trendThreshold             = 0.10
)

// RecommendationProcessor prices a squad for sale against the league's
// historical sales.
type RecommendationProcessor struct{}

func NewRecommendationProcessor() *RecommendationProcessor {
	return &RecommendationProcessor{}
}

func positionGroup(pos string) string {
	if g, ok := positionGroups[pos]; ok {
		return g
	}
	return groupMidfielderRec
}

func ovrTier(ovr int) string {
	switch {
	case ovr > 90:
		return models.TierStar
	case ovr > 80:
		return models.TierQuality
	default:
		return models.TierPromising
	}
}

// Recommend computes suggested sale price bands for each squad player.
//
// Comparable sales are historical sales in the same position group whose
// base value lies within [0.8x, 1.5x] of the player's value. With no
// comparables the fixed fallback multipliers apply; otherwise the cautious
// and optimal prices take the 50th and 75th percentile of the observed
// finalPrice/baseValue multipliers. Both bands are capped. The trend
// compares the mean multiplier of sales from the last 7 days before now
// against the full comparable set and needs at least two recent sales to
// move off stable. Output is sorted by optimal price, highest first.
func (p *RecommendationProcessor) Recommend(squad []models.Player, transfers []models.Transfer, now time.Time) []models.RecommendedPlayer {
	var sales []models.Transfer
	for _, t := range transfers {
		if t.TransactionType == models.TransactionSale && t.BaseValue > 0 {
			sales = append(sales, t)
		}
	}
	recentCutoff := now.Add(-trendWindow)

	recommendations := make([]models.RecommendedPlayer, 0, len(squad))
	for _, player := range squad {
		group := positionGroup(player.Pos)
		low := player.Value * comparableValueLow
		high := player.Value * comparableValueHigh

		var comparable []models.Transfer
		for _, s := range sales {
			if positionGroup(s.Position) == group && s.BaseValue >= low && s.BaseValue <= high {
				comparable = append(comparable, s)
			}
		}

		rec := models.RecommendedPlayer{
			Player:        player,
			PlayerTier:    ovrTier(player.Ovr),
			Liquidity:     len(comparable),
			Trend:         models.TrendStable,
			CautiousPrice: player.Value * fallbackCautiousMultiplier,
			OptimalPrice:  player.Value * fallbackOptimalMultiplier,
		}

		if len(comparable) > 0 {
			multipliers := make([]float64, 0, len(comparable))
			for _, s := range comparable {
				multipliers = append(multipliers, s.FinalPrice/s.BaseValue)
			}
			sort.Float64s(multipliers)

			rec.CautiousPrice = player.Value * percentile(multipliers, 0.5)
			rec.OptimalPrice = player.Value * percentile(multipliers, 0.75)

			var recent []float64
			for _, s := range comparable {
				if !s.CreatedAt.IsZero() && !s.CreatedAt.Before(recentCutoff) {
					recent = append(recent, s.FinalPrice/s.BaseValue)
				}
			}
			if len(recent) > 1 {
				historicalMean := mean(multipliers)
				recentMean := mean(recent)
				switch {
				case recentMean > historicalMean*(1+trendThreshold):
					rec.Trend = models.TrendRising
				case recentMean < historicalMean*(1-trendThreshold):
					rec.Trend = models.TrendFalling
				}
			}
		}

		rec.CautiousPrice = math.Min(rec.CautiousPrice, player.Value*cautiousPriceCap)
		rec.OptimalPrice = math.Min(rec.OptimalPrice, player.Value*optimalPriceCap)
		recommendations = append(recommendations, rec)
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].OptimalPrice > recommendations[j].OptimalPrice
	})
	return recommendations
}

// percentile indexes a sorted multiplier list at floor(n*q).
func percentile(sorted []float64, q float64) float64 {
	idx := int(math.Floor(float64(len(sorted)) * q))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
