package processors

import (
	"testing"
	"time"

	"github.com/username/osmtracker/backend/src/models"
)

var recNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func saleAt(pos string, base, final float64, createdAt time.Time) models.Transfer {
	return models.Transfer{
		TransactionType: models.TransactionSale,
		Position:        pos,
		BaseValue:       base,
		FinalPrice:      final,
		CreatedAt:       createdAt,
	}
}

func TestRecommend_FallbackWithoutComparables(t *testing.T) {
	squad := []models.Player{{Name: "Benzema", Pos: "ST", Ovr: 85, Value: 10}}

	recs := NewRecommendationProcessor().Recommend(squad, nil, recNow)

	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	rec := recs[0]
	if !almostEqual(rec.CautiousPrice, 18) {
		t.Errorf("CautiousPrice = %v, want 18 (1.8x value)", rec.CautiousPrice)
	}
	if !almostEqual(rec.OptimalPrice, 22) {
		t.Errorf("OptimalPrice = %v, want 22 (2.2x value)", rec.OptimalPrice)
	}
	if rec.Trend != models.TrendStable {
		t.Errorf("Trend = %q, want stable", rec.Trend)
	}
	if rec.Liquidity != 0 {
		t.Errorf("Liquidity = %d, want 0", rec.Liquidity)
	}
	if rec.PlayerTier != models.TierQuality {
		t.Errorf("PlayerTier = %q, want quality for Ovr 85", rec.PlayerTier)
	}
}

func TestRecommend_PercentilePricing(t *testing.T) {
	squad := []models.Player{{Name: "Benzema", Pos: "ST", Ovr: 92, Value: 10}}
	transfers := []models.Transfer{
		saleAt("ST", 10, 15, recNow.AddDate(0, 0, -30)), // 1.5x
		saleAt("CF", 10, 20, recNow.AddDate(0, 0, -20)), // 2.0x, same group
		saleAt("ST", 10, 30, recNow.AddDate(0, 0, -10)), // 3.0x
	}

	recs := NewRecommendationProcessor().Recommend(squad, transfers, recNow)
	rec := recs[0]

	if rec.Liquidity != 3 {
		t.Fatalf("Liquidity = %d, want 3", rec.Liquidity)
	}
	// Multipliers [1.5, 2.0, 3.0]: 50th percentile index 1, 75th index 2.
	if !almostEqual(rec.CautiousPrice, 20) {
		t.Errorf("CautiousPrice = %v, want 20", rec.CautiousPrice)
	}
	if !almostEqual(rec.OptimalPrice, 30) {
		t.Errorf("OptimalPrice = %v, want 30", rec.OptimalPrice)
	}
	if rec.PlayerTier != models.TierStar {
		t.Errorf("PlayerTier = %q, want star for Ovr 92", rec.PlayerTier)
	}
}

func TestRecommend_ComparableFilter(t *testing.T) {
	squad := []models.Player{{Name: "Benzema", Pos: "ST", Ovr: 85, Value: 10}}
	transfers := []models.Transfer{
		saleAt("CB", 10, 20, recNow), // wrong position group
		saleAt("ST", 20, 40, recNow), // base outside [8, 15]
		saleAt("ST", 5, 10, recNow),  // base outside [8, 15]
		{TransactionType: models.TransactionPurchase, Position: "ST", BaseValue: 10, FinalPrice: 20},
	}

	recs := NewRecommendationProcessor().Recommend(squad, transfers, recNow)

	if recs[0].Liquidity != 0 {
		t.Errorf("Liquidity = %d, want 0 (no sale passes the filter)", recs[0].Liquidity)
	}
}

func TestRecommend_PriceCaps(t *testing.T) {
	squad := []models.Player{{Name: "Benzema", Pos: "ST", Ovr: 85, Value: 10}}
	transfers := []models.Transfer{
		saleAt("ST", 10, 40, recNow.AddDate(0, 0, -30)), // 4.0x
	}

	recs := NewRecommendationProcessor().Recommend(squad, transfers, recNow)
	rec := recs[0]

	if !almostEqual(rec.CautiousPrice, 30) {
		t.Errorf("CautiousPrice = %v, want 30 (capped at 3x value)", rec.CautiousPrice)
	}
	if !almostEqual(rec.OptimalPrice, 35) {
		t.Errorf("OptimalPrice = %v, want 35 (capped at 3.5x value)", rec.OptimalPrice)
	}
}

func TestRecommend_TrendRising(t *testing.T) {
	squad := []models.Player{{Name: "Benzema", Pos: "ST", Ovr: 85, Value: 10}}
	transfers := []models.Transfer{
		saleAt("ST", 10, 10, recNow.AddDate(0, 0, -30)),
		saleAt("ST", 10, 20, recNow.AddDate(0, 0, -1)),
		saleAt("ST", 10, 20, recNow.AddDate(0, 0, -2)),
	}

	recs := NewRecommendationProcessor().Recommend(squad, transfers, recNow)

	if recs[0].Trend != models.TrendRising {
		t.Errorf("Trend = %q, want rising", recs[0].Trend)
	}
}

func TestRecommend_TrendFalling(t *testing.T) {
	squad := []models.Player{{Name: "Benzema", Pos: "ST", Ovr: 85, Value: 10}}
	transfers := []models.Transfer{
		saleAt("ST", 10, 30, recNow.AddDate(0, 0, -30)),
		saleAt("ST", 10, 30, recNow.AddDate(0, 0, -20)),
		saleAt("ST", 10, 10, recNow.AddDate(0, 0, -1)),
		saleAt("ST", 10, 10, recNow.AddDate(0, 0, -2)),
	}

	recs := NewRecommendationProcessor().Recommend(squad, transfers, recNow)

	if recs[0].Trend != models.TrendFalling {
		t.Errorf("Trend = %q, want falling", recs[0].Trend)
	}
}

func TestRecommend_SingleRecentSaleStaysStable(t *testing.T) {
	squad := []models.Player{{Name: "Benzema", Pos: "ST", Ovr: 85, Value: 10}}
	transfers := []models.Transfer{
		saleAt("ST", 10, 10, recNow.AddDate(0, 0, -30)),
		saleAt("ST", 10, 30, recNow.AddDate(0, 0, -1)),
	}

	recs := NewRecommendationProcessor().Recommend(squad, transfers, recNow)

	if recs[0].Trend != models.TrendStable {
		t.Errorf("Trend = %q, want stable with a single recent sale", recs[0].Trend)
	}
}

func TestRecommend_SortedByOptimalPrice(t *testing.T) {
	squad := []models.Player{
		{Name: "Cheap", Pos: "CB", Ovr: 75, Value: 2},
		{Name: "Expensive", Pos: "ST", Ovr: 88, Value: 20},
	}

	recs := NewRecommendationProcessor().Recommend(squad, nil, recNow)

	if recs[0].Name != "Expensive" || recs[1].Name != "Cheap" {
		t.Errorf("order = %q, %q; want highest optimal price first", recs[0].Name, recs[1].Name)
	}
	if recs[1].PlayerTier != models.TierPromising {
		t.Errorf("PlayerTier = %q, want promising for Ovr 75", recs[1].PlayerTier)
	}
}

func TestRecommend_UnknownPositionTreatedAsMidfield(t *testing.T) {
	squad := []models.Player{{Name: "Util", Pos: "XX", Ovr: 80, Value: 10}}
	transfers := []models.Transfer{
		saleAt("CM", 10, 20, recNow.AddDate(0, 0, -30)),
	}

	recs := NewRecommendationProcessor().Recommend(squad, transfers, recNow)

	if recs[0].Liquidity != 1 {
		t.Errorf("Liquidity = %d, want 1 (unknown code joins the midfield group)", recs[0].Liquidity)
	}
}
