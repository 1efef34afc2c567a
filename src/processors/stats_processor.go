// backend/src/processors/stats_processor.go
package processors

import (
	"sort"

	"github.com/username/osmtracker/backend/src/models"
)

// StatsProcessor aggregates the transfer log into the league report. Cash
// positions and histories come from the cash-flow simulation; everything
// else is summed straight off the transfers.
type StatsProcessor struct {
	cashFlow *CashFlowProcessor
}

func NewStatsProcessor(cashFlow *CashFlowProcessor) *StatsProcessor {
	return &StatsProcessor{cashFlow: cashFlow}
}

// premiumPercent is the over/under price of a transfer relative to its base
// value. A zero base yields 0 by convention, never NaN or Inf.
func premiumPercent(t models.Transfer) float64 {
	if t.BaseValue > 0 {
		return (t.FinalPrice/t.BaseValue - 1) * 100
	}
	return 0
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Calculate builds the full league report. Managers appear in the order of
// the league's team list; transfers naming an unassigned manager are
// excluded from every sum without raising an error.
func (p *StatsProcessor) Calculate(transfers []models.Transfer, league models.LeagueData) models.LeagueReport {
	report := models.LeagueReport{
		ManagerList: []models.ManagerStats{},
		PanicBuys:   []models.RatedTransfer{},
		MasterSales: []models.RatedTransfer{},
		MostTraded:  []models.TradedPlayer{},
	}
	if len(league.Teams) == 0 {
		return report
	}

	type accumulator struct {
		stats    *models.ManagerStats
		premiums []float64
		profits  []float64
	}

	byManager := map[string]*accumulator{}
	order := []string{}
	for _, team := range league.Teams {
		managerName := league.ManagersByTeam[team.Name]
		if managerName == "" {
			continue
		}
		byManager[managerName] = &accumulator{stats: &models.ManagerStats{
			Name:         managerName,
			TeamName:     team.Name,
			InitialValue: team.InitialValue,
			CurrentValue: team.CurrentValue,
			InitialCash:  team.InitialCash,
			Transfers:    []models.Transfer{},
			CashFlow:     []models.CashSnapshot{},
		}}
		order = append(order, managerName)
	}

	for _, t := range transfers {
		acc, ok := byManager[t.ManagerName]
		if !ok {
			continue
		}
		acc.stats.Transfers = append(acc.stats.Transfers, t)
		acc.stats.Count++
		switch t.TransactionType {
		case models.TransactionPurchase:
			report.TotalSpent += t.FinalPrice
			acc.stats.Spent += t.FinalPrice
			acc.premiums = append(acc.premiums, premiumPercent(t))
		case models.TransactionSale:
			report.TotalIncome += t.FinalPrice
			acc.stats.Income += t.FinalPrice
			acc.profits = append(acc.profits, premiumPercent(t))
		}
	}

	flowsByManager := map[string]ManagerCashFlow{}
	for _, f := range p.cashFlow.Simulate(transfers, league) {
		flowsByManager[f.Name] = f
	}

	for _, name := range order {
		acc := byManager[name]
		m := acc.stats
		m.TransferNet = m.Income - m.Spent

		flow := flowsByManager[name]
		m.Cash = flow.FinalCash
		if flow.CashFlow != nil {
			m.CashFlow = flow.CashFlow
		}

		m.TotalAssets = m.CurrentValue + m.Cash
		initialTotalAssets := m.InitialValue + m.InitialCash
		if initialTotalAssets > 0 {
			m.Evolution = (m.TotalAssets - initialTotalAssets) / initialTotalAssets * 100
		}
		m.AvgPremium = mean(acc.premiums)
		m.AvgProfit = mean(acc.profits)

		report.ManagerList = append(report.ManagerList, *m)
	}

	purchaseCount, saleCount := 0, 0
	for _, t := range transfers {
		switch t.TransactionType {
		case models.TransactionPurchase:
			purchaseCount++
		case models.TransactionSale:
			saleCount++
		}
	}
	if purchaseCount > 0 {
		report.AvgPurchasePrice = report.TotalSpent / float64(purchaseCount)
	}
	if saleCount > 0 {
		report.AvgSalePrice = report.TotalIncome / float64(saleCount)
	}

	report.PanicBuys = topRated(transfers, models.TransactionPurchase, 5)
	report.MasterSales = topRated(transfers, models.TransactionSale, 5)
	report.MostTraded = mostTraded(transfers, 5)

	return report
}

// ManagerDetails builds the drill-down report for one manager out of an
// already computed manager list. Returns nil when the manager is unknown.
func (p *StatsProcessor) ManagerDetails(managerName string, managerList []models.ManagerStats) *models.ManagerReport {
	var manager *models.ManagerStats
	for i := range managerList {
		if managerList[i].Name == managerName {
			manager = &managerList[i]
			break
		}
	}
	if manager == nil {
		return nil
	}

	var biggestPurchase *models.Transfer
	var sales []models.RatedTransfer
	immediateSales := 0
	immediateSalesValue := 0.0

	for _, t := range manager.Transfers {
		switch t.TransactionType {
		case models.TransactionPurchase:
			if biggestPurchase == nil || t.FinalPrice > biggestPurchase.FinalPrice {
				tt := t
				biggestPurchase = &tt
			}
		case models.TransactionSale:
			sales = append(sales, models.RatedTransfer{Transfer: t, Percent: premiumPercent(t)})
			// A sale with no base value is a player offloaded the moment he
			// arrived, before the market ever priced him.
			if t.BaseValue == 0 {
				immediateSales++
				immediateSalesValue += t.FinalPrice
			}
		}
	}

	best := make([]models.RatedTransfer, len(sales))
	copy(best, sales)
	sortRated(best, true)
	worst := make([]models.RatedTransfer, len(sales))
	copy(worst, sales)
	sortRated(worst, false)

	return &models.ManagerReport{
		Manager:             *manager,
		BiggestPurchase:     biggestPurchase,
		BestSales:           headRated(best, 3),
		WorstSales:          headRated(worst, 3),
		ImmediateSales:      immediateSales,
		ImmediateSalesValue: immediateSalesValue,
	}
}

func topRated(transfers []models.Transfer, transactionType string, n int) []models.RatedTransfer {
	var rated []models.RatedTransfer
	for _, t := range transfers {
		if t.TransactionType == transactionType {
			rated = append(rated, models.RatedTransfer{Transfer: t, Percent: premiumPercent(t)})
		}
	}
	sortRated(rated, true)
	return headRated(rated, n)
}

// sortRated orders by percent, breaking ties by final price then player name
// so identical inputs always produce identical rankings.
func sortRated(rated []models.RatedTransfer, descending bool) {
	sort.SliceStable(rated, func(i, j int) bool {
		a, b := rated[i], rated[j]
		if a.Percent != b.Percent {
			if descending {
				return a.Percent > b.Percent
			}
			return a.Percent < b.Percent
		}
		if a.FinalPrice != b.FinalPrice {
			return a.FinalPrice > b.FinalPrice
		}
		return a.PlayerName < b.PlayerName
	})
}

func headRated(rated []models.RatedTransfer, n int) []models.RatedTransfer {
	if rated == nil {
		return []models.RatedTransfer{}
	}
	if len(rated) > n {
		rated = rated[:n]
	}
	return rated
}

func mostTraded(transfers []models.Transfer, n int) []models.TradedPlayer {
	counts := map[string]int{}
	for _, t := range transfers {
		counts[t.PlayerName]++
	}
	traded := make([]models.TradedPlayer, 0, len(counts))
	for name, count := range counts {
		traded = append(traded, models.TradedPlayer{Name: name, Count: count})
	}
	sort.Slice(traded, func(i, j int) bool {
		if traded[i].Count != traded[j].Count {
			return traded[i].Count > traded[j].Count
		}
		return traded[i].Name < traded[j].Name
	})
	if len(traded) > n {
		traded = traded[:n]
	}
	return traded
}
