package models

// CashSnapshot records a manager's estimated cash after one fully processed
// round of the simulation.
type CashSnapshot struct {
	Round int     `json:"round"`
	Cash  float64 `json:"cash"`
}

// ManagerStats is the per-manager block of a league report. Cash and the
// snapshot history come from the cash-flow simulation; everything else is
// aggregated directly from the transfer list.
type ManagerStats struct {
	Name         string         `json:"name"`
	TeamName     string         `json:"teamName"`
	InitialValue float64        `json:"initialValue"`
	CurrentValue float64        `json:"currentValue"`
	InitialCash  float64        `json:"initialCash"`
	Spent        float64        `json:"spent"`
	Income       float64        `json:"income"`
	Count        int            `json:"count"`
	TransferNet  float64        `json:"transferNet"`
	Cash         float64        `json:"cash"`
	TotalAssets  float64        `json:"totalAssets"`
	Evolution    float64        `json:"evolution"`
	AvgPremium   float64        `json:"avgPremium"`
	AvgProfit    float64        `json:"avgProfit"`
	Transfers    []Transfer     `json:"transfers"`
	CashFlow     []CashSnapshot `json:"cashFlow"`
}

// RatedTransfer is a transfer annotated with its premium or profit percent
// for the panic-buy and master-sale rankings.
type RatedTransfer struct {
	Transfer
	Percent float64 `json:"percent"`
}

// TradedPlayer counts how often one player name appears in the transfer log.
type TradedPlayer struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LeagueReport is the full aggregate statistics object returned to the
// frontend. Transient: recomputed from stored data on every request,
// never persisted.
type LeagueReport struct {
	ManagerList      []ManagerStats  `json:"managerList"`
	TotalSpent       float64         `json:"totalSpent"`
	TotalIncome      float64         `json:"totalIncome"`
	AvgPurchasePrice float64         `json:"avgPurchasePrice"`
	AvgSalePrice     float64         `json:"avgSalePrice"`
	PanicBuys        []RatedTransfer `json:"panicBuys"`
	MasterSales      []RatedTransfer `json:"masterSales"`
	MostTraded       []TradedPlayer  `json:"mostTraded"`
}

// ManagerReport is the drill-down view for a single manager.
type ManagerReport struct {
	Manager             ManagerStats    `json:"manager"`
	BiggestPurchase     *Transfer       `json:"biggestPurchase,omitempty"`
	BestSales           []RatedTransfer `json:"bestSales"`
	WorstSales          []RatedTransfer `json:"worstSales"`
	ImmediateSales      int             `json:"immediateSales"`
	ImmediateSalesValue float64         `json:"immediateSalesValue"`
}
