package models

import "time"

// Transaction types. Every persisted transfer carries exactly one of these;
// blocks the parser cannot disambiguate are dropped and never stored.
const (
	TransactionPurchase = "purchase"
	TransactionSale     = "sale"
)

// Transfer is one confirmed market transaction. Records are append-only and
// immutable after creation. The JSON field names are the interchange contract
// with the frontend and must not change.
type Transfer struct {
	ID              int64     `json:"id,omitempty"`
	LeagueID        string    `json:"-"`
	PlayerName      string    `json:"playerName"`
	TransactionType string    `json:"transactionType"`
	ManagerTeam     string    `json:"managerTeam"`
	ManagerName     string    `json:"managerName"`
	Position        string    `json:"position"`
	Round           int       `json:"round"`
	BaseValue       float64   `json:"baseValue"`
	FinalPrice      float64   `json:"finalPrice"`
	CreatedAt       time.Time `json:"createdAt"`
}

// TransferParseResult is the output of one ParseTransfers call: the confirmed
// transfers plus every team -> manager association learned while parsing,
// to be merged back into the league document.
type TransferParseResult struct {
	Transfers      []Transfer        `json:"transfers"`
	ManagersByTeam map[string]string `json:"managersByTeam"`
}
