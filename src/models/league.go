package models

import "time"

// League groups one tracked competition: its teams, the team-to-manager
// assignments and an append-only transfer history.
type League struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"` // "standard" or "battle"
	CreatedAt time.Time `json:"createdAt"`
}

// League types derived from the imported roster template.
const (
	LeagueTypeStandard = "standard"
	LeagueTypeBattle   = "battle"
)

// Team is a roster entity parsed from the league template. InitialCash is the
// cash baseline established when managers are assigned, not part of the
// template itself. CurrentValue and ManagerName are filled in later from the
// manager-assignment screen.
type Team struct {
	LeagueID            string  `json:"-"`
	Name                string  `json:"name"`
	Alias               string  `json:"alias"`
	InitialValue        float64 `json:"initialValue"`
	FixedIncomePerRound float64 `json:"fixedIncomePerRound"`
	InitialCash         float64 `json:"initialCash"`
	CurrentValue        float64 `json:"currentValue"`
	ManagerName         string  `json:"managerName,omitempty"`
}

// LeagueData is the full league document handed to the stats and simulation
// processors: teams plus the team-name -> manager-name mapping.
type LeagueData struct {
	League
	Teams          []Team            `json:"teams"`
	ManagersByTeam map[string]string `json:"managersByTeam"`
}

// TemplateResult is the output of parsing a pasted league roster template.
type TemplateResult struct {
	Teams []Team `json:"teams"`
	Type  string `json:"type"`
}
