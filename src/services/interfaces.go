// backend/src/services/interfaces.go
package services

import (
	"errors"

	"github.com/username/osmtracker/backend/src/models"
)

// Common service errors. Parsers never fail on malformed pasted text (bad
// lines are dropped); these cover missing preconditions and storage only.
var (
	ErrLeagueIDRequired = errors.New("league id is required")
	ErrLeagueNotFound   = errors.New("league not found")
	ErrManagerNotFound  = errors.New("manager not found")
)

// ManagerAssignmentRow is one row of the manager-assignment screen: which
// manager runs a team and what the team is currently worth.
type ManagerAssignmentRow struct {
	TeamName     string  `json:"teamName"`
	ManagerName  string  `json:"managerName"`
	CurrentValue float64 `json:"currentValue"`
	InitialCash  float64 `json:"initialCash"`
}

// LeagueService defines the core league tracking logic: imports of pasted
// text, league document maintenance and report assembly.
type LeagueService interface {
	CreateLeague(name string) (*models.League, error)
	ListLeagues() ([]models.League, error)
	GetLeagueData(leagueID string) (*models.LeagueData, error)
	DeleteLeague(leagueID string) error

	// ImportTemplate replaces the league's teams with the parsed roster and
	// reclassifies the league type.
	ImportTemplate(leagueID, text string) (*models.TemplateResult, error)

	// SaveManagers merges manager assignments, current values and cash
	// baselines into the league's teams.
	SaveManagers(leagueID string, rows []ManagerAssignmentRow) error

	// ImportTransfers parses pasted transfer text against the league's known
	// teams, appends the confirmed records and merges newly learned
	// team -> manager associations. PreviewTransfers parses without
	// persisting anything.
	ImportTransfers(leagueID, text string) (*models.TransferParseResult, error)
	PreviewTransfers(leagueID, text string) (*models.TransferParseResult, error)

	GetTransfers(leagueID string) ([]models.Transfer, error)
	GetLeagueReport(leagueID string) (*models.LeagueReport, error)
	GetManagerReport(leagueID, managerName string) (*models.ManagerReport, error)

	// RecommendSales parses a pasted squad and prices it against the
	// league's historical sales.
	RecommendSales(leagueID, squadText string) ([]models.RecommendedPlayer, error)

	InvalidateLeagueCache(leagueID string)
}
