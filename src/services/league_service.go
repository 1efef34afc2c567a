// backend/src/services/league_service.go
package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/osmtracker/backend/src/database"
	"github.com/username/osmtracker/backend/src/logger"
	"github.com/username/osmtracker/backend/src/models"
	"github.com/username/osmtracker/backend/src/parsers/market"
	"github.com/username/osmtracker/backend/src/processors"
	"github.com/username/osmtracker/backend/src/security/validation"
)

const (
	ckLeagueReport         = "agg_league_report_%s"
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type leagueServiceImpl struct {
	statsProcessor          *processors.StatsProcessor
	recommendationProcessor *processors.RecommendationProcessor
	reportCache             *cache.Cache
}

func NewLeagueService(
	statsProcessor *processors.StatsProcessor,
	recommendationProcessor *processors.RecommendationProcessor,
	reportCache *cache.Cache,
) LeagueService {
	return &leagueServiceImpl{
		statsProcessor:          statsProcessor,
		recommendationProcessor: recommendationProcessor,
		reportCache:             reportCache,
	}
}

func (s *leagueServiceImpl) CreateLeague(name string) (*models.League, error) {
	name = validation.SanitizeText(name)
	if name == "" {
		return nil, fmt.Errorf("league name is required")
	}
	league := models.League{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      models.LeagueTypeStandard,
		CreatedAt: time.Now().UTC(),
	}
	_, err := database.DB.Exec(
		"INSERT INTO leagues (id, name, type, created_at) VALUES (?, ?, ?, ?)",
		league.ID, league.Name, league.Type, league.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating league: %w", err)
	}
	logger.L.Info("League created", "leagueID", league.ID, "name", league.Name)
	return &league, nil
}

func (s *leagueServiceImpl) ListLeagues() ([]models.League, error) {
	rows, err := database.DB.Query("SELECT id, name, type, created_at FROM leagues ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("listing leagues: %w", err)
	}
	defer rows.Close()

	leagues := []models.League{}
	for rows.Next() {
		var l models.League
		if err := rows.Scan(&l.ID, &l.Name, &l.Type, &l.CreatedAt); err != nil {
			logger.L.Error("Row scan error", "error", err)
			continue
		}
		leagues = append(leagues, l)
	}
	return leagues, rows.Err()
}

func (s *leagueServiceImpl) GetLeagueData(leagueID string) (*models.LeagueData, error) {
	if leagueID == "" {
		return nil, ErrLeagueIDRequired
	}

	var data models.LeagueData
	err := database.DB.QueryRow(
		"SELECT id, name, type, created_at FROM leagues WHERE id = ?", leagueID,
	).Scan(&data.ID, &data.Name, &data.Type, &data.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLeagueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading league %s: %w", leagueID, err)
	}

	rows, err := database.DB.Query(
		`SELECT name, alias, initial_value, fixed_income_per_round, initial_cash, current_value, manager_name
		 FROM teams WHERE league_id = ? ORDER BY rowid ASC`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("loading teams for league %s: %w", leagueID, err)
	}
	defer rows.Close()

	data.Teams = []models.Team{}
	data.ManagersByTeam = map[string]string{}
	for rows.Next() {
		t := models.Team{LeagueID: leagueID}
		if err := rows.Scan(&t.Name, &t.Alias, &t.InitialValue, &t.FixedIncomePerRound,
			&t.InitialCash, &t.CurrentValue, &t.ManagerName); err != nil {
			logger.L.Error("Row scan error", "error", err)
			continue
		}
		data.Teams = append(data.Teams, t)
		if t.ManagerName != "" {
			data.ManagersByTeam[t.Name] = t.ManagerName
		}
	}
	return &data, rows.Err()
}

func (s *leagueServiceImpl) DeleteLeague(leagueID string) error {
	if leagueID == "" {
		return ErrLeagueIDRequired
	}
	tx, err := database.DB.Begin()
	if err != nil {
		return fmt.Errorf("starting delete transaction: %w", err)
	}
	defer tx.Rollback()

	// Children are covered by ON DELETE CASCADE; delete explicitly anyway as
	// a safety measure for databases created before foreign keys were on.
	_, _ = tx.Exec("DELETE FROM transfers WHERE league_id = ?", leagueID)
	_, _ = tx.Exec("DELETE FROM teams WHERE league_id = ?", leagueID)

	res, err := tx.Exec("DELETE FROM leagues WHERE id = ?", leagueID)
	if err != nil {
		return fmt.Errorf("deleting league %s: %w", leagueID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrLeagueNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing league delete: %w", err)
	}
	s.InvalidateLeagueCache(leagueID)
	logger.L.Info("League deleted", "leagueID", leagueID)
	return nil
}

func (s *leagueServiceImpl) ImportTemplate(leagueID, text string) (*models.TemplateResult, error) {
	if leagueID == "" {
		return nil, ErrLeagueIDRequired
	}
	if _, err := s.GetLeagueData(leagueID); err != nil {
		return nil, err
	}

	result := market.ParseTemplate(validation.CleanPastedText(text))

	tx, err := database.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting template import: %w", err)
	}
	defer tx.Rollback()

	// A template import resets the roster entirely.
	if _, err := tx.Exec("DELETE FROM teams WHERE league_id = ?", leagueID); err != nil {
		return nil, fmt.Errorf("clearing teams: %w", err)
	}
	for _, team := range result.Teams {
		_, err := tx.Exec(
			`INSERT INTO teams (league_id, name, alias, initial_value, fixed_income_per_round, initial_cash, current_value, manager_name)
			 VALUES (?, ?, ?, ?, ?, ?, 0, '')`,
			leagueID, team.Name, team.Alias, team.InitialValue, team.FixedIncomePerRound, team.InitialCash,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting team %q: %w", team.Name, err)
		}
	}
	if _, err := tx.Exec("UPDATE leagues SET type = ? WHERE id = ?", result.Type, leagueID); err != nil {
		return nil, fmt.Errorf("updating league type: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing template import: %w", err)
	}

	s.InvalidateLeagueCache(leagueID)
	logger.L.Info("Template imported", "leagueID", leagueID, "teams", len(result.Teams), "type", result.Type)
	return &result, nil
}

func (s *leagueServiceImpl) SaveManagers(leagueID string, assignments []ManagerAssignmentRow) error {
	if leagueID == "" {
		return ErrLeagueIDRequired
	}
	if _, err := s.GetLeagueData(leagueID); err != nil {
		return err
	}

	tx, err := database.DB.Begin()
	if err != nil {
		return fmt.Errorf("starting manager save: %w", err)
	}
	defer tx.Rollback()

	for _, row := range assignments {
		_, err := tx.Exec(
			`UPDATE teams SET manager_name = ?, current_value = ?, initial_cash = ?
			 WHERE league_id = ? AND name = ?`,
			validation.SanitizeText(row.ManagerName), row.CurrentValue, row.InitialCash,
			leagueID, row.TeamName,
		)
		if err != nil {
			return fmt.Errorf("updating team %q: %w", row.TeamName, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing manager save: %w", err)
	}

	s.InvalidateLeagueCache(leagueID)
	return nil
}

func (s *leagueServiceImpl) PreviewTransfers(leagueID, text string) (*models.TransferParseResult, error) {
	data, err := s.GetLeagueData(leagueID)
	if err != nil {
		return nil, err
	}
	result := market.ParseTransfers(validation.CleanPastedText(text), knownTeamNames(data))
	return &result, nil
}

func (s *leagueServiceImpl) ImportTransfers(leagueID, text string) (*models.TransferParseResult, error) {
	data, err := s.GetLeagueData(leagueID)
	if err != nil {
		return nil, err
	}

	result := market.ParseTransfers(validation.CleanPastedText(text), knownTeamNames(data))
	if len(result.Transfers) == 0 {
		logger.L.Warn("Transfer import parsed no records", "leagueID", leagueID)
		return &result, nil
	}

	tx, err := database.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transfer import: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for i := range result.Transfers {
		t := &result.Transfers[i]
		t.LeagueID = leagueID
		t.CreatedAt = now
		res, err := tx.Exec(
			`INSERT INTO transfers (league_id, player_name, transaction_type, manager_team, manager_name, position, round, base_value, final_price, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			leagueID, t.PlayerName, t.TransactionType, t.ManagerTeam, t.ManagerName,
			t.Position, t.Round, t.BaseValue, t.FinalPrice, t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting transfer for %q: %w", t.PlayerName, err)
		}
		t.ID, _ = res.LastInsertId()
	}

	// Merge newly learned associations into the league document. Only teams
	// the league actually knows get an assignment.
	for team, manager := range result.ManagersByTeam {
		if _, err := tx.Exec(
			`UPDATE teams SET manager_name = ? WHERE league_id = ? AND name = ? AND manager_name = ''`,
			manager, leagueID, team,
		); err != nil {
			return nil, fmt.Errorf("merging manager for team %q: %w", team, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transfer import: %w", err)
	}

	s.InvalidateLeagueCache(leagueID)
	logger.L.Info("Transfers imported", "leagueID", leagueID, "count", len(result.Transfers))
	return &result, nil
}

func (s *leagueServiceImpl) GetTransfers(leagueID string) ([]models.Transfer, error) {
	if leagueID == "" {
		return nil, ErrLeagueIDRequired
	}
	rows, err := database.DB.Query(
		`SELECT id, league_id, player_name, transaction_type, manager_team, manager_name, position, round, base_value, final_price, created_at
		 FROM transfers WHERE league_id = ? ORDER BY created_at ASC, id ASC`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("loading transfers for league %s: %w", leagueID, err)
	}
	defer rows.Close()

	transfers := []models.Transfer{}
	for rows.Next() {
		var t models.Transfer
		if err := rows.Scan(&t.ID, &t.LeagueID, &t.PlayerName, &t.TransactionType, &t.ManagerTeam,
			&t.ManagerName, &t.Position, &t.Round, &t.BaseValue, &t.FinalPrice, &t.CreatedAt); err != nil {
			logger.L.Error("Row scan error", "error", err)
			continue
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}

func (s *leagueServiceImpl) GetLeagueReport(leagueID string) (*models.LeagueReport, error) {
	if leagueID == "" {
		return nil, ErrLeagueIDRequired
	}
	cacheKey := fmt.Sprintf(ckLeagueReport, leagueID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*models.LeagueReport), nil
	}

	data, err := s.GetLeagueData(leagueID)
	if err != nil {
		return nil, err
	}
	transfers, err := s.GetTransfers(leagueID)
	if err != nil {
		return nil, err
	}

	report := s.statsProcessor.Calculate(transfers, *data)
	s.reportCache.Set(cacheKey, &report, DefaultCacheExpiration)
	return &report, nil
}

func (s *leagueServiceImpl) GetManagerReport(leagueID, managerName string) (*models.ManagerReport, error) {
	report, err := s.GetLeagueReport(leagueID)
	if err != nil {
		return nil, err
	}
	details := s.statsProcessor.ManagerDetails(managerName, report.ManagerList)
	if details == nil {
		return nil, ErrManagerNotFound
	}
	return details, nil
}

func (s *leagueServiceImpl) RecommendSales(leagueID, squadText string) ([]models.RecommendedPlayer, error) {
	if leagueID == "" {
		return nil, ErrLeagueIDRequired
	}
	squad := market.ParseSquad(validation.CleanPastedText(squadText))
	if len(squad) == 0 {
		return []models.RecommendedPlayer{}, nil
	}
	transfers, err := s.GetTransfers(leagueID)
	if err != nil {
		return nil, err
	}
	return s.recommendationProcessor.Recommend(squad, transfers, time.Now()), nil
}

func (s *leagueServiceImpl) InvalidateLeagueCache(leagueID string) {
	s.reportCache.Delete(fmt.Sprintf(ckLeagueReport, leagueID))
}

func knownTeamNames(data *models.LeagueData) []string {
	names := make([]string, 0, len(data.Teams))
	for _, t := range data.Teams {
		names = append(names, t.Name)
	}
	return names
}
