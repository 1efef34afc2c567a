package market

import (
	"testing"

	"github.com/username/osmtracker/backend/src/models"
)

func TestParseTemplate_DuplicatedNameCollapses(t *testing.T) {
	result := ParseTemplate("FC Alpha FC Alpha 1 50.0M 10.0M")

	if len(result.Teams) != 1 {
		t.Fatalf("got %d teams, want 1", len(result.Teams))
	}
	team := result.Teams[0]
	if team.Name != "FC Alpha" || team.Alias != "FC Alpha" {
		t.Errorf("name/alias = %q/%q, want FC Alpha/FC Alpha", team.Name, team.Alias)
	}
	if team.InitialValue != 50.0 {
		t.Errorf("InitialValue = %v, want 50.0", team.InitialValue)
	}
	if team.FixedIncomePerRound != 10.0 {
		t.Errorf("FixedIncomePerRound = %v, want 10.0", team.FixedIncomePerRound)
	}
	if team.InitialCash != 0 {
		t.Errorf("InitialCash = %v, want 0 (baseline set at manager assignment)", team.InitialCash)
	}
}

func TestParseTemplate_TrailingWordIsAlias(t *testing.T) {
	result := ParseTemplate("FC Alpha Bob 1 50.0M 10.0M")

	if len(result.Teams) != 1 {
		t.Fatalf("got %d teams, want 1", len(result.Teams))
	}
	team := result.Teams[0]
	if team.Name != "FC Alpha" {
		t.Errorf("Name = %q, want FC Alpha", team.Name)
	}
	if team.Alias != "Bob" {
		t.Errorf("Alias = %q, want Bob", team.Alias)
	}
}

func TestParseTemplate_BattleLeagueDetection(t *testing.T) {
	text := `Team Blue 1 Team Blue 1 1 114.0M 5.0M
Team Red 1 Team Red 1 2 117.0M 5.0M`
	result := ParseTemplate(text)

	if len(result.Teams) != 2 {
		t.Fatalf("got %d teams, want 2", len(result.Teams))
	}
	if result.Teams[0].Name != "Team Blue 1" {
		t.Errorf("Name = %q, want Team Blue 1", result.Teams[0].Name)
	}
	if result.Type != models.LeagueTypeBattle {
		t.Errorf("Type = %q, want battle", result.Type)
	}
}

func TestParseTemplate_StandardLeague(t *testing.T) {
	result := ParseTemplate("Real Madrid Carlo 3 120.0M 8.5M")
	if result.Type != models.LeagueTypeStandard {
		t.Errorf("Type = %q, want standard", result.Type)
	}
}

func TestParseTemplate_SkipsUnmatchedLines(t *testing.T) {
	text := `Some header the site adds

FC Alpha FC Alpha 1 50.0M 10.0M
totally unrelated noise`
	result := ParseTemplate(text)

	if len(result.Teams) != 1 {
		t.Fatalf("got %d teams, want 1", len(result.Teams))
	}
}

func TestSplitNameAlias_SingleWord(t *testing.T) {
	name, alias := splitNameAlias("Arsenal")
	if name != "Arsenal" || alias != "Arsenal" {
		t.Errorf("got %q/%q, want Arsenal/Arsenal", name, alias)
	}
}
