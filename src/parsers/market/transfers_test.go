package market

import (
	"testing"

	"github.com/username/osmtracker/backend/src/models"
)

func TestParseTransfers_FourLineBlockIsPurchase(t *testing.T) {
	text := `Mbappe
FC Alpha
Bob
ST 1 10.0M 15.0M`
	result := ParseTransfers(text, nil)

	if len(result.Transfers) != 1 {
		t.Fatalf("got %d transfers, want 1", len(result.Transfers))
	}
	tr := result.Transfers[0]
	if tr.TransactionType != models.TransactionPurchase {
		t.Errorf("TransactionType = %q, want purchase", tr.TransactionType)
	}
	if tr.PlayerName != "Mbappe" || tr.ManagerTeam != "FC Alpha" || tr.ManagerName != "Bob" {
		t.Errorf("identity fields = %q/%q/%q", tr.PlayerName, tr.ManagerTeam, tr.ManagerName)
	}
	if tr.Position != "ST" || tr.Round != 1 {
		t.Errorf("position/round = %q/%d, want ST/1", tr.Position, tr.Round)
	}
	if tr.BaseValue != 10.0 || tr.FinalPrice != 15.0 {
		t.Errorf("base/final = %v/%v, want 10/15", tr.BaseValue, tr.FinalPrice)
	}
	if result.ManagersByTeam["FC Alpha"] != "Bob" {
		t.Errorf("ManagersByTeam[FC Alpha] = %q, want Bob", result.ManagersByTeam["FC Alpha"])
	}
}

func TestParseTransfers_KnownTeamResolvesSale(t *testing.T) {
	text := `Haaland
FC Alpha
Bob
Borussia
FW 2 20M 30M`
	result := ParseTransfers(text, []string{"FC Alpha"})

	if len(result.Transfers) != 1 {
		t.Fatalf("got %d transfers, want 1", len(result.Transfers))
	}
	tr := result.Transfers[0]
	if tr.TransactionType != models.TransactionSale {
		t.Errorf("TransactionType = %q, want sale", tr.TransactionType)
	}
	if tr.ManagerTeam != "FC Alpha" || tr.ManagerName != "Bob" {
		t.Errorf("team/manager = %q/%q, want FC Alpha/Bob", tr.ManagerTeam, tr.ManagerName)
	}
}

func TestParseTransfers_KnownTeamResolvesPurchase(t *testing.T) {
	text := `Haaland
Borussia
FC Alpha
Bob
ST 2 20M 30M`
	result := ParseTransfers(text, []string{"FC Alpha"})

	if len(result.Transfers) != 1 {
		t.Fatalf("got %d transfers, want 1", len(result.Transfers))
	}
	tr := result.Transfers[0]
	if tr.TransactionType != models.TransactionPurchase {
		t.Errorf("TransactionType = %q, want purchase", tr.TransactionType)
	}
	if tr.ManagerTeam != "FC Alpha" || tr.ManagerName != "Bob" {
		t.Errorf("team/manager = %q/%q, want FC Alpha/Bob", tr.ManagerTeam, tr.ManagerName)
	}
}

func TestParseTransfers_NoKnownTeamMatchDropsBlock(t *testing.T) {
	text := `Haaland
Borussia
Leipzig
Hans
ST 2 20M 30M`
	result := ParseTransfers(text, []string{"FC Alpha"})

	if len(result.Transfers) != 0 {
		t.Errorf("got %d transfers, want 0 when neither candidate team is known", len(result.Transfers))
	}
}

func TestParseTransfers_FrequencyVoting(t *testing.T) {
	// (United, Alex) appears in both blocks, the counterparties vary, so
	// both blocks read as sales by United.
	text := `Vinicius
United
Alex
Chelsea
ST 1 5M 8M
Rodrygo
United
Alex
Arsenal
CM 2 6M 9M`
	result := ParseTransfers(text, nil)

	if len(result.Transfers) != 2 {
		t.Fatalf("got %d transfers, want 2", len(result.Transfers))
	}
	for i, tr := range result.Transfers {
		if tr.TransactionType != models.TransactionSale {
			t.Errorf("transfer %d type = %q, want sale", i, tr.TransactionType)
		}
		if tr.ManagerTeam != "United" || tr.ManagerName != "Alex" {
			t.Errorf("transfer %d team/manager = %q/%q, want United/Alex", i, tr.ManagerTeam, tr.ManagerName)
		}
	}
}

func TestParseTransfers_LengthTieBreak(t *testing.T) {
	// Equal frequencies: the shorter middle line is taken as the manager
	// name, making the block a sale.
	saleText := `Foden
Galacticos
Bob
Longername
ST 1 5M 8M`
	result := ParseTransfers(saleText, nil)
	if len(result.Transfers) != 1 || result.Transfers[0].TransactionType != models.TransactionSale {
		t.Fatalf("want one sale, got %+v", result.Transfers)
	}

	purchaseText := `Foden
Whatever
VeryLongTeamName
Al
ST 1 5M 8M`
	result = ParseTransfers(purchaseText, nil)
	if len(result.Transfers) != 1 || result.Transfers[0].TransactionType != models.TransactionPurchase {
		t.Fatalf("want one purchase, got %+v", result.Transfers)
	}
	if result.Transfers[0].ManagerTeam != "VeryLongTeamName" || result.Transfers[0].ManagerName != "Al" {
		t.Errorf("team/manager = %q/%q", result.Transfers[0].ManagerTeam, result.Transfers[0].ManagerName)
	}
}

func TestParseTransfers_PairMemoryBeatsTieBreak(t *testing.T) {
	// The 4-line purchase confirms (United, Alex). The following ambiguous
	// block would tie-break as a purchase ("Bo" is shorter than "Alex"),
	// but the accumulated association wins first.
	text := `Saka
United
Alex
ST 1 5M 8M
Odegaard
United
Alex
Bo
CM 2 6M 9M`
	result := ParseTransfers(text, nil)

	if len(result.Transfers) != 2 {
		t.Fatalf("got %d transfers, want 2", len(result.Transfers))
	}
	second := result.Transfers[1]
	if second.TransactionType != models.TransactionSale {
		t.Errorf("second type = %q, want sale via remembered pair", second.TransactionType)
	}
	if second.ManagerTeam != "United" || second.ManagerName != "Alex" {
		t.Errorf("second team/manager = %q/%q, want United/Alex", second.ManagerTeam, second.ManagerName)
	}
}

func TestParseTransfers_TrailingLinesWithoutDetailsDiscarded(t *testing.T) {
	text := `Mbappe
FC Alpha
Bob
ST 1 10M 15M
Leftover
Lines`
	result := ParseTransfers(text, nil)
	if len(result.Transfers) != 1 {
		t.Errorf("got %d transfers, want 1", len(result.Transfers))
	}
}
