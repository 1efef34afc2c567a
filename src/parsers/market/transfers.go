// backend/src/parsers/market/transfers.go
package market

import (
	"regexp"
	"strconv"

	"github.com/username/osmtracker/backend/src/models"
)

// detailsRegex terminates a transfer block: position code, round number,
// base value and final price as trailing tokens.
var detailsRegex = regexp.MustCompile(`(?i)^([A-Z]{1,4})\s+(\d+)\s+([\d,.]+[MK])\s+([\d,.]+[MK]).*$`)

// ParseTransfers reconstructs transfer records from pasted market text.
//
// Lines are grouped into blocks, each ending at a details line. A 4-line
// block is unambiguous: player, team, manager, details — always a purchase
// from the neutral transfer list. A 5-line block has two possible readings:
// lines 1/2 as the (team, manager) pair of a sale, or lines 2/3 as the pair
// of a purchase. Resolution order:
//
//  1. When knownTeams is supplied: whichever candidate team line names a
//     known league team decides the reading. Neither matching drops the
//     block.
//  2. A (team, manager) pair already confirmed earlier in the batch decides
//     immediately.
//  3. Pair-frequency voting: the pair that recurs across the batch is taken
//     to be the user's own league side, the varying one the counterparty.
//  4. On equal frequencies the shorter of the two candidate manager lines
//     wins that slot; managers' personal names trend shorter than team
//     names.
//
// Every confirmed transfer feeds the team -> manager memory, so parsing is
// order-sensitive within the batch. The memory is local to this call.
// Undecidable or malformed blocks are dropped, never reported as errors.
func ParseTransfers(text string, knownTeams []string) models.TransferParseResult {
	result := models.TransferParseResult{
		Transfers:      []models.Transfer{},
		ManagersByTeam: map[string]string{},
	}

	blocks := segmentBlocks(splitLines(text))

	known := make(map[string]bool, len(knownTeams))
	for _, t := range knownTeams {
		known[t] = true
	}

	// Pair frequencies across all ambiguous blocks of the batch.
	freqSale := map[[2]string]int{}
	freqPurchase := map[[2]string]int{}
	for _, b := range blocks {
		if len(b) == 5 {
			freqSale[[2]string{b[1], b[2]}]++
			freqPurchase[[2]string{b[2], b[3]}]++
		}
	}

	for _, block := range blocks {
		details := detailsRegex.FindStringSubmatch(block[len(block)-1])
		if details == nil {
			continue
		}
		position := details[1]
		round, _ := strconv.Atoi(details[2])
		baseValue, okBase := parseValueOrSkip(details[3])
		finalPrice, okFinal := parseValueOrSkip(details[4])
		if !okBase || !okFinal {
			continue
		}

		var playerName, transactionType, managerTeam, managerName string

		switch len(block) {
		case 4:
			// Purchase from the transferable list: no selling side present.
			playerName = block[0]
			managerTeam = block[1]
			managerName = block[2]
			transactionType = models.TransactionPurchase

		case 5:
			playerName = block[0]
			transactionType, managerTeam, managerName = classifyAmbiguous(
				block, known, result.ManagersByTeam, freqSale, freqPurchase)
		}

		if transactionType == "" {
			continue
		}

		result.Transfers = append(result.Transfers, models.Transfer{
			PlayerName:      playerName,
			TransactionType: transactionType,
			ManagerTeam:     managerTeam,
			ManagerName:     managerName,
			Position:        position,
			Round:           round,
			BaseValue:       baseValue,
			FinalPrice:      finalPrice,
		})
		result.ManagersByTeam[managerTeam] = managerName
	}

	return result
}

// classifyAmbiguous resolves a 5-line block into a sale or purchase reading.
// Returns an empty transaction type when no decision can be made.
func classifyAmbiguous(
	block []string,
	known map[string]bool,
	managersByTeam map[string]string,
	freqSale, freqPurchase map[[2]string]int,
) (transactionType, managerTeam, managerName string) {
	saleTeam, saleManager := block[1], block[2]
	purchaseTeam, purchaseManager := block[2], block[3]

	if len(known) > 0 {
		switch {
		case known[saleTeam]:
			return models.TransactionSale, saleTeam, saleManager
		case known[purchaseTeam]:
			return models.TransactionPurchase, purchaseTeam, purchaseManager
		}
		return "", "", ""
	}

	// Associations confirmed earlier in this batch decide immediately.
	if managersByTeam[saleTeam] == saleManager && saleManager != "" {
		return models.TransactionSale, saleTeam, saleManager
	}
	if managersByTeam[purchaseTeam] == purchaseManager && purchaseManager != "" {
		return models.TransactionPurchase, purchaseTeam, purchaseManager
	}

	fSale := freqSale[[2]string{saleTeam, saleManager}]
	fPurchase := freqPurchase[[2]string{purchaseTeam, purchaseManager}]

	switch {
	case fSale > fPurchase:
		return models.TransactionSale, saleTeam, saleManager
	case fPurchase > fSale:
		return models.TransactionPurchase, purchaseTeam, purchaseManager
	}

	// First appearance on both sides: the shorter line is more likely a
	// manager's personal name.
	if len(block[2]) < len(block[3]) {
		return models.TransactionSale, saleTeam, saleManager
	}
	return models.TransactionPurchase, purchaseTeam, purchaseManager
}

// segmentBlocks groups lines into consecutive blocks, each closed by a
// details line. Trailing lines with no terminator are discarded.
func segmentBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range lines {
		current = append(current, line)
		if detailsRegex.MatchString(line) {
			blocks = append(blocks, current)
			current = nil
		}
	}
	return blocks
}
