// backend/src/parsers/market/template.go
package market

import (
	"regexp"
	"strings"

	"github.com/username/osmtracker/backend/src/models"
)

var (
	// Trailing shape of a roster line: position/round number, squad value,
	// per-round income. The prefix before it is the team name part.
	templateTailRegex = regexp.MustCompile(`^(.*?)\s+\d+\s+([\d,.]+[MKmk])\s+([\d,.]+[MKmk])$`)

	battleTeamRegex = regexp.MustCompile(`^Team (Blue|Red) \d+$`)
)

// ParseTemplate converts a pasted league roster into team records and
// classifies the league. Roster exports duplicate the team name when no
// alias is set ("FC Alpha FC Alpha 1 50.0M 10.0M"); otherwise the final word
// of the name part is the alias. Lines that do not match the trailing
// pattern are skipped.
//
// The duplicated name is detected by splitting the name part into words and
// comparing halves rather than with a backreference, which Go's regexp does
// not support.
func ParseTemplate(text string) models.TemplateResult {
	result := models.TemplateResult{Teams: []models.Team{}, Type: models.LeagueTypeStandard}

	for _, line := range splitLines(text) {
		m := templateTailRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		initialValue, ok := parseValueOrSkip(m[2])
		if !ok {
			continue
		}
		fixedIncome, ok := parseValueOrSkip(m[3])
		if !ok {
			continue
		}

		name, alias := splitNameAlias(m[1])
		if name == "" {
			continue
		}

		result.Teams = append(result.Teams, models.Team{
			Name:                name,
			Alias:               alias,
			InitialValue:        initialValue,
			FixedIncomePerRound: fixedIncome,
			// Cash baselines are set when managers are assigned, not here.
			InitialCash: 0,
		})

		if battleTeamRegex.MatchString(name) {
			result.Type = models.LeagueTypeBattle
		}
	}

	return result
}

// splitNameAlias resolves the name part of a roster line. A name repeated
// verbatim ("Team Name Team Name") collapses to a single name with the alias
// equal to it; otherwise the last word is the alias and the rest the name.
func splitNameAlias(namePart string) (string, string) {
	words := strings.Fields(namePart)
	switch {
	case len(words) == 0:
		return "", ""
	case len(words) == 1:
		return words[0], words[0]
	}

	if len(words)%2 == 0 {
		half := len(words) / 2
		first := strings.Join(words[:half], " ")
		second := strings.Join(words[half:], " ")
		if first == second {
			return first, first
		}
	}

	name := strings.Join(words[:len(words)-1], " ")
	return name, words[len(words)-1]
}

// splitLines trims and drops empty lines from pasted text.
func splitLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		line := strings.TrimSpace(raw)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
