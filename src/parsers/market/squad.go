// backend/src/parsers/market/squad.go
package market

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/username/osmtracker/backend/src/models"
)

// Position groups used while walking a squad export. The export lists
// players under "Forwards" / "Midfielders" / "Defenders" / "Goalkeepers"
// section headers.
const (
	groupForward    = "Forward"
	groupMidfielder = "Midfielder"
	groupDefender   = "Defender"
	groupGoalkeeper = "Goalkeeper"
)

var (
	// Stat line: position code followed by attack, defense and overall.
	squadStatsRegex = regexp.MustCompile(`^([A-Z]{2,3})\s+.*?\s+(\d{1,3})\s+(\d{1,3})\s+(\d{1,3})\s*$`)

	// Trailing market value on the line after the stats.
	squadValueRegex = regexp.MustCompile(`([\d,.]+[MKmk])\s*$`)

	shirtNumberRegex   = regexp.MustCompile(`^\d{1,2}$`)
	sectionHeaderRegex = regexp.MustCompile(`(?i)^(Forwards|Midfielders|Defenders|Goalkeepers)`)
)

// ParseSquad extracts players from a pasted squad export. The relevant
// rating depends on the current section: attack for forwards, defense for
// defenders and goalkeepers, overall for midfielders. The player name sits
// on the line above the stats, or two above when a shirt number is in
// between; the market value sits on the line below. Entries missing a name
// or value are dropped.
func ParseSquad(text string) []models.Player {
	players := []models.Player{}
	lines := make([]string, 0)
	for _, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		lines = append(lines, strings.TrimSpace(raw))
	}

	currentGroup := groupMidfielder

	for i, line := range lines {
		switch {
		case strings.HasPrefix(strings.ToLower(line), "forwards"):
			currentGroup = groupForward
			continue
		case strings.HasPrefix(strings.ToLower(line), "midfielders"):
			currentGroup = groupMidfielder
			continue
		case strings.HasPrefix(strings.ToLower(line), "defenders"):
			currentGroup = groupDefender
			continue
		case strings.HasPrefix(strings.ToLower(line), "goalkeepers"):
			currentGroup = groupGoalkeeper
			continue
		}

		m := squadStatsRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		pos := m[1]
		att, _ := strconv.Atoi(m[2])
		def, _ := strconv.Atoi(m[3])
		ovr, _ := strconv.Atoi(m[4])

		var finalOvr int
		switch currentGroup {
		case groupForward:
			finalOvr = att
		case groupDefender, groupGoalkeeper:
			finalOvr = def
		default:
			finalOvr = ovr
		}

		if i == 0 {
			continue
		}
		name := lines[i-1]
		if shirtNumberRegex.MatchString(name) && i > 1 {
			name = lines[i-2]
		}
		if name == "" || sectionHeaderRegex.MatchString(name) {
			continue
		}

		if i+1 >= len(lines) {
			continue
		}
		valueMatch := squadValueRegex.FindStringSubmatch(lines[i+1])
		if valueMatch == nil {
			continue
		}
		value, ok := parseValueOrSkip(valueMatch[1])
		if !ok {
			continue
		}

		players = append(players, models.Player{Name: name, Pos: pos, Ovr: finalOvr, Value: value})
	}

	return players
}
