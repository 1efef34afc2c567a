// backend/src/processors/cashflow_processor.go
package processors

import (
	"github.com/username/osmtracker/backend/src/models"
)

// Simulation granularities. The round model applies interest and income once
// per transfer round and is the canonical engine; the day model replays a
// calendar of preseason days plus one day per round, accruing daily.
const (
	GranularityRound = "round"
	GranularityDay   = "day"
)

// SimulationOptions tunes the cash-flow replay. The zero value is not
// usable; start from DefaultSimulationOptions.
type SimulationOptions struct {
	Granularity     string
	InterestRate    float64
	PreseasonRounds int

	// SettleBeforeInterest switches the in-round step order from
	// interest -> income -> settlement to income -> settlement -> interest.
	SettleBeforeInterest bool

	// VariableIncome adds VariableIncomeFactor x fixed income on top of the
	// fixed income each accrual step.
	VariableIncome       bool
	VariableIncomeFactor float64

	// StartingCashFourRounds seeds each manager with four rounds of fixed
	// income instead of the team's stored initial cash.
	StartingCashFourRounds bool

	// ClampNegativeCash floors cash at zero before each snapshot.
	ClampNegativeCash bool
}

// DefaultSimulationOptions returns the canonical round-level configuration:
// 2% interest per round, interest before income before settlement, stored
// initial cash, no clamping.
func DefaultSimulationOptions() SimulationOptions {
	return SimulationOptions{
		Granularity:          GranularityRound,
		InterestRate:         0.02,
		PreseasonRounds:      3,
		VariableIncomeFactor: 0.7,
	}
}

// ManagerCashFlow is the simulated history of one manager: the final cash
// position and a snapshot after every processed round (or day).
type ManagerCashFlow struct {
	Name      string
	TeamName  string
	FinalCash float64
	CashFlow  []models.CashSnapshot
}

// CashFlowProcessor replays the transfer log against each manager's cash.
// It holds no state across calls: every Simulate builds its manager states
// from scratch and discards them, so identical inputs give identical output.
type CashFlowProcessor struct {
	opts SimulationOptions
}

func NewCashFlowProcessor(opts SimulationOptions) *CashFlowProcessor {
	return &CashFlowProcessor{opts: opts}
}

// Simulate runs the cash-flow replay for every assigned manager of the
// league, in team order. Transfers naming a manager that has no team
// assignment contribute nothing.
func (p *CashFlowProcessor) Simulate(transfers []models.Transfer, league models.LeagueData) []ManagerCashFlow {
	totalRounds := 0
	for _, t := range transfers {
		if t.Round > totalRounds {
			totalRounds = t.Round
		}
	}

	var flows []ManagerCashFlow
	for _, team := range league.Teams {
		managerName := league.ManagersByTeam[team.Name]
		if managerName == "" {
			continue
		}

		var own []models.Transfer
		for _, t := range transfers {
			if t.ManagerName == managerName {
				own = append(own, t)
			}
		}

		flow := ManagerCashFlow{Name: managerName, TeamName: team.Name}
		if p.opts.Granularity == GranularityDay {
			flow.FinalCash, flow.CashFlow = p.simulateDays(team, own, totalRounds)
		} else {
			flow.FinalCash, flow.CashFlow = p.simulateRounds(team, own, totalRounds)
		}
		flows = append(flows, flow)
	}
	return flows
}

// simulateRounds is the canonical engine. Round 0 is the baseline: transfers
// already settled before the season accrue no interest or income. From round
// 1 onward each round applies interest (positive balances only), fixed
// income and that round's settlements in the configured order.
func (p *CashFlowProcessor) simulateRounds(team models.Team, own []models.Transfer, totalRounds int) (float64, []models.CashSnapshot) {
	cash := p.startingCash(team)
	snapshots := make([]models.CashSnapshot, 0, totalRounds+1)

	cash += settlementNet(own, 0)
	cash = p.clamp(cash)
	snapshots = append(snapshots, models.CashSnapshot{Round: 0, Cash: cash})

	for round := 1; round <= totalRounds; round++ {
		net := settlementNet(own, round)
		if p.opts.SettleBeforeInterest {
			cash += p.income(team)
			cash += net
			cash += p.interest(cash)
		} else {
			cash += p.interest(cash)
			cash += p.income(team)
			cash += net
		}
		cash = p.clamp(cash)
		snapshots = append(snapshots, models.CashSnapshot{Round: round, Cash: cash})
	}

	return cash, snapshots
}

// simulateDays replays a calendar: PreseasonRounds days of pure accrual
// followed by one day per game round. Each transfer settles exactly once, on
// the first day mapped to its round; round-0 transfers settle on day 1.
// Snapshots carry the day number.
func (p *CashFlowProcessor) simulateDays(team models.Team, own []models.Transfer, totalRounds int) (float64, []models.CashSnapshot) {
	cash := p.startingCash(team)
	totalDays := totalRounds + p.opts.PreseasonRounds
	snapshots := make([]models.CashSnapshot, 0, totalDays)
	settled := map[int]bool{}

	for day := 1; day <= totalDays; day++ {
		gameRound := 0
		if day > p.opts.PreseasonRounds {
			gameRound = day - p.opts.PreseasonRounds
		}

		net := 0.0
		if !settled[gameRound] {
			settled[gameRound] = true
			net = settlementNet(own, gameRound)
		}

		if p.opts.SettleBeforeInterest {
			cash += p.income(team)
			cash += net
			cash += p.interest(cash)
		} else {
			cash += p.interest(cash)
			cash += p.income(team)
			cash += net
		}
		cash = p.clamp(cash)
		snapshots = append(snapshots, models.CashSnapshot{Round: day, Cash: cash})
	}

	return cash, snapshots
}

func (p *CashFlowProcessor) startingCash(team models.Team) float64 {
	if p.opts.StartingCashFourRounds {
		return 4 * team.FixedIncomePerRound
	}
	return team.InitialCash
}

func (p *CashFlowProcessor) income(team models.Team) float64 {
	income := team.FixedIncomePerRound
	if p.opts.VariableIncome {
		income += team.FixedIncomePerRound * p.opts.VariableIncomeFactor
	}
	return income
}

// interest returns the accrual for one step. Negative or empty balances earn
// nothing.
func (p *CashFlowProcessor) interest(cash float64) float64 {
	if cash > 0 {
		return cash * p.opts.InterestRate
	}
	return 0
}

func (p *CashFlowProcessor) clamp(cash float64) float64 {
	if p.opts.ClampNegativeCash && cash < 0 {
		return 0
	}
	return cash
}

// settlementNet sums one round's transfer cash movement: sales add the final
// price, purchases subtract it.
func settlementNet(transfers []models.Transfer, round int) float64 {
	net := 0.0
	for _, t := range transfers {
		if t.Round != round {
			continue
		}
		if t.TransactionType == models.TransactionSale {
			net += t.FinalPrice
		} else {
			net -= t.FinalPrice
		}
	}
	return net
}
