package economy

import (
	"context"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/adapters/metrics"
	"github.com/ShakaofCarthage/empire-engine/internal/application/common"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// commanderDesertionChance is the percent chance an unpaid commander leaves
const commanderDesertionChance = 50

// CommanderMaintenance pays commander salaries and heals sick commanders
type CommanderMaintenance struct {
	deps *Dependencies
}

// NewCommanderMaintenance creates the commander upkeep phase
func NewCommanderMaintenance(deps *Dependencies) *CommanderMaintenance {
	return &CommanderMaintenance{deps: deps}
}

func (m *CommanderMaintenance) Name() string { return "commander_maintenance" }

func (m *CommanderMaintenance) Run(ctx context.Context, turn *Turn) error {
	logger := common.LoggerFromContext(ctx)
	rep := newReporter(m.deps, turn)

	all, err := m.deps.Commanders.FindAlive(ctx, turn.Game.ID)
	if err != nil {
		return fmt.Errorf("load commanders: %w", err)
	}
	var commanders []*military.Commander
	for _, c := range all {
		if n, ok := turn.Nations[c.Nation]; ok && n.Alive {
			commanders = append(commanders, c)
		}
	}
	commanders = payOrder(commanders,
		func(c *military.Commander) int { return c.ID },
		func(c *military.Commander) shared.Position { return c.Position },
		turn.TradeCities, turn.Random)

	stats := make(tally)
	for _, c := range commanders {
		if c.Recover() {
			logger.Log(common.LevelDebug, "commander recovered", map[string]interface{}{"commander": c.ID})
		}

		salary := turn.Rules.Salary(c.Rank) * turn.Game.CostModifier()
		if pay(turn, c.Nation, salary) {
			c.Unpaid = false
			stats.add(c.Nation, report.KeyCommanderSalaries, salary)
		} else {
			stats.add(c.Nation, report.KeyCommanderUnpaid, 1)
			if shared.Chance(turn.Random, commanderDesertionChance) {
				c.Desert()
				stats.add(c.Nation, report.KeyCommanderDeserted, 1)
				text := fmt.Sprintf("Commander %s left our service over unpaid salary.", c.Name)
				if err := rep.announce(ctx, c.Nation, c.Nation, report.NewsMilitary, false, text); err != nil {
					return err
				}
			} else {
				c.Unpaid = true
			}
		}

		if err := m.deps.Commanders.Update(ctx, c); err != nil {
			return fmt.Errorf("update commander %d: %w", c.ID, err)
		}
	}

	for _, n := range turn.AliveNations() {
		metrics.RecordAttrition("commanders", n.ID.String(), stats.get(n.ID, report.KeyCommanderDeserted))
	}
	return stats.flush(ctx, rep, turn,
		report.KeyCommanderSalaries,
		report.KeyCommanderUnpaid,
		report.KeyCommanderDeserted,
	)
}
