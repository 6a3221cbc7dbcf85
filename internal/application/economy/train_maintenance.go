package economy

import (
	"context"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/adapters/metrics"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// TrainMaintenance removes wrecked baggage trains and pays the rest
type TrainMaintenance struct {
	deps *Dependencies
}

// NewTrainMaintenance creates the baggage train upkeep phase
func NewTrainMaintenance(deps *Dependencies) *TrainMaintenance {
	return &TrainMaintenance{deps: deps}
}

func (m *TrainMaintenance) Name() string { return "train_maintenance" }

func (m *TrainMaintenance) Run(ctx context.Context, turn *Turn) error {
	rep := newReporter(m.deps, turn)

	all, err := m.deps.Trains.FindByGame(ctx, turn.Game.ID)
	if err != nil {
		return fmt.Errorf("load baggage trains: %w", err)
	}
	byID(all, func(t *military.BaggageTrain) int { return t.ID })

	stats := make(tally)
	var trains []*military.BaggageTrain
	for _, t := range all {
		if n, ok := turn.Nations[t.Nation]; !ok || !n.Alive {
			continue
		}
		if t.Condition < 0 {
			stats.add(t.Nation, report.KeyTrainLost, 1)
			if err := m.deps.Trains.Delete(ctx, t); err != nil {
				return fmt.Errorf("delete baggage train %d: %w", t.ID, err)
			}
			continue
		}
		trains = append(trains, t)
	}

	trains = payOrder(trains,
		func(t *military.BaggageTrain) int { return t.ID },
		func(t *military.BaggageTrain) shared.Position { return t.Position },
		turn.TradeCities, turn.Random)

	cost := turn.Rules.BaggageTrain.Maintenance
	for _, t := range trains {
		if pay(turn, t.Nation, cost) {
			stats.add(t.Nation, report.KeyTrainMaintenance, cost)
			continue
		}
		stats.add(t.Nation, report.KeyTrainLost, 1)
		text := fmt.Sprintf("Our baggage train %s was disbanded because we could not pay for its upkeep.", t.Name)
		if err := rep.announce(ctx, t.Nation, t.Nation, report.NewsMilitary, false, text); err != nil {
			return err
		}
		if err := m.deps.Trains.Delete(ctx, t); err != nil {
			return fmt.Errorf("delete baggage train %d: %w", t.ID, err)
		}
	}

	for _, n := range turn.AliveNations() {
		metrics.RecordAttrition("trains", n.ID.String(), stats.get(n.ID, report.KeyTrainLost))
	}
	return stats.flush(ctx, rep, turn, report.KeyTrainMaintenance, report.KeyTrainLost)
}
