package orders

import (
	"context"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/application/common"
	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/application/mediator"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/events"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/profile"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/trade"
)

// Transfer failure codes
const (
	transferNoSource     = -1
	transferNotOurs      = -2
	transferNoTarget     = -3
	transferApart        = -4
	transferNotTraded    = -5
	transferNoMoney      = -6
	transferNothing      = -7
	transferNoRoom       = -8
	transferCityToCity   = -9
	transferSameEndpoint = -10
	transferForeignBuyer = -11
	transferTooMuch      = -12
)

// TransferHandler moves goods between warehouses, ships and baggage trains,
// and buys or sells goods at trade cities. Requests larger than what is
// stored or what fits are clamped rather than refused.
type TransferHandler struct {
	deps   *economy.Dependencies
	batch  *Batch
	pricer *trade.Pricer
}

// NewTransferHandler creates a transfer handler serving both transfer phases
func NewTransferHandler(deps *economy.Dependencies, batch *Batch) *TransferHandler {
	return &TransferHandler{deps: deps, batch: batch, pricer: trade.NewPricer(batch.Turn.Rules)}
}

// Handle executes a first or second phase transfer command
func (h *TransferHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	var (
		o   *order.Order
		cmd order.TransferCommand
	)
	switch env := request.(type) {
	case *Envelope[*order.TransferFirstCommand]:
		o, cmd = env.Order, env.Command.TransferCommand
	case *Envelope[*order.TransferSecondCommand]:
		o, cmd = env.Order, env.Command.TransferCommand
	default:
		return nil, fmt.Errorf("invalid request type %T", request)
	}
	return h.transfer(ctx, o, cmd)
}

func (h *TransferHandler) transfer(ctx context.Context, o *order.Order, cmd order.TransferCommand) (*order.Outcome, error) {
	turn := h.batch.Turn
	good := goods.Good(cmd.Good)
	if !good.IsValid() {
		return order.Failure(transferNotTraded, fmt.Sprintf("Good %d does not exist.", cmd.Good)), nil
	}
	if cmd.Quantity <= 0 {
		return order.Failure(transferNothing, "A transfer needs a positive quantity."), nil
	}
	if cmd.Quantity > order.MaxQuantity {
		return order.Failure(transferTooMuch, fmt.Sprintf("A transfer moves at most %d units.", order.MaxQuantity)), nil
	}

	source, err := resolveEndpoint(ctx, h.deps, turn, cmd.SourceKind, cmd.SourceID, o.Nation)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return order.Failure(transferNoSource, "The source of the transfer does not exist."), nil
	}

	targetNation := o.Nation
	if cmd.TargetNation != 0 {
		targetNation = shared.NationID(cmd.TargetNation)
		if n, ok := turn.Nations[targetNation]; !ok || !n.Alive {
			return order.Failure(transferNoTarget, "The receiving nation is not in the game."), nil
		}
	}
	target, err := resolveEndpoint(ctx, h.deps, turn, cmd.TargetKind, cmd.TargetID, targetNation)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return order.Failure(transferNoTarget, "The target of the transfer does not exist."), nil
	}

	if source.kind() == order.EntityTradeCity && target.kind() == order.EntityTradeCity {
		return order.Failure(transferCityToCity, "Goods cannot move directly between trade cities."), nil
	}
	if source.kind() != order.EntityTradeCity && source.owner() != o.Nation {
		return order.Failure(transferNotOurs, fmt.Sprintf("%s does not belong to us.", source)), nil
	}
	if cmd.SourceKind == cmd.TargetKind && cmd.SourceID == cmd.TargetID && targetNation == o.Nation {
		return order.Failure(transferSameEndpoint, "Source and target are the same."), nil
	}
	if !colocated(source, target) {
		return order.Failure(transferApart, fmt.Sprintf("%s and %s are not at the same place.", source, target)), nil
	}

	switch {
	case source.kind() == order.EntityTradeCity:
		if target.owner() != o.Nation {
			return order.Failure(transferForeignBuyer, "Bought goods must be delivered to our own warehouse or units."), nil
		}
		return h.buy(ctx, o, source.(*cityEnd).city, target, good, cmd.Quantity)
	case target.kind() == order.EntityTradeCity:
		return h.sell(ctx, o, source, target.(*cityEnd).city, good, cmd.Quantity)
	default:
		return h.move(ctx, o, source, target, good, cmd.Quantity)
	}
}

// move hands goods from one of our endpoints to another endpoint. Goods sent
// to another nation lose the relation fee on the way.
func (h *TransferHandler) move(ctx context.Context, o *order.Order, source, target endpoint, g goods.Good, qty int) (*order.Outcome, error) {
	qty = min(qty, source.available(g))
	if qty <= 0 {
		return order.Failure(transferNothing, fmt.Sprintf("There is no %s in %s.", g, source)), nil
	}
	if room := target.room(); room != unlimited {
		qty = min(qty, room)
		if qty <= 0 {
			return order.Failure(transferNoRoom, fmt.Sprintf("%s has no room left.", target)), nil
		}
	}

	delivered := qty
	if target.owner() != o.Nation {
		rate, err := h.feeRate(ctx, o.Nation, target.owner())
		if err != nil {
			return nil, err
		}
		delivered -= trade.Fee(qty, rate)
	}
	if !trade.Fits(target.available(g), delivered) {
		return order.Failure(transferNoRoom, fmt.Sprintf("%s has no room left.", target)), nil
	}

	source.take(g, qty)
	target.put(g, delivered)
	if err := source.save(ctx); err != nil {
		return nil, err
	}
	if err := target.save(ctx); err != nil {
		return nil, err
	}

	if target.owner() != o.Nation {
		text := fmt.Sprintf("%s sent us %d %s.", o.Nation, delivered, g)
		if err := economy.Announce(ctx, h.deps, h.batch.Turn, target.owner(), o.Nation, report.NewsTrade, false, text); err != nil {
			return nil, err
		}
	}
	return order.Success(qty, fmt.Sprintf("Moved %d %s from %s to %s, %d arrived.", qty, g, source, target, delivered),
		map[goods.Good]int{g: qty}), nil
}

// buy purchases goods at a trade city, paying price and fee from Europe money
func (h *TransferHandler) buy(ctx context.Context, o *order.Order, city *trade.City, target endpoint, g goods.Good, qty int) (*order.Outcome, error) {
	turn := h.batch.Turn
	if !h.pricer.Tradable(g) {
		return order.Failure(transferNotTraded, fmt.Sprintf("%s does not trade %s.", city.Name, g)), nil
	}
	if room := target.room(); room != unlimited {
		qty = min(qty, room)
		if qty <= 0 {
			return order.Failure(transferNoRoom, fmt.Sprintf("%s has no room left.", target)), nil
		}
	}

	if !trade.Fits(target.available(g), qty) {
		return order.Failure(transferNoRoom, fmt.Sprintf("%s has no room left.", target)), nil
	}

	cost, ok := h.pricer.BuyCost(city, g, qty, h.modifiers(city, o.Nation))
	if !ok {
		return order.Failure(transferTooMuch, fmt.Sprintf("%d %s cost more than any treasury holds.", qty, g)), nil
	}
	rate, err := h.cityFeeRate(ctx, city, o.Nation)
	if err != nil {
		return nil, err
	}
	fee := trade.Fee(cost, rate)
	if !trade.Fits(cost, fee) || !trade.Fits(turn.Ledger.Get(city.Owner, shared.RegionEurope, goods.GoodMoney), fee) {
		return order.Failure(transferTooMuch, fmt.Sprintf("%d %s cost more than any treasury holds.", qty, g)), nil
	}
	total := cost + fee
	if !turn.Ledger.Has(o.Nation, shared.RegionEurope, goods.GoodMoney, total) {
		return order.Failure(transferNoMoney, fmt.Sprintf("Buying %d %s costs %d, more than we have.", qty, g, total)), nil
	}

	turn.Ledger.Dec(o.Nation, shared.RegionEurope, goods.GoodMoney, total)
	if fee > 0 {
		turn.Ledger.Inc(city.Owner, shared.RegionEurope, goods.GoodMoney, fee)
	}
	target.put(g, qty)
	if err := target.save(ctx); err != nil {
		return nil, err
	}
	if err := h.recordTrade(ctx, city, o.Nation, g, qty, cost); err != nil {
		return nil, err
	}
	return order.Success(qty, fmt.Sprintf("Bought %d %s at %s for %d (fee %d).", qty, g, city.Name, cost, fee),
		map[goods.Good]int{goods.GoodMoney: total, g: qty}), nil
}

// sell sells what the source holds, up to qty, at a trade city
func (h *TransferHandler) sell(ctx context.Context, o *order.Order, source endpoint, city *trade.City, g goods.Good, qty int) (*order.Outcome, error) {
	turn := h.batch.Turn
	if !h.pricer.Tradable(g) {
		return order.Failure(transferNotTraded, fmt.Sprintf("%s does not trade %s.", city.Name, g)), nil
	}
	qty = min(qty, source.available(g))
	if qty <= 0 {
		return order.Failure(transferNothing, fmt.Sprintf("There is no %s in %s.", g, source)), nil
	}

	proceeds, ok := h.pricer.SellProceeds(city, g, qty, h.modifiers(city, o.Nation))
	if !ok {
		return order.Failure(transferTooMuch, fmt.Sprintf("%s cannot pay for %d %s.", city.Name, qty, g)), nil
	}
	rate, err := h.cityFeeRate(ctx, city, o.Nation)
	if err != nil {
		return nil, err
	}
	fee := trade.Fee(proceeds, rate)
	if !trade.Fits(turn.Ledger.Get(o.Nation, shared.RegionEurope, goods.GoodMoney), proceeds-fee) ||
		!trade.Fits(turn.Ledger.Get(city.Owner, shared.RegionEurope, goods.GoodMoney), fee) {
		return order.Failure(transferTooMuch, fmt.Sprintf("%s cannot pay for %d %s.", city.Name, qty, g)), nil
	}

	source.take(g, qty)
	if err := source.save(ctx); err != nil {
		return nil, err
	}
	turn.Ledger.Inc(o.Nation, shared.RegionEurope, goods.GoodMoney, proceeds-fee)
	if fee > 0 {
		turn.Ledger.Inc(city.Owner, shared.RegionEurope, goods.GoodMoney, fee)
	}
	if err := h.recordTrade(ctx, city, o.Nation, g, qty, proceeds); err != nil {
		return nil, err
	}
	return order.Success(qty, fmt.Sprintf("Sold %d %s at %s for %d (fee %d).", qty, g, city.Name, proceeds, fee),
		map[goods.Good]int{g: qty, goods.GoodMoney: proceeds - fee}), nil
}

func (h *TransferHandler) modifiers(city *trade.City, n shared.NationID) trade.Modifiers {
	turn := h.batch.Turn
	return trade.Modifiers{
		Trader:       n,
		FirstTrader:  h.batch.State.IsFirstTrader(city.ID, n),
		TradeDeficit: turn.Events.Active(events.TradeDeficit, n),
		TradeSurplus: turn.Events.Active(events.TradeSurplus, n),
	}
}

// cityFeeRate is the fee the city owner charges the trader. Neutral cities
// and the owner's own trades are free.
func (h *TransferHandler) cityFeeRate(ctx context.Context, city *trade.City, trader shared.NationID) (int, error) {
	if city.Owner == shared.NationNeutral || city.Owner == trader {
		return 0, nil
	}
	return h.feeRate(ctx, city.Owner, trader)
}

func (h *TransferHandler) feeRate(ctx context.Context, from, to shared.NationID) (int, error) {
	rel, err := h.deps.Relations.Relation(ctx, h.batch.Turn.Game.ID, from, to)
	if err != nil {
		return 0, fmt.Errorf("load relation: %w", err)
	}
	return rel.FeePerMille(), nil
}

func (h *TransferHandler) recordTrade(ctx context.Context, city *trade.City, n shared.NationID, g goods.Good, qty, value int) error {
	h.batch.State.ClaimTrade(city.ID, n)
	common.LoggerFromContext(ctx).Log(common.LevelDebug, "trade", map[string]interface{}{
		"city":   city.ID,
		"nation": n,
		"good":   g.String(),
		"qty":    qty,
		"value":  value,
	})
	if h.deps.Profiles == nil {
		return nil
	}
	userID := 0
	if trader, ok := h.batch.Turn.Nations[n]; ok {
		userID = trader.UserID
	}
	return h.deps.Profiles.Add(ctx, h.batch.Turn.Game.ID, n, userID, profile.KeyTradeVolume, value)
}
