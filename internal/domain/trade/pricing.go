// Package trade prices goods at trade cities and computes relation based fees.
package trade

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/rules"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

var (
	firstTraderBuy  = decimal.RequireFromString("0.95")
	firstTraderSell = decimal.RequireFromString("1.05")
	deficitBuy      = decimal.RequireFromString("1.1")
	surplusSell     = decimal.RequireFromString("1.1")
	hollandBuy      = decimal.RequireFromString("0.95")
	hollandSell     = decimal.RequireFromString("1.05")
	egyptSell       = decimal.RequireFromString("1.1")
	perMille        = decimal.NewFromInt(1000)
	maxAmount       = decimal.NewFromInt(int64(math.MaxInt))
)

// Modifiers are the turn conditions that change a trader's price
type Modifiers struct {
	Trader       shared.NationID
	FirstTrader  bool
	TradeDeficit bool
	TradeSurplus bool
}

// Pricer computes buy and sell totals from the balance catalog
type Pricer struct {
	rules *rules.Rules
}

// NewPricer creates a Pricer
func NewPricer(r *rules.Rules) *Pricer {
	return &Pricer{rules: r}
}

// Tradable reports whether the city quotes a price for the good
func (p *Pricer) Tradable(g goods.Good) bool {
	return g.IsTradable() && p.rules.BasePrice(g) > 0
}

// BuyCost is the money a nation pays for qty units, rounded up. It is false
// when the total does not fit an int.
func (p *Pricer) BuyCost(city *City, g goods.Good, qty int, mods Modifiers) (int, bool) {
	factor := decimal.NewFromFloat(p.rules.TradeLevels.Buy[city.Level(g)-1])
	unit := decimal.NewFromInt(int64(p.rules.BasePrice(g))).Mul(factor)
	if mods.FirstTrader {
		unit = unit.Mul(firstTraderBuy)
	}
	if mods.TradeDeficit {
		unit = unit.Mul(deficitBuy)
	}
	if mods.Trader == shared.NationHolland {
		unit = unit.Mul(hollandBuy)
	}
	return amount(unit.Mul(decimal.NewFromInt(int64(qty))).Ceil())
}

// SellProceeds is the money a nation receives for qty units, rounded down.
// It is false when the total does not fit an int.
func (p *Pricer) SellProceeds(city *City, g goods.Good, qty int, mods Modifiers) (int, bool) {
	factor := decimal.NewFromFloat(p.rules.TradeLevels.Sell[city.Level(g)-1])
	unit := decimal.NewFromInt(int64(p.rules.BasePrice(g))).Mul(factor)
	if mods.FirstTrader {
		unit = unit.Mul(firstTraderSell)
	}
	if mods.TradeSurplus {
		unit = unit.Mul(surplusSell)
	}
	switch mods.Trader {
	case shared.NationHolland:
		unit = unit.Mul(hollandSell)
	case shared.NationEgypt:
		if g == goods.GoodFood || g == goods.GoodColonial {
			unit = unit.Mul(egyptSell)
		}
	}
	return amount(unit.Mul(decimal.NewFromInt(int64(qty))).Floor())
}

func amount(d decimal.Decimal) (int, bool) {
	if d.IsNegative() || d.GreaterThan(maxAmount) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// Fits reports whether adding delta to a stock of current stays inside int
func Fits(current, delta int) bool {
	return delta <= 0 || current <= math.MaxInt-delta
}

// Fee is the share of amount charged at the given per-mille rate, rounded down.
func Fee(amount, feePerMille int) int {
	if amount <= 0 || feePerMille <= 0 {
		return 0
	}
	if feePerMille >= 1000 {
		return amount
	}
	fee := decimal.NewFromInt(int64(amount)).
		Mul(decimal.NewFromInt(int64(feePerMille))).
		Div(perMille).
		Floor()
	return int(fee.IntPart())
}
