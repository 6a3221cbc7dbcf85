package goods

import "github.com/ShakaofCarthage/empire-engine/internal/domain/shared"

const (
	nationDim = int(shared.NationLast) + 1
	regionDim = int(shared.RegionLast) + 1
	goodDim   = int(GoodLast) + 1
)

// Ledger is the in-memory nation × region × good table of warehouse
// quantities for one game, plus a shadow table of what was produced this turn.
//
// The primitives do not check bounds or signs: every caller decides with its
// own availability check before it decrements, so Dec may go negative if a
// caller skips that check. Withdraw is the clamping variant.
//
// A Ledger has a single writer. Phases and order handlers of one game run
// strictly one after another against the same instance; different games use
// different instances.
type Ledger struct {
	game          shared.GameID
	totGoods      [nationDim][regionDim][goodDim]int
	producedGoods [nationDim][regionDim][goodDim]int
}

// NewLedger creates an empty ledger for a game
func NewLedger(game shared.GameID) *Ledger {
	return &Ledger{game: game}
}

// Game returns the owning game id
func (l *Ledger) Game() shared.GameID {
	return l.game
}

// Get returns the current quantity of a cell
func (l *Ledger) Get(nation shared.NationID, region shared.RegionID, good Good) int {
	return l.totGoods[nation][region][good]
}

// Set overwrites the quantity of a cell
func (l *Ledger) Set(nation shared.NationID, region shared.RegionID, good Good, qty int) {
	l.totGoods[nation][region][good] = qty
}

// Inc adds qty to a cell
func (l *Ledger) Inc(nation shared.NationID, region shared.RegionID, good Good, qty int) {
	l.totGoods[nation][region][good] += qty
}

// Dec removes qty from a cell. The caller must have checked availability.
func (l *Ledger) Dec(nation shared.NationID, region shared.RegionID, good Good, qty int) {
	l.totGoods[nation][region][good] -= qty
}

// IncProd adds produced goods and tracks them in the produced table.
func (l *Ledger) IncProd(nation shared.NationID, region shared.RegionID, good Good, qty int) {
	l.totGoods[nation][region][good] += qty
	l.producedGoods[nation][region][good] += qty
}

// DecProd removes goods consumed by production and tracks the negative delta.
func (l *Ledger) DecProd(nation shared.NationID, region shared.RegionID, good Good, qty int) {
	l.totGoods[nation][region][good] -= qty
	l.producedGoods[nation][region][good] -= qty
}

// Produced returns this turn's production delta of a cell
func (l *Ledger) Produced(nation shared.NationID, region shared.RegionID, good Good) int {
	return l.producedGoods[nation][region][good]
}

// LoadProduced restores a persisted production delta without touching the
// stock of the cell
func (l *Ledger) LoadProduced(nation shared.NationID, region shared.RegionID, good Good, qty int) error {
	if !nation.IsValid() || !region.IsValid() || !good.IsValid() {
		return &ErrInvalidCell{Nation: nation, Region: region, Good: good}
	}
	l.producedGoods[nation][region][good] = qty
	return nil
}

// Has reports whether at least qty is stored in the cell
func (l *Ledger) Has(nation shared.NationID, region shared.RegionID, good Good, qty int) bool {
	return l.totGoods[nation][region][good] >= qty
}

// Withdraw removes up to qty and returns what was actually taken.
func (l *Ledger) Withdraw(nation shared.NationID, region shared.RegionID, good Good, qty int) int {
	if qty <= 0 {
		return 0
	}
	available := l.totGoods[nation][region][good]
	if available <= 0 {
		return 0
	}
	if qty > available {
		qty = available
	}
	l.totGoods[nation][region][good] -= qty
	return qty
}

// Total sums a good over all regions of a nation
func (l *Ledger) Total(nation shared.NationID, good Good) int {
	total := 0
	for region := shared.RegionFirst; region <= shared.RegionLast; region++ {
		total += l.totGoods[nation][region][good]
	}
	return total
}

// Warehouse returns a copy of one nation/region warehouse keyed by good.
// Zero quantities are omitted.
func (l *Ledger) Warehouse(nation shared.NationID, region shared.RegionID) map[Good]int {
	stored := make(map[Good]int)
	for g := GoodFirst; g <= GoodLast; g++ {
		if qty := l.totGoods[nation][region][g]; qty != 0 {
			stored[g] = qty
		}
	}
	return stored
}

// LoadWarehouse replaces one warehouse row with persisted quantities.
// Unknown goods are rejected.
func (l *Ledger) LoadWarehouse(nation shared.NationID, region shared.RegionID, stored map[Good]int) error {
	if !nation.IsValid() || !region.IsValid() {
		return &ErrInvalidCell{Nation: nation, Region: region}
	}
	for g := GoodFirst; g <= GoodLast; g++ {
		l.totGoods[nation][region][g] = 0
	}
	for g, qty := range stored {
		if !g.IsValid() {
			return &ErrInvalidCell{Nation: nation, Region: region, Good: g}
		}
		l.totGoods[nation][region][g] = qty
	}
	return nil
}

// ResetProduction clears the produced table at the start of a turn
func (l *Ledger) ResetProduction() {
	l.producedGoods = [nationDim][regionDim][goodDim]int{}
}

// NegativeCells lists every cell holding a negative quantity.
func (l *Ledger) NegativeCells() []Cell {
	var cells []Cell
	for n := shared.NationFirst; n <= shared.NationLast; n++ {
		for r := shared.RegionFirst; r <= shared.RegionLast; r++ {
			for g := GoodFirst; g <= GoodLast; g++ {
				if qty := l.totGoods[n][r][g]; qty < 0 {
					cells = append(cells, Cell{Nation: n, Region: r, Good: g, Quantity: qty})
				}
			}
		}
	}
	return cells
}

// Cell addresses one ledger entry
type Cell struct {
	Nation   shared.NationID
	Region   shared.RegionID
	Good     Good
	Quantity int
}
