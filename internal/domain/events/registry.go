// Package events exposes the random events active in the current turn.
// Events are drawn by an earlier stage of the turn and published as report
// rows of nation 0; this package only reads them.
package events

import (
	"context"
	"strconv"
	"strings"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Event names a random event
type Event string

const (
	BoomingEconomy   Event = "booming_economy"
	ManpowerShortage Event = "manpower_shortage"
	Nationalism      Event = "nationalism"
	CorruptedEconomy Event = "corrupted_economy"
	ExcellentHarvest Event = "excellent_harvest"
	TradeDeficit     Event = "trade_deficit"
	TradeSurplus     Event = "trade_surplus"
)

// All lists every known event
func All() []Event {
	return []Event{BoomingEconomy, ManpowerShortage, Nationalism, CorruptedEconomy, ExcellentHarvest, TradeDeficit, TradeSurplus}
}

// Checker answers whether an event affects a nation this turn
type Checker interface {
	Active(event Event, nation shared.NationID) bool
}

// Registry is the read-only set of active events for one turn
type Registry struct {
	active map[Event]map[shared.NationID]bool
}

// NewRegistry builds a registry from explicit event lists
func NewRegistry(active map[Event][]shared.NationID) *Registry {
	r := &Registry{active: make(map[Event]map[shared.NationID]bool)}
	for event, nations := range active {
		set := make(map[shared.NationID]bool, len(nations))
		for _, n := range nations {
			set[n] = true
		}
		r.active[event] = set
	}
	return r
}

// Load reads the events of a turn from the report store
func Load(ctx context.Context, store report.Store, game shared.GameID, turn int) (*Registry, error) {
	active := make(map[Event][]shared.NationID)
	for _, event := range All() {
		value, ok, err := store.Get(ctx, game, shared.NationNeutral, turn, report.EventKey(string(event)))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		active[event] = parseNations(value)
	}
	return NewRegistry(active), nil
}

// Active reports whether the event affects the nation
func (r *Registry) Active(event Event, nation shared.NationID) bool {
	if r == nil {
		return false
	}
	return r.active[event][nation]
}

// parseNations skips malformed entries so that a bad row disables the event
// for that nation only.
func parseNations(value string) []shared.NationID {
	var nations []shared.NationID
	for _, part := range strings.Split(value, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if n := shared.NationID(id); n.IsValid() {
			nations = append(nations, n)
		}
	}
	return nations
}
