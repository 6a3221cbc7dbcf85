package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/nation"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/trade"
)

// World is an in-memory game state implementing every repository port.
// Repositories hand out the stored pointers, so updates are visible at once.
type World struct {
	mu sync.Mutex

	Game       *nation.Game
	Nations    map[shared.NationID]*nation.Nation
	Relations  map[[2]shared.NationID]nation.Relation
	Sectors    map[int]*sector.Sector
	Brigades   map[int]*military.Brigade
	Commanders map[int]*military.Commander
	Ships      map[int]*military.Ship
	Trains     map[int]*military.BaggageTrain
	Prisoners  map[int]*military.PrisonerRelation
	Cities     map[int]*trade.City
	Orders     map[int]*order.Order
	Reports    map[string]string
	News       []*report.News
	Profiles   map[string]int
	Ledger     *goods.Ledger
	Saves      int

	nextID int
}

// NewWorld creates an empty world for a game at the given turn
func NewWorld(game shared.GameID, turn int) *World {
	return &World{
		Game:       &nation.Game{ID: game, Turn: turn, StartYear: 1805},
		Nations:    make(map[shared.NationID]*nation.Nation),
		Relations:  make(map[[2]shared.NationID]nation.Relation),
		Sectors:    make(map[int]*sector.Sector),
		Brigades:   make(map[int]*military.Brigade),
		Commanders: make(map[int]*military.Commander),
		Ships:      make(map[int]*military.Ship),
		Trains:     make(map[int]*military.BaggageTrain),
		Prisoners:  make(map[int]*military.PrisonerRelation),
		Cities:     make(map[int]*trade.City),
		Orders:     make(map[int]*order.Order),
		Reports:    make(map[string]string),
		Profiles:   make(map[string]int),
		Ledger:     goods.NewLedger(game),
		nextID:     1000,
	}
}

// Dependencies wires the world into the economy
func (w *World) Dependencies() *economy.Dependencies {
	return &economy.Dependencies{
		Games:       &gameRepo{w},
		Nations:     &nationRepo{w},
		Relations:   &relationRepo{w},
		Sectors:     &sectorRepo{w},
		Brigades:    &brigadeRepo{w},
		Commanders:  &commanderRepo{w},
		Ships:       &shipRepo{w},
		Trains:      &trainRepo{w},
		Prisoners:   &prisonerRepo{w},
		TradeCities: &cityRepo{w},
		Reports:     &reportStore{w},
		News:        &newsStore{w},
		Profiles:    &profileRecorder{w},
		Clock:       shared.NewRealClock(),
	}
}

// LedgerStore exposes the world's warehouse table
func (w *World) LedgerStore() goods.LedgerStore {
	return &ledgerStore{w}
}

// OrderRepository exposes the world's orders
func (w *World) OrderRepository() order.Repository {
	return &orderRepo{w}
}

// AddNation registers an alive nation with a default tax rate
func (w *World) AddNation(id shared.NationID) *nation.Nation {
	n := &nation.Nation{ID: id, GameID: w.Game.ID, Code: fmt.Sprintf("%c", 'A'+rune(id)), Name: id.String(), TaxRate: 5, Alive: true, UserID: int(id) * 10}
	w.Nations[id] = n
	return n
}

// SetRelation records the stance of from towards to
func (w *World) SetRelation(from, to shared.NationID, rel nation.Relation) {
	w.Relations[[2]shared.NationID{from, to}] = rel
}

// Report returns a stored report value
func (w *World) Report(n shared.NationID, turn int, key string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v, ok := w.Reports[reportKey(n, turn, key)]
	return v, ok
}

// SetReport stores a report value directly
func (w *World) SetReport(n shared.NationID, turn int, key, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Reports[reportKey(n, turn, key)] = value
}

// Profile returns a profile counter
func (w *World) Profile(n shared.NationID, key string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Profiles[fmt.Sprintf("%d/%s", n, key)]
}

func (w *World) newID() int {
	w.nextID++
	return w.nextID
}

func reportKey(n shared.NationID, turn int, key string) string {
	return fmt.Sprintf("%d/%d/%s", n, turn, key)
}

func sortedValues[T any](m map[int]T) []T {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

type gameRepo struct{ w *World }

func (r *gameRepo) FindByID(_ context.Context, id shared.GameID) (*nation.Game, error) {
	if r.w.Game.ID != id {
		return nil, shared.NewNotFoundError("game", id)
	}
	return r.w.Game, nil
}

func (r *gameRepo) Update(_ context.Context, g *nation.Game) error {
	r.w.Game = g
	return nil
}

type nationRepo struct{ w *World }

func (r *nationRepo) FindByID(_ context.Context, _ shared.GameID, id shared.NationID) (*nation.Nation, error) {
	n, ok := r.w.Nations[id]
	if !ok {
		return nil, shared.NewNotFoundError("nation", id)
	}
	return n, nil
}

func (r *nationRepo) FindAll(_ context.Context, _ shared.GameID) ([]*nation.Nation, error) {
	out := make([]*nation.Nation, 0, len(r.w.Nations))
	for _, n := range r.w.Nations {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *nationRepo) Update(_ context.Context, n *nation.Nation) error {
	r.w.Nations[n.ID] = n
	return nil
}

type relationRepo struct{ w *World }

func (r *relationRepo) Relation(_ context.Context, _ shared.GameID, from, to shared.NationID) (nation.Relation, error) {
	return r.w.Relations[[2]shared.NationID{from, to}], nil
}

type sectorRepo struct{ w *World }

func (r *sectorRepo) FindByID(_ context.Context, _ shared.GameID, id int) (*sector.Sector, error) {
	s, ok := r.w.Sectors[id]
	if !ok {
		return nil, shared.NewNotFoundError("sector", id)
	}
	return s, nil
}

func (r *sectorRepo) FindByPosition(_ context.Context, _ shared.GameID, pos shared.Position) (*sector.Sector, error) {
	for _, s := range sortedValues(r.w.Sectors) {
		if s.Position.Equals(pos) {
			return s, nil
		}
	}
	return nil, shared.NewNotFoundError("sector", pos)
}

func (r *sectorRepo) FindOwned(_ context.Context, _ shared.GameID) ([]*sector.Sector, error) {
	var out []*sector.Sector
	for _, s := range sortedValues(r.w.Sectors) {
		if s.Owner != shared.NationNeutral {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *sectorRepo) FindWithProductionSite(_ context.Context, _ shared.GameID) ([]*sector.Sector, error) {
	var out []*sector.Sector
	for _, s := range sortedValues(r.w.Sectors) {
		if s.Owner != shared.NationNeutral && s.ProductionSite != sector.SiteNone {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *sectorRepo) Update(_ context.Context, s *sector.Sector) error {
	r.w.Sectors[s.ID] = s
	return nil
}

type brigadeRepo struct{ w *World }

func (r *brigadeRepo) FindByID(_ context.Context, _ shared.GameID, id int) (*military.Brigade, error) {
	b, ok := r.w.Brigades[id]
	if !ok {
		return nil, shared.NewNotFoundError("brigade", id)
	}
	return b, nil
}

func (r *brigadeRepo) FindByGame(_ context.Context, _ shared.GameID) ([]*military.Brigade, error) {
	return sortedValues(r.w.Brigades), nil
}

func (r *brigadeRepo) FindByPosition(_ context.Context, _ shared.GameID, pos shared.Position) ([]*military.Brigade, error) {
	var out []*military.Brigade
	for _, b := range sortedValues(r.w.Brigades) {
		if b.Position.Equals(pos) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *brigadeRepo) Add(_ context.Context, b *military.Brigade) error {
	b.ID = r.w.newID()
	for _, bat := range b.Battalions {
		if bat.ID == 0 {
			bat.ID = r.w.newID()
		}
	}
	r.w.Brigades[b.ID] = b
	return nil
}

func (r *brigadeRepo) Update(_ context.Context, b *military.Brigade) error {
	for _, bat := range b.Battalions {
		if bat.ID == 0 {
			bat.ID = r.w.newID()
		}
	}
	r.w.Brigades[b.ID] = b
	return nil
}

type commanderRepo struct{ w *World }

func (r *commanderRepo) FindAlive(_ context.Context, _ shared.GameID) ([]*military.Commander, error) {
	var out []*military.Commander
	for _, c := range sortedValues(r.w.Commanders) {
		if !c.Dead {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *commanderRepo) Update(_ context.Context, c *military.Commander) error {
	r.w.Commanders[c.ID] = c
	return nil
}

type shipRepo struct{ w *World }

func (r *shipRepo) FindByID(_ context.Context, _ shared.GameID, id int) (*military.Ship, error) {
	s, ok := r.w.Ships[id]
	if !ok {
		return nil, shared.NewNotFoundError("ship", id)
	}
	return s, nil
}

func (r *shipRepo) FindByGame(_ context.Context, _ shared.GameID) ([]*military.Ship, error) {
	return sortedValues(r.w.Ships), nil
}

func (r *shipRepo) Add(_ context.Context, s *military.Ship) error {
	s.ID = r.w.newID()
	r.w.Ships[s.ID] = s
	return nil
}

func (r *shipRepo) Update(_ context.Context, s *military.Ship) error {
	r.w.Ships[s.ID] = s
	return nil
}

func (r *shipRepo) Delete(_ context.Context, s *military.Ship) error {
	delete(r.w.Ships, s.ID)
	return nil
}

type trainRepo struct{ w *World }

func (r *trainRepo) FindByID(_ context.Context, _ shared.GameID, id int) (*military.BaggageTrain, error) {
	t, ok := r.w.Trains[id]
	if !ok {
		return nil, shared.NewNotFoundError("baggage train", id)
	}
	return t, nil
}

func (r *trainRepo) FindByGame(_ context.Context, _ shared.GameID) ([]*military.BaggageTrain, error) {
	return sortedValues(r.w.Trains), nil
}

func (r *trainRepo) Add(_ context.Context, t *military.BaggageTrain) error {
	t.ID = r.w.newID()
	r.w.Trains[t.ID] = t
	return nil
}

func (r *trainRepo) Update(_ context.Context, t *military.BaggageTrain) error {
	r.w.Trains[t.ID] = t
	return nil
}

func (r *trainRepo) Delete(_ context.Context, t *military.BaggageTrain) error {
	delete(r.w.Trains, t.ID)
	return nil
}

type prisonerRepo struct{ w *World }

func (r *prisonerRepo) FindByGame(_ context.Context, _ shared.GameID) ([]*military.PrisonerRelation, error) {
	return sortedValues(r.w.Prisoners), nil
}

func (r *prisonerRepo) Update(_ context.Context, p *military.PrisonerRelation) error {
	r.w.Prisoners[p.ID] = p
	return nil
}

type cityRepo struct{ w *World }

func (r *cityRepo) FindByID(_ context.Context, _ shared.GameID, id int) (*trade.City, error) {
	c, ok := r.w.Cities[id]
	if !ok {
		return nil, shared.NewNotFoundError("trade city", id)
	}
	return c, nil
}

func (r *cityRepo) FindByGame(_ context.Context, _ shared.GameID) ([]*trade.City, error) {
	return sortedValues(r.w.Cities), nil
}

type reportStore struct{ w *World }

func (s *reportStore) Get(_ context.Context, _ shared.GameID, n shared.NationID, turn int, key string) (string, bool, error) {
	v, ok := s.w.Report(n, turn, key)
	return v, ok, nil
}

func (s *reportStore) Put(_ context.Context, e report.Entry) error {
	s.w.SetReport(e.Nation, e.Turn, e.Key, e.Value)
	return nil
}

type newsStore struct{ w *World }

func (s *newsStore) Append(_ context.Context, n *report.News) (int, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	n.ID = len(s.w.News) + 1
	s.w.News = append(s.w.News, n)
	return n.ID, nil
}

type profileRecorder struct{ w *World }

func (p *profileRecorder) Add(_ context.Context, _ shared.GameID, n shared.NationID, _ int, key string, delta int) error {
	p.w.mu.Lock()
	defer p.w.mu.Unlock()
	p.w.Profiles[fmt.Sprintf("%d/%s", n, key)] += delta
	return nil
}

func (p *profileRecorder) Max(_ context.Context, _ shared.GameID, n shared.NationID, _ int, key string, value int) error {
	p.w.mu.Lock()
	defer p.w.mu.Unlock()
	k := fmt.Sprintf("%d/%s", n, key)
	if value > p.w.Profiles[k] {
		p.w.Profiles[k] = value
	}
	return nil
}

type ledgerStore struct{ w *World }

func (s *ledgerStore) LoadLedger(_ context.Context, _ shared.GameID) (*goods.Ledger, error) {
	return s.w.Ledger, nil
}

func (s *ledgerStore) SaveLedger(_ context.Context, l *goods.Ledger) error {
	s.w.Ledger = l
	s.w.Saves++
	return nil
}

type orderRepo struct{ w *World }

func (r *orderRepo) FindPending(_ context.Context, _ shared.GameID, turn int) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range sortedValues(r.w.Orders) {
		if !o.Processed && o.Turn == turn {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *orderRepo) Update(_ context.Context, o *order.Order) error {
	r.w.Orders[o.ID] = o
	return nil
}
