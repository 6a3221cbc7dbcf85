package economy

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// reporter writes report rows and news entries for one turn
type reporter struct {
	reports report.Store
	news    report.NewsStore
	clock   shared.Clock
	game    shared.GameID
	turn    int
}

func newReporter(deps *Dependencies, turn *Turn) *reporter {
	clock := deps.Clock
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &reporter{
		reports: deps.Reports,
		news:    deps.News,
		clock:   clock,
		game:    turn.Game.ID,
		turn:    turn.Number(),
	}
}

func (r *reporter) put(ctx context.Context, n shared.NationID, key string, value int) error {
	return r.reports.Put(ctx, report.Entry{
		GameID: r.game,
		Nation: n,
		Turn:   r.turn,
		Key:    key,
		Value:  strconv.Itoa(value),
	})
}

// previous reads an integer report of the previous turn; absent or
// malformed values read as zero.
func (r *reporter) previous(ctx context.Context, n shared.NationID, key string) (int, error) {
	value, ok, err := r.reports.Get(ctx, r.game, n, r.turn-1, key)
	if err != nil || !ok {
		return 0, err
	}
	v, convErr := strconv.Atoi(value)
	if convErr != nil {
		return 0, nil
	}
	return v, nil
}

func (r *reporter) announce(ctx context.Context, n, subject shared.NationID, typ report.NewsType, global bool, text string) error {
	_, err := r.news.Append(ctx, &report.News{
		GameID:    r.game,
		Turn:      r.turn,
		Nation:    n,
		Subject:   subject,
		Type:      typ,
		Global:    global,
		BaseID:    uuid.NewString(),
		Text:      text,
		CreatedAt: r.clock.Now(),
	})
	return err
}

// tally accumulates integer report values per nation and writes them for
// every alive nation, zero when nothing happened.
type tally map[shared.NationID]map[string]int

func (t tally) add(n shared.NationID, key string, delta int) {
	if t[n] == nil {
		t[n] = make(map[string]int)
	}
	t[n][key] += delta
}

func (t tally) get(n shared.NationID, key string) int {
	return t[n][key]
}

func (t tally) flush(ctx context.Context, r *reporter, turn *Turn, keys ...string) error {
	for _, n := range turn.AliveNations() {
		for _, key := range keys {
			if err := r.put(ctx, n.ID, key, t.get(n.ID, key)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Announce appends a news entry to the turn
func Announce(ctx context.Context, deps *Dependencies, turn *Turn, n, subject shared.NationID, typ report.NewsType, global bool, text string) error {
	return newReporter(deps, turn).announce(ctx, n, subject, typ, global, text)
}

// PutReport writes an integer report value for the turn
func PutReport(ctx context.Context, deps *Dependencies, turn *Turn, n shared.NationID, key string, value int) error {
	return newReporter(deps, turn).put(ctx, n, key, value)
}
