package economy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/test/helpers"
)

func TestProductionPipeline_RefinedPassRunsBeforeFactories(t *testing.T) {
	// Arrange: the factory has the lower id but must see the mill's fabric
	w := helpers.NewWorld(1, 5)
	austria := w.AddNation(shared.NationAustria)
	w.AddSector(1, austria.ID, helpers.Europe(10, 10), 5, sector.SiteFactory)
	w.AddSector(2, austria.ID, helpers.Europe(11, 10), 5, sector.SiteWeavingMill)
	w.Ledger.Set(austria.ID, shared.RegionEurope, goods.GoodMoney, 1000000)
	w.Ledger.Set(austria.ID, shared.RegionEurope, goods.GoodWool, 100)
	w.Ledger.Set(austria.ID, shared.RegionEurope, goods.GoodOre, 100)
	w.Ledger.Set(austria.ID, shared.RegionEurope, goods.GoodWood, 1000)
	turn := loadTurn(t, w, helpers.NewScriptedRandom())

	// Act
	err := economy.NewProductionPipeline(w.Dependencies(), nil).Run(context.Background(), turn)

	// Assert: mill batch 10 gives 30 fabric, enough for 6 factory batches
	require.NoError(t, err)
	assert.Equal(t, 1000000-160000-60000, w.Ledger.Get(austria.ID, shared.RegionEurope, goods.GoodMoney))
	assert.Equal(t, 80, w.Ledger.Get(austria.ID, shared.RegionEurope, goods.GoodWool))
	assert.Equal(t, 0, w.Ledger.Get(austria.ID, shared.RegionEurope, goods.GoodFabric))
	assert.Equal(t, 94, w.Ledger.Get(austria.ID, shared.RegionEurope, goods.GoodOre))
	assert.Equal(t, 880, w.Ledger.Get(austria.ID, shared.RegionEurope, goods.GoodWood))
	assert.Equal(t, 600, w.Ledger.Get(austria.ID, shared.RegionEurope, goods.GoodInpt))

	assert.Equal(t, "600", reportValue(t, w, austria.ID, report.ProductionKey(goods.GoodInpt, shared.RegionEurope)))
	assert.Equal(t, "220000", reportValue(t, w, austria.ID, report.KeySiteMaintenance))
	assert.Equal(t, "0", reportValue(t, w, austria.ID, report.KeySitesUnpaid))
}

func TestProductionPipeline_UnpaidSiteProducesNothing(t *testing.T) {
	w := helpers.NewWorld(1, 5)
	austria := w.AddNation(shared.NationAustria)
	s := w.AddSector(1, austria.ID, helpers.Europe(10, 10), 2, sector.SiteEstate)
	w.Ledger.Set(austria.ID, shared.RegionEurope, goods.GoodMoney, 19999)
	turn := loadTurn(t, w, helpers.NewScriptedRandom())

	err := economy.NewProductionPipeline(w.Dependencies(), nil).Run(context.Background(), turn)

	require.NoError(t, err)
	assert.False(t, s.Payed)
	assert.Equal(t, 19999, w.Ledger.Get(austria.ID, shared.RegionEurope, goods.GoodMoney))
	assert.Equal(t, 0, w.Ledger.Get(austria.ID, shared.RegionEurope, goods.GoodFood))
	assert.Equal(t, "1", reportValue(t, w, austria.ID, report.KeySitesUnpaid))
	require.Len(t, w.News, 1)
	assert.Equal(t, report.NewsProduction, w.News[0].Type)
	assert.False(t, w.News[0].Global)
}

func TestProductionPipeline_ConqueredSectorIgnoresPopulationBand(t *testing.T) {
	// Arrange: two quarries below their minimum population, one recently conquered
	w := helpers.NewWorld(1, 5)
	austria := w.AddNation(shared.NationAustria)
	w.AddSector(1, austria.ID, helpers.Europe(10, 10), 0, sector.SiteQuarry)
	conquered := w.AddSector(2, austria.ID, shared.NewPosition(shared.RegionCaribbean, 3, 3), 0, sector.SiteQuarry)
	conquered.ConqueredCounter = 2
	w.Ledger.Set(austria.ID, shared.RegionEurope, goods.GoodMoney, 100000)
	turn := loadTurn(t, w, helpers.NewScriptedRandom())

	// Act
	err := economy.NewProductionPipeline(w.Dependencies(), nil).Run(context.Background(), turn)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, w.Ledger.Get(austria.ID, shared.RegionEurope, goods.GoodStone))
	assert.Equal(t, 50, w.Ledger.Get(austria.ID, shared.RegionCaribbean, goods.GoodStone))
	assert.Equal(t, "2", reportValue(t, w, austria.ID, report.KeySitesUndersized))
	assert.Equal(t, "0", reportValue(t, w, austria.ID, report.KeySitesOversized))
}

func TestProductionPipeline_LastConquestTurnStillExempt(t *testing.T) {
	// Arrange: the sector advancer ages the counter from 1 to 0 earlier in
	// the same turn
	w := helpers.NewWorld(1, 5)
	austria := w.AddNation(shared.NationAustria)
	conquered := w.AddSector(2, austria.ID, shared.NewPosition(shared.RegionCaribbean, 3, 3), 0, sector.SiteQuarry)
	conquered.ConqueredCounter = 1
	w.Ledger.Set(austria.ID, shared.RegionEurope, goods.GoodMoney, 100000)
	turn := loadTurn(t, w, helpers.NewScriptedRandom())
	_, err := economy.NewSectorAdvancer(w.Dependencies()).Advance(context.Background(), turn)
	require.NoError(t, err)
	require.Equal(t, 0, conquered.ConqueredCounter)

	// Act
	err = economy.NewProductionPipeline(w.Dependencies(), nil).Run(context.Background(), turn)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 50, w.Ledger.Get(austria.ID, shared.RegionCaribbean, goods.GoodStone))
}

func TestProductionPipeline_DeadNationsAreSkipped(t *testing.T) {
	w := helpers.NewWorld(1, 5)
	dead := w.AddNation(shared.NationDenmark)
	dead.Alive = false
	w.AddSector(1, dead.ID, helpers.Europe(10, 10), 2, sector.SiteEstate)
	w.Ledger.Set(dead.ID, shared.RegionEurope, goods.GoodMoney, 100000)
	turn := loadTurn(t, w, helpers.NewScriptedRandom())

	err := economy.NewProductionPipeline(w.Dependencies(), nil).Run(context.Background(), turn)

	require.NoError(t, err)
	assert.Equal(t, 100000, w.Ledger.Get(dead.ID, shared.RegionEurope, goods.GoodMoney))
	_, ok := w.Report(dead.ID, 5, report.KeySitesUnpaid)
	assert.False(t, ok)
}
