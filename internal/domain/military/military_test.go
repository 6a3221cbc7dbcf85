package military_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
)

func TestBattalion_ReduceHeadcount(t *testing.T) {
	bat := &military.Battalion{Headcount: 800}

	lost := bat.ReduceHeadcount(15)

	assert.Equal(t, 120, lost)
	assert.Equal(t, 680, bat.Headcount)

	lost = bat.ReduceHeadcount(250)
	assert.Equal(t, 680, lost)
	assert.Equal(t, 0, bat.Headcount)
}

func TestBrigade_AddAndRemoveBattalions(t *testing.T) {
	b := &military.Brigade{}
	b.AddBattalion(&military.Battalion{ID: 10, Headcount: 800})
	b.AddBattalion(&military.Battalion{ID: 11, Headcount: 400})

	assert.Equal(t, 2, b.Battalion(11).Order)
	assert.Equal(t, 1200, b.Soldiers())

	removed := b.RemoveBattalion(10)
	assert.Equal(t, 10, removed.ID)
	assert.Len(t, b.Battalions, 1)
	assert.Nil(t, b.RemoveBattalion(99))
}

func TestCommander_Recover(t *testing.T) {
	c := &military.Commander{Sick: 2, Strength: 2, Command: 0}

	assert.False(t, c.Recover())
	assert.True(t, c.Recover())
	assert.Equal(t, 6, c.Strength)
	assert.Equal(t, 1, c.Command)
	assert.False(t, c.Recover())
}

func TestCarrier_Cargo(t *testing.T) {
	s := &military.Ship{Capacity: 500, Cargo: military.Cargo{goods.GoodWine: 200}}
	var c military.Carrier = s

	assert.Equal(t, 300, c.FreeSpace())
	c.Unload(goods.GoodWine, 200)
	assert.Equal(t, 0, c.Stored(goods.GoodWine))
	assert.NotContains(t, s.Cargo, goods.GoodWine)

	train := &military.BaggageTrain{Capacity: 100}
	train.Store(goods.GoodFood, 150)
	assert.Equal(t, 0, train.FreeSpace())
}
