package production

import (
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// WeavingMill turns wool into fabric, 2 wool per batch unit
type WeavingMill struct{}

func (w *WeavingMill) Produce(env *Env, s *sector.Sector) map[goods.Good]int {
	out := make(map[goods.Good]int)
	batch := minInt(shared.RandIntBetween(env.Random, 10, 30), stock(env, s, goods.GoodWool)/2)
	if batch <= 0 {
		return out
	}
	consume(env, s, goods.GoodWool, 2*batch, out)
	produce(env, s, goods.GoodFabric, int(float64(3*batch)*boost(env)), out)
	return out
}

// Mint coins precious metals
type Mint struct{}

func (m *Mint) Produce(env *Env, s *sector.Sector) map[goods.Good]int {
	out := make(map[goods.Good]int)
	batch := minInt(shared.RandIntBetween(env.Random, 5, 15), stock(env, s, goods.GoodPrecious))
	if batch <= 0 {
		return out
	}
	consume(env, s, goods.GoodPrecious, batch, out)
	produce(env, s, goods.GoodMoney, int(float64(batch*1000)*boost(env)), out)
	return out
}

// Factory converts ore, fabric and wood in a 1:5:20 ratio into industrial points
type Factory struct{}

func (f *Factory) Produce(env *Env, s *sector.Sector) map[goods.Good]int {
	out := make(map[goods.Good]int)
	batch := minInt(
		shared.RandIntBetween(env.Random, 10, 30),
		stock(env, s, goods.GoodOre),
		stock(env, s, goods.GoodFabric)/5,
		stock(env, s, goods.GoodWood)/20,
	)
	if batch <= 0 {
		return out
	}
	consume(env, s, goods.GoodOre, batch, out)
	consume(env, s, goods.GoodFabric, 5*batch, out)
	consume(env, s, goods.GoodWood, 20*batch, out)

	perBatch := 100
	if !s.Position.Region.IsEurope() {
		perBatch = 75
	}
	produce(env, s, goods.GoodInpt, int(float64(batch*perBatch)*boost(env)), out)
	return out
}
