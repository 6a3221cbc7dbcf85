package order_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
)

func TestDecode_Transfer(t *testing.T) {
	o := &order.Order{
		Type:   order.TypeTransferFirst,
		Params: [order.ParamSlots]string{"3", "12", "1", "1", "13", "250"},
	}

	cmd, err := order.Decode(o)

	require.NoError(t, err)
	transfer, ok := cmd.(*order.TransferFirstCommand)
	require.True(t, ok)
	assert.Equal(t, order.EntityShip, transfer.SourceKind)
	assert.Equal(t, 12, transfer.SourceID)
	assert.Equal(t, 250, transfer.Quantity)
	assert.Equal(t, 0, transfer.TargetNation)
}

func TestDecode_RejectsQuantityOutOfRange(t *testing.T) {
	for _, qty := range []string{"0", "-5", "1000000001", "9223372036854775807"} {
		o := &order.Order{
			Type:   order.TypeTransferSecond,
			Params: [order.ParamSlots]string{"1", "1", "3", "4", "3", qty},
		}

		_, err := order.Decode(o)

		assert.Error(t, err, "quantity %s", qty)
	}

	cmd, err := order.Decode(&order.Order{
		Type:   order.TypeTransferSecond,
		Params: [order.ParamSlots]string{"1", "1", "3", "4", "3", strconv.Itoa(order.MaxQuantity)},
	})
	require.NoError(t, err)
	assert.Equal(t, order.MaxQuantity, cmd.(*order.TransferSecondCommand).Quantity)
}

func TestDecode_BuildBrigadeCollectsBattalionSlots(t *testing.T) {
	o := &order.Order{
		Type:   order.TypeBuildBrigade,
		Params: [order.ParamSlots]string{"40", "1st Guard", "1", "1", "", "4"},
	}

	cmd, err := order.Decode(o)

	require.NoError(t, err)
	brigade := cmd.(*order.BuildBrigadeCommand)
	assert.Equal(t, []int{1, 1, 4}, brigade.BattalionTypes)
	assert.Equal(t, "1st Guard", brigade.Name)
}

func TestDecode_Errors(t *testing.T) {
	_, err := order.Decode(&order.Order{Type: order.TypeChangeTaxation, Params: [order.ParamSlots]string{"abc"}})
	assert.Error(t, err)

	_, err = order.Decode(&order.Order{Type: order.TypeChangeTaxation, Params: [order.ParamSlots]string{"7"}})
	assert.Error(t, err)

	_, err = order.Decode(&order.Order{Type: order.Type(99)})
	assert.Error(t, err)

	_, err = order.Decode(&order.Order{
		Type:   order.TypeExchangeBattalions,
		Params: [order.ParamSlots]string{"5", "1", "5", "2"},
	})
	assert.Error(t, err)
}

func TestType_Sequence(t *testing.T) {
	assert.Less(t, order.TypeChangeTaxation.Sequence(), order.TypeBuildProductionSite.Sequence())
	assert.Less(t, order.TypeBuildBaggageTrain.Sequence(), order.TypeTransferFirst.Sequence())
	assert.Less(t, order.TypeTransferFirst.Sequence(), order.TypeTransferSecond.Sequence())
	assert.Equal(t, 11, order.Type(42).Sequence())
}

func TestOutcome_Constructors(t *testing.T) {
	assert.Equal(t, -1, order.Failure(0, "x").Result)
	assert.Equal(t, 1, order.Success(0, "ok", nil).Result)
	assert.False(t, order.Invalid("bad").Succeeded())
}
