// Package order models player orders and the typed commands decoded from
// their free-form parameter slots.
package order

import (
	"context"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Type discriminates order kinds
type Type int

const (
	TypeBuildBrigade           Type = 1
	TypeAdditionalBattalions   Type = 2
	TypeIncreaseHeadcount      Type = 3
	TypeExchangeBattalions     Type = 4
	TypeBuildShip              Type = 5
	TypeBuildBaggageTrain      Type = 6
	TypeBuildProductionSite    Type = 7
	TypeDemolishProductionSite Type = 8
	TypeChangeTaxation         Type = 9
	TypeTransferFirst          Type = 10
	TypeTransferSecond         Type = 11
)

// processingSequence is the order in which order types run within a batch
var processingSequence = []Type{
	TypeChangeTaxation,
	TypeDemolishProductionSite,
	TypeBuildProductionSite,
	TypeBuildBrigade,
	TypeAdditionalBattalions,
	TypeIncreaseHeadcount,
	TypeExchangeBattalions,
	TypeBuildShip,
	TypeBuildBaggageTrain,
	TypeTransferFirst,
	TypeTransferSecond,
}

// Sequence returns the processing rank of the type; unknown types sort last
func (t Type) Sequence() int {
	for i, candidate := range processingSequence {
		if candidate == t {
			return i
		}
	}
	return len(processingSequence)
}

func (t Type) String() string {
	switch t {
	case TypeBuildBrigade:
		return "build_brigade"
	case TypeAdditionalBattalions:
		return "additional_battalions"
	case TypeIncreaseHeadcount:
		return "increase_headcount"
	case TypeExchangeBattalions:
		return "exchange_battalions"
	case TypeBuildShip:
		return "build_ship"
	case TypeBuildBaggageTrain:
		return "build_baggage_train"
	case TypeBuildProductionSite:
		return "build_production_site"
	case TypeDemolishProductionSite:
		return "demolish_production_site"
	case TypeChangeTaxation:
		return "change_taxation"
	case TypeTransferFirst:
		return "transfer_first"
	case TypeTransferSecond:
		return "transfer_second"
	default:
		return "unknown"
	}
}

// ParamSlots is the number of free-form parameters an order carries
const ParamSlots = 9

// ResultInvalid marks an order whose parameters could not be decoded
const ResultInvalid = 0

// Order is a player submitted action for one turn
type Order struct {
	ID          int
	GameID      shared.GameID
	Nation      shared.NationID
	Turn        int
	Type        Type
	Position    int
	Params      [ParamSlots]string
	Processed   bool
	Result      int
	Explanation string
	UsedGoods   map[goods.Good]int
}

// Apply stores a terminal outcome on the order
func (o *Order) Apply(out *Outcome) {
	o.Processed = true
	o.Result = out.Result
	o.Explanation = out.Explanation
	o.UsedGoods = out.UsedGoods
}

// Outcome is the terminal result of processing one order. Result > 0 is a
// success count, Result < 0 a handler specific failure reason.
type Outcome struct {
	Result      int
	Explanation string
	UsedGoods   map[goods.Good]int
}

// Succeeded reports a positive result
func (o *Outcome) Succeeded() bool {
	return o.Result > 0
}

// Success creates a positive outcome
func Success(count int, explanation string, used map[goods.Good]int) *Outcome {
	if count < 1 {
		count = 1
	}
	return &Outcome{Result: count, Explanation: explanation, UsedGoods: used}
}

// Failure creates a negative outcome with a handler specific code
func Failure(code int, explanation string) *Outcome {
	if code >= 0 {
		code = -1
	}
	return &Outcome{Result: code, Explanation: explanation}
}

// Invalid creates the outcome of an undecodable order
func Invalid(explanation string) *Outcome {
	return &Outcome{Result: ResultInvalid, Explanation: explanation}
}

// Repository loads and stores orders
type Repository interface {
	// FindPending lists the unprocessed orders of a game turn
	FindPending(ctx context.Context, game shared.GameID, turn int) ([]*Order, error)
	Update(ctx context.Context, o *Order) error
}
