package orders

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/ShakaofCarthage/empire-engine/internal/application/mediator"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
)

// Envelope carries a decoded command together with the order it came from.
// The mediator routes on the envelope type, one per command type.
type Envelope[C order.Command] struct {
	Order   *order.Order
	Command C
}

// CommandName names the wrapped command for metrics
func (e *Envelope[C]) CommandName() string {
	name := reflect.TypeOf(e.Command).String()
	return name[strings.LastIndex(name, ".")+1:]
}

// Wrap puts a decoded command into its typed envelope
func Wrap(o *order.Order, cmd order.Command) (mediator.Request, error) {
	switch c := cmd.(type) {
	case *order.ChangeTaxationCommand:
		return &Envelope[*order.ChangeTaxationCommand]{Order: o, Command: c}, nil
	case *order.DemolishProductionSiteCommand:
		return &Envelope[*order.DemolishProductionSiteCommand]{Order: o, Command: c}, nil
	case *order.BuildProductionSiteCommand:
		return &Envelope[*order.BuildProductionSiteCommand]{Order: o, Command: c}, nil
	case *order.BuildBrigadeCommand:
		return &Envelope[*order.BuildBrigadeCommand]{Order: o, Command: c}, nil
	case *order.AdditionalBattalionsCommand:
		return &Envelope[*order.AdditionalBattalionsCommand]{Order: o, Command: c}, nil
	case *order.IncreaseHeadcountCommand:
		return &Envelope[*order.IncreaseHeadcountCommand]{Order: o, Command: c}, nil
	case *order.ExchangeBattalionsCommand:
		return &Envelope[*order.ExchangeBattalionsCommand]{Order: o, Command: c}, nil
	case *order.BuildShipCommand:
		return &Envelope[*order.BuildShipCommand]{Order: o, Command: c}, nil
	case *order.BuildBaggageTrainCommand:
		return &Envelope[*order.BuildBaggageTrainCommand]{Order: o, Command: c}, nil
	case *order.TransferFirstCommand:
		return &Envelope[*order.TransferFirstCommand]{Order: o, Command: c}, nil
	case *order.TransferSecondCommand:
		return &Envelope[*order.TransferSecondCommand]{Order: o, Command: c}, nil
	default:
		return nil, fmt.Errorf("unsupported command %T", cmd)
	}
}

// unwrap extracts a typed envelope inside a handler
func unwrap[C order.Command](request mediator.Request) (*Envelope[C], error) {
	env, ok := request.(*Envelope[C])
	if !ok {
		return nil, fmt.Errorf("invalid request type %T", request)
	}
	return env, nil
}
