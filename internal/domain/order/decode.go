package order

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Decode turns the free-form parameter slots of an order into its typed
// command and validates it.
func Decode(o *Order) (Command, error) {
	p := params(o.Params)
	var cmd Command
	switch o.Type {
	case TypeChangeTaxation:
		cmd = &ChangeTaxationCommand{Policy: p.int(0)}
	case TypeDemolishProductionSite:
		cmd = &DemolishProductionSiteCommand{SectorID: p.int(0)}
	case TypeBuildProductionSite:
		cmd = &BuildProductionSiteCommand{SectorID: p.int(0), Site: p.int(1)}
	case TypeBuildBrigade:
		var types []int
		for i := 2; i < ParamSlots; i++ {
			if t := p.int(i); t != 0 {
				types = append(types, t)
			}
		}
		cmd = &BuildBrigadeCommand{SectorID: p.int(0), Name: p.str(1), BattalionTypes: types}
	case TypeAdditionalBattalions:
		cmd = &AdditionalBattalionsCommand{BrigadeID: p.int(0), BattalionType: p.int(1)}
	case TypeIncreaseHeadcount:
		cmd = &IncreaseHeadcountCommand{BrigadeID: p.int(0)}
	case TypeExchangeBattalions:
		cmd = &ExchangeBattalionsCommand{
			FirstBrigade:    p.int(0),
			FirstBattalion:  p.int(1),
			SecondBrigade:   p.int(2),
			SecondBattalion: p.int(3),
		}
	case TypeBuildShip:
		cmd = &BuildShipCommand{SectorID: p.int(0), ShipType: p.int(1), Name: p.str(2)}
	case TypeBuildBaggageTrain:
		cmd = &BuildBaggageTrainCommand{SectorID: p.int(0), Name: p.str(1)}
	case TypeTransferFirst:
		cmd = &TransferFirstCommand{TransferCommand: p.transfer()}
	case TypeTransferSecond:
		cmd = &TransferSecondCommand{TransferCommand: p.transfer()}
	default:
		return nil, fmt.Errorf("unknown order type %d", o.Type)
	}
	if p.err != nil {
		return nil, p.err
	}
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("invalid %s order: %w", o.Type, err)
	}
	return cmd, nil
}

type paramReader struct {
	slots [ParamSlots]string
	err   error
}

func params(slots [ParamSlots]string) *paramReader {
	return &paramReader{slots: slots}
}

// int parses a slot; empty slots read as zero
func (p *paramReader) int(i int) int {
	raw := strings.TrimSpace(p.slots[i])
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("parameter %d: %q is not a number", i+1, raw)
	}
	return v
}

func (p *paramReader) str(i int) string {
	return strings.TrimSpace(p.slots[i])
}

func (p *paramReader) transfer() TransferCommand {
	return TransferCommand{
		SourceKind:   p.int(0),
		SourceID:     p.int(1),
		TargetKind:   p.int(2),
		TargetID:     p.int(3),
		Good:         p.int(4),
		Quantity:     p.int(5),
		TargetNation: p.int(6),
	}
}
