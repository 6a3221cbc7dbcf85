package order

// Entity kinds of a transfer endpoint
const (
	EntityWarehouse    = 1
	EntityTradeCity    = 2
	EntityShip         = 3
	EntityBaggageTrain = 4
)

// MaxQuantity bounds the goods one transfer may request. It keeps money
// totals of a trade far from int overflow at every catalog price.
const MaxQuantity = 1_000_000_000

// Command is the typed payload of an order
type Command interface {
	OrderType() Type
}

// ChangeTaxationCommand sets the taxation policy applied next turn
type ChangeTaxationCommand struct {
	Policy int `validate:"min=0,max=3"`
}

// DemolishProductionSiteCommand removes the site of a sector
type DemolishProductionSiteCommand struct {
	SectorID int `validate:"gt=0"`
}

// BuildProductionSiteCommand builds a site on a sector
type BuildProductionSiteCommand struct {
	SectorID int `validate:"gt=0"`
	Site     int `validate:"gt=0"`
}

// BuildBrigadeCommand raises a new brigade at a barrack
type BuildBrigadeCommand struct {
	SectorID       int    `validate:"gt=0"`
	Name           string `validate:"max=64"`
	BattalionTypes []int  `validate:"min=1,max=7,dive,gt=0"`
}

// AdditionalBattalionsCommand adds one battalion to an existing brigade
type AdditionalBattalionsCommand struct {
	BrigadeID     int `validate:"gt=0"`
	BattalionType int `validate:"gt=0"`
}

// IncreaseHeadcountCommand refills the battalions of a brigade
type IncreaseHeadcountCommand struct {
	BrigadeID int `validate:"gt=0"`
}

// ExchangeBattalionsCommand swaps two battalions between brigades
type ExchangeBattalionsCommand struct {
	FirstBrigade    int `validate:"gt=0"`
	FirstBattalion  int `validate:"gt=0"`
	SecondBrigade   int `validate:"gt=0,nefield=FirstBrigade"`
	SecondBattalion int `validate:"gt=0"`
}

// BuildShipCommand builds a ship at a shipyard
type BuildShipCommand struct {
	SectorID int    `validate:"gt=0"`
	ShipType int    `validate:"gt=0"`
	Name     string `validate:"max=64"`
}

// BuildBaggageTrainCommand builds a baggage train at a barrack
type BuildBaggageTrainCommand struct {
	SectorID int    `validate:"gt=0"`
	Name     string `validate:"max=64"`
}

// TransferCommand moves goods between warehouses, carriers and trade cities.
// A warehouse endpoint's id is its region; TargetNation selects another
// nation's warehouse and defaults to the ordering nation.
type TransferCommand struct {
	SourceKind   int `validate:"min=1,max=4"`
	SourceID     int `validate:"gt=0"`
	TargetKind   int `validate:"min=1,max=4"`
	TargetID     int `validate:"gt=0"`
	Good         int `validate:"min=1,max=16"`
	Quantity     int `validate:"gt=0,max=1000000000"`
	TargetNation int `validate:"min=0,max=17"`
}

// TransferFirstCommand is a transfer resolved before movement
type TransferFirstCommand struct {
	TransferCommand
}

// TransferSecondCommand is a transfer resolved after movement
type TransferSecondCommand struct {
	TransferCommand
}

func (ChangeTaxationCommand) OrderType() Type         { return TypeChangeTaxation }
func (DemolishProductionSiteCommand) OrderType() Type { return TypeDemolishProductionSite }
func (BuildProductionSiteCommand) OrderType() Type    { return TypeBuildProductionSite }
func (BuildBrigadeCommand) OrderType() Type           { return TypeBuildBrigade }
func (AdditionalBattalionsCommand) OrderType() Type   { return TypeAdditionalBattalions }
func (IncreaseHeadcountCommand) OrderType() Type      { return TypeIncreaseHeadcount }
func (ExchangeBattalionsCommand) OrderType() Type     { return TypeExchangeBattalions }
func (BuildShipCommand) OrderType() Type              { return TypeBuildShip }
func (BuildBaggageTrainCommand) OrderType() Type      { return TypeBuildBaggageTrain }
func (TransferFirstCommand) OrderType() Type          { return TypeTransferFirst }
func (TransferSecondCommand) OrderType() Type         { return TypeTransferSecond }
