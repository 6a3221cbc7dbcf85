package setup

import (
	"github.com/ShakaofCarthage/empire-engine/internal/adapters/metrics"
	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/application/mediator"
	"github.com/ShakaofCarthage/empire-engine/internal/application/orders"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
)

// HandlerRegistry holds the dependencies the order handlers are built from
type HandlerRegistry struct {
	deps *economy.Dependencies
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(deps *economy.Dependencies) *HandlerRegistry {
	return &HandlerRegistry{deps: deps}
}

// RegisterOrderHandlers registers one handler per order command with the
// batch mediator
//
// This method registers:
//   - ChangeTaxation, DemolishProductionSite, BuildProductionSite
//   - BuildBrigade, AdditionalBattalions, IncreaseHeadcount, ExchangeBattalions
//   - BuildShip, BuildBaggageTrain
//   - TransferFirst and TransferSecond, served by one transfer handler
func (r *HandlerRegistry) RegisterOrderHandlers(m mediator.Mediator, batch *orders.Batch) error {
	transfer := orders.NewTransferHandler(r.deps, batch)

	registrations := []func() error{
		func() error {
			return mediator.RegisterHandler[*orders.Envelope[*order.ChangeTaxationCommand]](m, orders.NewChangeTaxationHandler(r.deps, batch))
		},
		func() error {
			return mediator.RegisterHandler[*orders.Envelope[*order.DemolishProductionSiteCommand]](m, orders.NewDemolishProductionSiteHandler(r.deps, batch))
		},
		func() error {
			return mediator.RegisterHandler[*orders.Envelope[*order.BuildProductionSiteCommand]](m, orders.NewBuildProductionSiteHandler(r.deps, batch))
		},
		func() error {
			return mediator.RegisterHandler[*orders.Envelope[*order.BuildBrigadeCommand]](m, orders.NewBuildBrigadeHandler(r.deps, batch))
		},
		func() error {
			return mediator.RegisterHandler[*orders.Envelope[*order.AdditionalBattalionsCommand]](m, orders.NewAdditionalBattalionsHandler(r.deps, batch))
		},
		func() error {
			return mediator.RegisterHandler[*orders.Envelope[*order.IncreaseHeadcountCommand]](m, orders.NewIncreaseHeadcountHandler(r.deps, batch))
		},
		func() error {
			return mediator.RegisterHandler[*orders.Envelope[*order.ExchangeBattalionsCommand]](m, orders.NewExchangeBattalionsHandler(r.deps, batch))
		},
		func() error {
			return mediator.RegisterHandler[*orders.Envelope[*order.BuildShipCommand]](m, orders.NewBuildShipHandler(r.deps, batch))
		},
		func() error {
			return mediator.RegisterHandler[*orders.Envelope[*order.BuildBaggageTrainCommand]](m, orders.NewBuildBaggageTrainHandler(r.deps, batch))
		},
		func() error {
			return mediator.RegisterHandler[*orders.Envelope[*order.TransferFirstCommand]](m, transfer)
		},
		func() error {
			return mediator.RegisterHandler[*orders.Envelope[*order.TransferSecondCommand]](m, transfer)
		},
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

// CreateConfiguredMediator creates a mediator for one order batch with the
// command metrics middleware and every order handler registered
//
// The order runner builds its own mediator per batch; this is the same wiring
// for callers that dispatch single orders outside a batch.
func (r *HandlerRegistry) CreateConfiguredMediator(batch *orders.Batch, collector *metrics.CommandMetricsCollector) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	m.RegisterMiddleware(metrics.PrometheusMiddleware(collector))

	if err := r.RegisterOrderHandlers(m, batch); err != nil {
		return nil, err
	}
	return m, nil
}
