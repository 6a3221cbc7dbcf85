package orders

import (
	"context"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/application/mediator"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
)

var policyNames = map[int]string{
	economy.PolicyNormal:   "normal",
	economy.PolicyHarsh:    "harsh",
	economy.PolicyLow:      "low",
	economy.PolicyColonial: "colonial goods",
}

// ChangeTaxationHandler stores the tax policy used when taxes are next collected
type ChangeTaxationHandler struct {
	deps  *economy.Dependencies
	batch *Batch
}

// NewChangeTaxationHandler creates a new change taxation handler
func NewChangeTaxationHandler(deps *economy.Dependencies, batch *Batch) *ChangeTaxationHandler {
	return &ChangeTaxationHandler{deps: deps, batch: batch}
}

// Handle executes the change taxation command
func (h *ChangeTaxationHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	env, err := unwrap[*order.ChangeTaxationCommand](request)
	if err != nil {
		return nil, err
	}
	o, cmd := env.Order, env.Command

	name, ok := policyNames[cmd.Policy]
	if !ok {
		return order.Failure(-1, fmt.Sprintf("Taxation policy %d does not exist.", cmd.Policy)), nil
	}
	if err := economy.PutReport(ctx, h.deps, h.batch.Turn, o.Nation, report.KeyTaxationPolicy, cmd.Policy); err != nil {
		return nil, err
	}
	return order.Success(1, fmt.Sprintf("Taxation policy set to %s.", name), nil), nil
}
