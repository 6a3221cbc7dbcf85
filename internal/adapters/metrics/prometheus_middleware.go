package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/ShakaofCarthage/empire-engine/internal/application/mediator"
)

// PrometheusMiddleware times every order command sent through the mediator
// and counts it as succeeded, rejected or error. Command names drop their
// package prefix: "*order.BuildShipCommand" becomes "BuildShipCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		commandName := extractCommandName(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordCommand(commandName, time.Since(start).Seconds(), commandStatus(response, err))

		return response, err
	}
}

// succeeder is implemented by order outcomes
type succeeder interface {
	Succeeded() bool
}

func commandStatus(response mediator.Response, err error) string {
	if err != nil {
		return StatusError
	}
	if out, ok := response.(succeeder); ok && !out.Succeeded() {
		return StatusRejected
	}
	return StatusSucceeded
}

// namedRequest lets wrapper requests report the command they carry
type namedRequest interface {
	CommandName() string
}

// extractCommandName strips the pointer and package prefix of the request type
func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}
	if named, ok := request.(namedRequest); ok {
		return named.CommandName()
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	parts := strings.Split(fullName, ".")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}

	return fullName
}
