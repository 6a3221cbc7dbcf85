package mediator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/application/mediator"
)

type pingCommand struct{ Value int }

type pingHandler struct{}

func (h *pingHandler) Handle(_ context.Context, request mediator.Request) (mediator.Response, error) {
	cmd := request.(*pingCommand)
	return cmd.Value * 2, nil
}

func TestMediator_SendThroughMiddlewares(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, &pingHandler{}))
	var calls []string
	m.RegisterMiddleware(func(ctx context.Context, r mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		calls = append(calls, "outer")
		return next(ctx, r)
	})
	m.RegisterMiddleware(func(ctx context.Context, r mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		calls = append(calls, "inner")
		return next(ctx, r)
	})

	// Act
	resp, err := m.Send(context.Background(), &pingCommand{Value: 21})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 42, resp)
	assert.Equal(t, []string{"outer", "inner"}, calls)
}

func TestMediator_Errors(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), nil)
	assert.Error(t, err)

	_, err = m.Send(context.Background(), &pingCommand{})
	assert.Error(t, err)

	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, &pingHandler{}))
	assert.Error(t, mediator.RegisterHandler[*pingCommand](m, &pingHandler{}))
	assert.Error(t, m.Register(nil, &pingHandler{}))
}
