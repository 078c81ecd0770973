package cmd_test

import (
	"testing"

	"eatify/cmd"
	"eatify/internal/core/application/usecases/commands"
	"eatify/internal/core/application/usecases/queries"
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositionRoot_MemoryDrivers(t *testing.T) {
	cfg, err := cmd.LoadConfig("")
	require.NoError(t, err)
	cfg.RelaySchedule = "@every 1h"
	cfg.ReconcileSchedule = "@every 1h"
	cfg.SweepSchedule = "@every 1h"

	m := metrics.New()
	root, err := cmd.NewCompositionRoot(t.Context(), cfg, m, nil)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, root.Close()) })

	handlers := root.CreateHTTPHandlers()

	actor, err := kernel.NewActor(kernel.RoleCustomer, "ann@example.com")
	require.NoError(t, err)
	customer, err := kernel.NewParty("Ann", "ann@example.com", "111", "Elm 1")
	require.NoError(t, err)
	restaurant, err := kernel.NewParty("Grill", "grill@example.com", "222", "Oak 2")
	require.NoError(t, err)
	item, err := order.NewLineItem("Burger", 2)
	require.NoError(t, err)
	billing, err := order.NewBilling(kernel.MustMoney("25.00"), kernel.MustMoney("5.00"), "card")
	require.NoError(t, err)

	create, err := commands.NewCreateOrderCommand(actor, "O1", customer, restaurant, []order.LineItem{item}, billing)
	require.NoError(t, err)
	require.NoError(t, handlers.CreateOrder.Handle(t.Context(), create))

	query, err := queries.NewGetProjectionQuery(actor, "O1")
	require.NoError(t, err)
	result, err := handlers.GetProjection.Handle(t.Context(), query)
	require.NoError(t, err)
	assert.Equal(t, order.Placed, result.Customer.Status)

	assert.Equal(t, 1, testutil.CollectAndCount(m.Registry(), "eatify_order_transitions_total"))

	jm := root.CreateJobManager()
	require.NoError(t, jm.StartAll())
	jm.StopAll()
}

func TestCompositionRoot_UnreachableRedis(t *testing.T) {
	cfg, err := cmd.LoadConfig("")
	require.NoError(t, err)
	cfg.CodeStoreDriver = cmd.DriverRedis
	cfg.RedisURL = "redis://127.0.0.1:1/0"

	_, err = cmd.NewCompositionRoot(t.Context(), cfg, nil, nil)

	require.Error(t, err)
}
