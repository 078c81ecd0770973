package commands_test

import (
	"context"
	"testing"
	"time"

	"eatify/internal/core/application/usecases/commands"
	"eatify/internal/core/domain/model/history"
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/domain/model/outbox"
	"eatify/internal/core/domain/model/projection"
	"eatify/internal/core/domain/model/verification"
	"eatify/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

var fixedClock = ports.ClockFunc(func() time.Time { return now })

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expected order.Status) error {
	return m.Called(ctx, o, expected).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetMany(ctx context.Context, ids []kernel.OrderID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListTerminalUnarchived(ctx context.Context, limit int) ([]kernel.OrderID, error) {
	args := m.Called(ctx, limit)
	ids, _ := args.Get(0).([]kernel.OrderID)
	return ids, args.Error(1)
}

func (m *MockOrderRepository) ListActiveIDs(ctx context.Context, limit int) ([]kernel.OrderID, error) {
	args := m.Called(ctx, limit)
	ids, _ := args.Get(0).([]kernel.OrderID)
	return ids, args.Error(1)
}

type MockProjectionRepository struct{ mock.Mock }

func (m *MockProjectionRepository) SaveRestaurant(ctx context.Context, v projection.RestaurantView) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockProjectionRepository) SaveCustomer(ctx context.Context, v projection.CustomerView) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockProjectionRepository) SaveDeliveryCandidate(ctx context.Context, v projection.DeliveryCandidateView) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockProjectionRepository) SaveDeliveryAssigned(ctx context.Context, v projection.DeliveryAssignedView) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockProjectionRepository) Remove(ctx context.Context, kind projection.Kind, id kernel.OrderID) error {
	return m.Called(ctx, kind, id).Error(0)
}

func (m *MockProjectionRepository) Presence(ctx context.Context, id kernel.OrderID) (projection.Presence, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(projection.Presence)
	return p, args.Error(1)
}

func (m *MockProjectionRepository) ListOrderIDs(ctx context.Context, limit int) ([]kernel.OrderID, error) {
	args := m.Called(ctx, limit)
	ids, _ := args.Get(0).([]kernel.OrderID)
	return ids, args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, entry history.PreviousOrder) (bool, error) {
	args := m.Called(ctx, entry)
	return args.Bool(0), args.Error(1)
}

func (m *MockHistoryRepository) ListByOwner(
	ctx context.Context,
	role kernel.Role,
	email string,
) ([]history.PreviousOrder, error) {
	args := m.Called(ctx, role, email)
	entries, _ := args.Get(0).([]history.PreviousOrder)
	return entries, args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, msg outbox.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockOutboxRepository) Pending(ctx context.Context, at time.Time, limit int) ([]outbox.Message, error) {
	args := m.Called(ctx, at, limit)
	msgs, _ := args.Get(0).([]outbox.Message)
	return msgs, args.Error(1)
}

func (m *MockOutboxRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOutboxRepository) SaveRetry(ctx context.Context, msg outbox.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type MockUoW struct {
	mock.Mock

	orders      *MockOrderRepository
	projections *MockProjectionRepository
	history     *MockHistoryRepository
	outbox      *MockOutboxRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:      new(MockOrderRepository),
		projections: new(MockProjectionRepository),
		history:     new(MockHistoryRepository),
		outbox:      new(MockOutboxRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository           { return m.orders }
func (m *MockUoW) ProjectionRepository() ports.ProjectionRepository { return m.projections }
func (m *MockUoW) HistoryRepository() ports.HistoryRepository       { return m.history }
func (m *MockUoW) OutboxRepository() ports.OutboxRepository         { return m.outbox }

func (m *MockUoW) assertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.projections.AssertExpectations(t)
	m.history.AssertExpectations(t)
	m.outbox.AssertExpectations(t)
}

// expectTx allows any number of transactions that begin, commit and roll back cleanly.
func (m *MockUoW) expectTx() {
	m.On("Begin", mock.Anything).Return(nil)
	m.On("Commit", mock.Anything).Return(nil)
	m.On("Rollback", mock.Anything).Return(nil)
}

// expectSync accepts every projection write of one sync.
func (m *MockUoW) expectSync() {
	p := m.projections
	p.On("SaveRestaurant", mock.Anything, mock.Anything).Return(nil).Maybe()
	p.On("SaveCustomer", mock.Anything, mock.Anything).Return(nil).Maybe()
	p.On("SaveDeliveryCandidate", mock.Anything, mock.Anything).Return(nil).Maybe()
	p.On("SaveDeliveryAssigned", mock.Anything, mock.Anything).Return(nil).Maybe()
	p.On("Remove", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

type MockUoWFactory struct{ uow *MockUoW }

func (f MockUoWFactory) Create() commands.UoW { return f.uow }

type MockOutboxUoWFactory struct{ uow *MockUoW }

func (f MockOutboxUoWFactory) Create() commands.OutboxUoW { return f.uow }

type MockCodeStore struct{ mock.Mock }

func (m *MockCodeStore) Put(ctx context.Context, code verification.Code) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockCodeStore) Consume(ctx context.Context, id kernel.OrderID, candidate string, at time.Time) error {
	return m.Called(ctx, id, candidate, at).Error(0)
}

func (m *MockCodeStore) Delete(ctx context.Context, id kernel.OrderID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCodeStore) Sweep(ctx context.Context, at time.Time) (int, error) {
	args := m.Called(ctx, at)
	return args.Int(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.CodeNotification) error {
	return m.Called(ctx, n).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}

type recordingObserver struct {
	transitions map[string][]error
	codes       []error
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{transitions: map[string][]error{}}
}

func (r *recordingObserver) ObserveTransition(event string, err error) {
	r.transitions[event] = append(r.transitions[event], err)
}

func (r *recordingObserver) ObserveCodeValidation(err error) {
	r.codes = append(r.codes, err)
}

func mustActor(t *testing.T, role kernel.Role, email string) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(role, email)
	require.NoError(t, err)
	return a
}

func mustParty(t *testing.T, name, email, phone string) kernel.Party {
	t.Helper()
	p, err := kernel.NewParty(name, email, phone, name+" street 1")
	require.NoError(t, err)
	return p
}

var (
	customerActor   = func(t *testing.T) kernel.Actor { return mustActor(t, kernel.RoleCustomer, "ann@example.com") }
	restaurantActor = func(t *testing.T) kernel.Actor { return mustActor(t, kernel.RoleRestaurant, "grill@example.com") }
	partnerActor    = func(t *testing.T) kernel.Actor { return mustActor(t, kernel.RoleDelivery, "pat@example.com") }
)

func partner(t *testing.T) kernel.Party {
	return mustParty(t, "Pat", "pat@example.com", "333")
}

func lineItems(t *testing.T) []order.LineItem {
	t.Helper()
	item, err := order.NewLineItem("Burger", 2)
	require.NoError(t, err)
	return []order.LineItem{item}
}

func billing(t *testing.T) order.Billing {
	t.Helper()
	b, err := order.NewBilling(kernel.MustMoney("25.00"), kernel.MustMoney("5.00"), "card")
	require.NoError(t, err)
	return b
}

// orderIn builds order O1 and walks it to status s.
func orderIn(t *testing.T, s order.Status) *order.Order {
	t.Helper()
	return orderWithIDIn(t, "O1", s)
}

func orderWithIDIn(t *testing.T, id kernel.OrderID, s order.Status) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		id,
		mustParty(t, "Ann", "ann@example.com", "111"),
		mustParty(t, "Grill", "grill@example.com", "222"),
		lineItems(t),
		billing(t),
		now,
	)
	require.NoError(t, err)

	steps := []struct {
		reach order.Status
		do    func() error
	}{
		{order.Accepted, func() error { return o.Accept(now) }},
		{order.DeliveryAssigned, func() error { return o.AssignPartner(partner(t), now) }},
		{order.CodeIssued, func() error { return o.IssueCode(now) }},
		{order.Delivered, func() error { return o.ConfirmDelivery(now) }},
	}

	if s == order.Cancelled {
		require.NoError(t, o.Cancel("closed", now))
		return o
	}
	for _, step := range steps {
		if o.Status() == s {
			break
		}
		require.NoError(t, step.do())
	}
	require.Equal(t, s, o.Status())
	return o
}
