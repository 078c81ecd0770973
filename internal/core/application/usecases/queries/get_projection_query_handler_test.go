package queries_test

import (
	"context"
	"testing"

	"eatify/internal/core/application/usecases/queries"
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/projection"
	"eatify/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProjectionReader struct{ mock.Mock }

func (m *MockProjectionReader) GetRestaurantView(ctx context.Context, id kernel.OrderID) (projection.RestaurantView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(projection.RestaurantView), args.Error(1)
}

func (m *MockProjectionReader) GetCustomerView(ctx context.Context, id kernel.OrderID) (projection.CustomerView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(projection.CustomerView), args.Error(1)
}

func (m *MockProjectionReader) GetDeliveryCandidateView(
	ctx context.Context,
	id kernel.OrderID,
) (projection.DeliveryCandidateView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(projection.DeliveryCandidateView), args.Error(1)
}

func (m *MockProjectionReader) GetDeliveryAssignedView(
	ctx context.Context,
	id kernel.OrderID,
) (projection.DeliveryAssignedView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(projection.DeliveryAssignedView), args.Error(1)
}

func (m *MockProjectionReader) ListRestaurantViews(
	ctx context.Context,
	email, name string,
) ([]projection.RestaurantView, error) {
	args := m.Called(ctx, email, name)
	return args.Get(0).([]projection.RestaurantView), args.Error(1)
}

func (m *MockProjectionReader) ListCustomerViews(ctx context.Context, email string) ([]projection.CustomerView, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]projection.CustomerView), args.Error(1)
}

func (m *MockProjectionReader) ListDeliveryCandidateViews(ctx context.Context) ([]projection.DeliveryCandidateView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]projection.DeliveryCandidateView), args.Error(1)
}

func (m *MockProjectionReader) ListDeliveryAssignedViews(
	ctx context.Context,
	email string,
) ([]projection.DeliveryAssignedView, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]projection.DeliveryAssignedView), args.Error(1)
}

func actor(t *testing.T, role kernel.Role, email string) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(role, email)
	require.NoError(t, err)
	return a
}

func notFound(id kernel.OrderID) error {
	return errs.NewObjectNotFoundError("orderId", id.String())
}

func TestGetProjectionQueryHandler_Handle(t *testing.T) {
	t.Run("customer sees own view", func(t *testing.T) {
		reader := new(MockProjectionReader)
		reader.On("GetCustomerView", mock.Anything, kernel.OrderID("O1")).
			Return(projection.CustomerView{OrderID: "O1", CustomerEmail: "ann@example.com"}, nil)

		query, err := queries.NewGetProjectionQuery(actor(t, kernel.RoleCustomer, "Ann@Example.com"), "O1")
		require.NoError(t, err)

		result, err := queries.NewGetProjectionQueryHandler(reader).Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Equal(t, projection.Customer, result.Kind)
		require.NotNil(t, result.Customer)
		assert.Nil(t, result.Restaurant)
	})

	t.Run("other restaurant gets not found", func(t *testing.T) {
		reader := new(MockProjectionReader)
		reader.On("GetRestaurantView", mock.Anything, kernel.OrderID("O1")).
			Return(projection.RestaurantView{OrderID: "O1", RestaurantEmail: "grill@example.com"}, nil)

		query, _ := queries.NewGetProjectionQuery(actor(t, kernel.RoleRestaurant, "pizza@example.com"), "O1")

		_, err := queries.NewGetProjectionQueryHandler(reader).Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("delivery sees candidate while unclaimed", func(t *testing.T) {
		reader := new(MockProjectionReader)
		reader.On("GetDeliveryAssignedView", mock.Anything, kernel.OrderID("O1")).
			Return(projection.DeliveryAssignedView{}, notFound("O1"))
		reader.On("GetDeliveryCandidateView", mock.Anything, kernel.OrderID("O1")).
			Return(projection.DeliveryCandidateView{OrderID: "O1"}, nil)

		query, _ := queries.NewGetProjectionQuery(actor(t, kernel.RoleDelivery, "pat@example.com"), "O1")

		result, err := queries.NewGetProjectionQueryHandler(reader).Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Equal(t, projection.DeliveryCandidate, result.Kind)
	})

	t.Run("delivery cannot read another partner's order", func(t *testing.T) {
		reader := new(MockProjectionReader)
		assigned := projection.DeliveryAssignedView{PartnerEmail: "sam@example.com"}
		reader.On("GetDeliveryAssignedView", mock.Anything, kernel.OrderID("O1")).Return(assigned, nil)

		query, _ := queries.NewGetProjectionQuery(actor(t, kernel.RoleDelivery, "pat@example.com"), "O1")

		_, err := queries.NewGetProjectionQueryHandler(reader).Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		reader.AssertNotCalled(t, "GetDeliveryCandidateView", mock.Anything, mock.Anything)
	})

	t.Run("system has no projection", func(t *testing.T) {
		query, _ := queries.NewGetProjectionQuery(kernel.SystemActor(), "O1")

		_, err := queries.NewGetProjectionQueryHandler(new(MockProjectionReader)).Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("zero query is rejected", func(t *testing.T) {
		_, err := queries.NewGetProjectionQueryHandler(new(MockProjectionReader)).
			Handle(t.Context(), queries.GetProjectionQuery{})

		require.ErrorIs(t, err, queries.ErrGetProjectionQueryIsNotConstructed)
	})
}

func TestListActiveQueryHandler_Handle(t *testing.T) {
	t.Run("restaurant filter narrows by name", func(t *testing.T) {
		reader := new(MockProjectionReader)
		reader.On("ListRestaurantViews", mock.Anything, "grill@example.com", "Grill").
			Return([]projection.RestaurantView{{OrderID: "O1"}}, nil).Once()

		list, err := queries.NewListActiveQueryHandler(reader).Handle(t.Context(),
			queries.NewListActiveQuery(actor(t, kernel.RoleRestaurant, "grill@example.com"), " Grill "))

		require.NoError(t, err)
		assert.Equal(t, 1, list.Len())
		reader.AssertExpectations(t)
	})

	t.Run("delivery candidates", func(t *testing.T) {
		reader := new(MockProjectionReader)
		reader.On("ListDeliveryCandidateViews", mock.Anything).
			Return([]projection.DeliveryCandidateView{{OrderID: "O1"}, {OrderID: "O2"}}, nil).Once()

		list, err := queries.NewListActiveQueryHandler(reader).Handle(t.Context(),
			queries.NewListActiveQuery(actor(t, kernel.RoleDelivery, "pat@example.com"), queries.CandidatesFilter))

		require.NoError(t, err)
		assert.Equal(t, projection.DeliveryCandidate, list.Kind)
		assert.Equal(t, 2, list.Len())
	})

	t.Run("delivery without filter lists own assignments", func(t *testing.T) {
		reader := new(MockProjectionReader)
		reader.On("ListDeliveryAssignedViews", mock.Anything, "pat@example.com").
			Return([]projection.DeliveryAssignedView{}, nil).Once()

		list, err := queries.NewListActiveQueryHandler(reader).Handle(t.Context(),
			queries.NewListActiveQuery(actor(t, kernel.RoleDelivery, "pat@example.com"), ""))

		require.NoError(t, err)
		assert.Equal(t, projection.DeliveryAssigned, list.Kind)
		reader.AssertExpectations(t)
	})

	t.Run("system cannot list", func(t *testing.T) {
		_, err := queries.NewListActiveQueryHandler(new(MockProjectionReader)).Handle(t.Context(),
			queries.NewListActiveQuery(kernel.SystemActor(), ""))

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}
