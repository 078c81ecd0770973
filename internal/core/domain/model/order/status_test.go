package order_test

import (
	"testing"

	"eatify/internal/core/domain/model/order"
	"eatify/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Apply(t *testing.T) {
	tests := []struct {
		name  string
		from  order.Status
		event order.Event
		want  order.Status
	}{
		{"accept placed", order.Placed, order.Accept, order.Accepted},
		{"cancel placed", order.Placed, order.Cancel, order.Cancelled},
		{"assign accepted", order.Accepted, order.Assign, order.DeliveryAssigned},
		{"cancel accepted", order.Accepted, order.Cancel, order.Cancelled},
		{"issue code", order.DeliveryAssigned, order.IssueCode, order.CodeIssued},
		{"reissue code", order.CodeIssued, order.ReissueCode, order.CodeIssued},
		{"confirm", order.CodeIssued, order.Confirm, order.Delivered},
	}

	for _, tt := range tests {
		t.Run("should "+tt.name, func(t *testing.T) {
			got, err := tt.from.Apply(tt.event)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, tt.from.CanApply(tt.event))
		})
	}
}

func TestStatus_Apply_Rejects(t *testing.T) {
	tests := []struct {
		name           string
		from           order.Status
		event          order.Event
		alreadyApplied bool
	}{
		{"assign on placed", order.Placed, order.Assign, false},
		{"accept twice", order.Accepted, order.Accept, true},
		{"issue code twice", order.CodeIssued, order.IssueCode, true},
		{"reissue before issue", order.DeliveryAssigned, order.ReissueCode, false},
		{"cancel after assign", order.DeliveryAssigned, order.Cancel, false},
		{"cancel after delivery", order.Delivered, order.Cancel, false},
		{"confirm twice", order.Delivered, order.Confirm, true},
		{"anything from unknown", order.Unknown, order.Accept, false},
	}

	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			got, err := tt.from.Apply(tt.event)

			require.ErrorIs(t, err, errs.ErrInvalidTransition)
			assert.Equal(t, order.Unknown, got)

			var transitionErr *errs.InvalidTransitionError
			require.ErrorAs(t, err, &transitionErr)
			assert.Equal(t, tt.alreadyApplied, transitionErr.AlreadyApplied)
			assert.Equal(t, tt.from.String(), transitionErr.From)
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	for _, s := range order.ActiveStatuses() {
		assert.False(t, s.IsTerminal(), s.String())
	}
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.Len(t, order.AllStatuses(), 6)
}

func TestStatus_ValidateAndParse(t *testing.T) {
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
	assert.Equal(t, "UNKNOWN", order.Status(42).String())

	for _, s := range order.AllStatuses() {
		require.NoError(t, s.Validate())
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.ParseStatus("UNKNOWN")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestEvent_RoutingKey(t *testing.T) {
	assert.Equal(t, "order.accepted", order.Accept.RoutingKey())
	assert.Equal(t, "order.delivered", order.Confirm.RoutingKey())
	assert.Equal(t, "order.code_reissued", order.ReissueCode.RoutingKey())
}
