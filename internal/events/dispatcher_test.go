package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDispatcher_FailingHandlerDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var calls []string
	d.Subscribe(EventLeaveRequested, func(context.Context, Event) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventLeaveRequested, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.EmployeeID)
		return nil
	})
	d.Subscribe(EventSalaryRecorded, func(context.Context, Event) error {
		calls = append(calls, "unrelated")
		return nil
	})

	err := d.Publish(context.Background(), New(EventLeaveRequested, "emp-1", Actor{}, nil))

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second:emp-1"}, calls)
}
