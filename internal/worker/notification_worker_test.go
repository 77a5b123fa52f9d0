package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/service"
)

func TestNotificationWorker_DeliversPublishedEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	notifications := service.NewNotificationService(logger, config.NotificationConfig{})
	w := NewNotificationWorker(notifications, logger, 4)
	dispatcher := events.NewInMemoryDispatcher(logger)
	w.Subscribe(dispatcher)
	w.Start(context.Background())

	require.NoError(t, dispatcher.Publish(context.Background(), events.New(events.EventLeaveRequested, "emp-1", events.Actor{}, nil)))
	w.Stop()

	entries := logs.FilterMessage(string(events.EventLeaveRequested)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "emp-1", entries[0].ContextMap()["employee_id"])
}

func TestNotificationWorker_EnqueueAfterStop(t *testing.T) {
	w := NewNotificationWorker(service.NewNotificationService(nil, config.NotificationConfig{}), nil, 1)
	w.Start(context.Background())
	w.Stop()

	err := w.Enqueue(context.Background(), events.New(events.EventSalaryRecorded, "emp-1", events.Actor{}, nil))
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestNotificationWorker_QueueFull(t *testing.T) {
	w := NewNotificationWorker(service.NewNotificationService(nil, config.NotificationConfig{}), nil, 1)

	require.NoError(t, w.Enqueue(context.Background(), events.Event{Type: events.EventEmployeeCreated}))
	assert.ErrorIs(t, w.Enqueue(context.Background(), events.Event{Type: events.EventEmployeeCreated}), ErrQueueFull)
}
