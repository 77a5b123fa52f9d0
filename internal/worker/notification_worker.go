package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/service"
)

// ErrQueueFull is returned when an event cannot be queued.
var ErrQueueFull = errors.New("notification queue full")

const defaultQueueSize = 64

// NotificationWorker moves notification delivery off the request path.
type NotificationWorker struct {
	notifications *service.NotificationService
	logger        *zap.Logger
	queue         chan events.Event
	wg            sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewNotificationWorker creates a worker with a bounded queue.
func NewNotificationWorker(notifications *service.NotificationService, logger *zap.Logger, queueSize int) *NotificationWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &NotificationWorker{
		notifications: notifications,
		logger:        logger,
		queue:         make(chan events.Event, queueSize),
	}
}

// Subscribe registers the worker for every event the notification service handles.
func (w *NotificationWorker) Subscribe(dispatcher events.Dispatcher) {
	if dispatcher == nil || w.notifications == nil {
		return
	}
	for _, eventType := range w.notifications.EventTypes() {
		dispatcher.Subscribe(eventType, w.Enqueue)
	}
}

// Enqueue hands an event to the worker without blocking.
func (w *NotificationWorker) Enqueue(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrQueueFull
	}
	select {
	case w.queue <- event:
		return nil
	default:
		w.logger.Warn("notification dropped", zap.String("event_type", string(event.Type)), zap.String("event_id", event.ID))
		return ErrQueueFull
	}
}

// Start launches the delivery loop. It runs until ctx is done or Stop is called.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.queue:
				if !ok {
					return
				}
				w.deliver(ctx, event)
			}
		}
	}()
}

// Stop closes the queue and waits for queued events to be delivered.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *NotificationWorker) deliver(ctx context.Context, event events.Event) {
	if err := w.notifications.Notify(ctx, event); err != nil {
		w.logger.Warn("notification failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
