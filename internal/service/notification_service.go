package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		logger: logger,
		cfg:    cfg,
	}
}

// EventTypes lists the events this service reacts to.
func (n *NotificationService) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventEmployeeCreated,
		events.EventLeaveRequested,
		events.EventLeaveStatusChanged,
		events.EventSalaryRecorded,
	}
}

// Notify delivers the notifications that belong to event.
func (n *NotificationService) Notify(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("actor_id", event.Actor.ID),
		zap.Any("payload", event.Payload))

	switch event.Type {
	case events.EventEmployeeCreated:
		n.sendEmailNotificationStub(ctx, event, "welcome")
	case events.EventLeaveRequested:
		n.sendWebhookNotificationStub(ctx, event)
	case events.EventLeaveStatusChanged:
		n.sendEmailNotificationStub(ctx, event, "leave review")
		n.sendWebhookNotificationStub(ctx, event)
	case events.EventSalaryRecorded:
		n.sendEmailNotificationStub(ctx, event, "payslip")
	}
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event, template string) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("template", template),
		zap.String("employee_id", event.EmployeeID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("employee_id", event.EmployeeID),
		zap.String("event_type", string(event.Type)))
}
