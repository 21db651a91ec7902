package noop

import (
	"context"

	"go.uber.org/zap"

	"stayos/internal/port"
)

type noopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates a no-op EmailSender that logs reminders instead of sending them.
func NewNoopSender(logger *zap.Logger) port.EmailSender {
	return &noopSender{logger: logger}
}

func (s *noopSender) SendInvoiceReminder(_ context.Context, r port.InvoiceReminder) error {
	s.logger.Info("noop email: invoice reminder",
		zap.Stringer("invoice_id", r.InvoiceID),
		zap.String("to", r.ToEmail),
		zap.String("name", r.ToName),
		zap.String("amount", r.Amount.StringFixed(2)),
		zap.String("currency", r.Currency),
		zap.String("due_date", r.DueDate))
	return nil
}
