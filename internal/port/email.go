package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceReminder carries what a reminder email needs to render.
type InvoiceReminder struct {
	InvoiceID uuid.UUID
	ToEmail   string
	ToName    string
	Amount    decimal.Decimal
	Currency  string
	DueDate   string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendInvoiceReminder(ctx context.Context, reminder InvoiceReminder) error
}
