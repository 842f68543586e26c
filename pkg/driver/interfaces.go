// pkg/driver/interfaces.go
package driver

import (
	"context"

	"receipt-service/internal/model"
)

// ReceiptPrinter renders receipts and drives a thermal printer
type ReceiptPrinter interface {
	// Printing operations
	Print(ctx context.Context, data *model.ReceiptData, options model.PrintOptions) (*model.PrintResult, error)
	OpenCashDrawer(ctx context.Context, options model.DrawerOptions) (*model.PrintResult, error)

	// Image operations, no device involved
	GetImage(data *model.ReceiptData) ([]byte, error)
	Preview(data *model.ReceiptData) ([]byte, error)
}

// EventHandler receives job lifecycle events
type EventHandler interface {
	OnJobEvent(event model.JobEvent)
}

// EventHandlerFunc adapts a function to EventHandler
type EventHandlerFunc func(event model.JobEvent)

// OnJobEvent calls f
func (f EventHandlerFunc) OnJobEvent(event model.JobEvent) {
	f(event)
}
