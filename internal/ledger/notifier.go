package ledger

import (
	"context"
	"time"

	"expensetracker/internal/core"
)

type EventType string

const (
	EventExpenseAdded   EventType = "expense.added"
	EventExpenseDeleted EventType = "expense.deleted"
	EventLedgerCleared  EventType = "ledger.cleared"
)

// Event describes a committed ledger mutation.
type Event struct {
	Type      EventType
	Expense   core.Expense
	Timestamp time.Time
}

// Notifier is told about every committed mutation. A failing notifier never
// undoes the mutation; the error is only logged.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, ev Event) error

func (f NotifierFunc) Notify(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}
