// Package ledger owns the in-memory list of expense records and keeps the
// persisted blob in sync with it.
//
// Records are held newest-first. Every committed mutation writes the whole
// list to the BlobStore under StorageKey before the next mutation may start;
// if that write fails the mutation is discarded, so memory and store never
// disagree.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/storage"
)

const (
	// StorageKey is the single entry the ledger is persisted under.
	StorageKey = "expenses"

	// DefaultDateLayout renders dates like the en-US locale ("1/2/2006").
	DefaultDateLayout = "1/2/2006"
)

// AddInput is the raw form input for a new record.
type AddInput struct {
	Description string
	Amount      string
	Category    string
}

type Ledger struct {
	mu         sync.RWMutex
	expenses   []core.Expense
	store      storage.BlobStore
	clock      Clock
	dateLayout string
	notifier   Notifier
	logger     *log.Logger
}

type Option func(*Ledger)

func WithClock(c Clock) Option {
	return func(l *Ledger) { l.clock = c }
}

func WithDateLayout(layout string) Option {
	return func(l *Ledger) {
		if layout != "" {
			l.dateLayout = layout
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(l *Ledger) { l.notifier = n }
}

func WithLogger(logger *log.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger.WithComponent(log.ComponentLedger)
		}
	}
}

// New returns an empty ledger backed by store. Call Load to read persisted state.
func New(store storage.BlobStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:      store,
		clock:      SystemClock{},
		dateLayout: DefaultDateLayout,
		logger:     log.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open is New followed by Load.
func Open(ctx context.Context, store storage.BlobStore, opts ...Option) (*Ledger, error) {
	l := New(store, opts...)
	if err := l.Load(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Load replaces the in-memory list with the persisted one.
//
// A missing blob yields an empty ledger. A blob that is not a JSON array of
// records also yields an empty ledger: it is logged and left untouched in the
// store until the next mutation overwrites it. Only store failures are returned.
func (l *Ledger) Load(ctx context.Context) error {
	data, err := l.store.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		l.replace(nil)
		l.logger.InfoContext(ctx, "No persisted ledger, starting empty", log.FieldOperation, log.OpLoad)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	expenses, err := decode(data)
	if err != nil {
		l.replace(nil)
		l.logger.WarnContext(ctx, "Persisted ledger is malformed, starting empty",
			log.FieldOperation, log.OpLoad,
			log.FieldStorageKey, StorageKey,
			log.FieldError, err)
		return nil
	}

	l.replace(expenses)
	l.logger.InfoContext(ctx, "Ledger loaded", log.FieldOperation, log.OpLoad, log.FieldCount, len(expenses))
	return nil
}

// Add validates in and prepends a new record. Invalid input leaves the ledger
// and the store untouched and returns a *ValidationError.
func (l *Ledger) Add(ctx context.Context, in AddInput) (core.Expense, error) {
	exp, err := l.build(in)
	if err != nil {
		return core.Expense{}, err
	}

	l.mu.Lock()
	now := l.clock.Now()
	exp.ID = nextID(now.UnixMilli(), l.expenses)
	exp.Date = now.Format(l.dateLayout)

	next := make([]core.Expense, 0, len(l.expenses)+1)
	next = append(next, exp)
	next = append(next, l.expenses...)
	if err := l.persist(ctx, next); err != nil {
		l.mu.Unlock()
		return core.Expense{}, err
	}
	l.expenses = next
	l.mu.Unlock()

	l.logger.InfoContext(ctx, "Expense added",
		log.NewFields().WithOperation(log.OpAdd).WithExpense(exp.ID, exp.Description, exp.Amount, exp.Category.String()).ToSlice()...)
	l.notify(ctx, Event{Type: EventExpenseAdded, Expense: exp, Timestamp: now})
	return exp, nil
}

// Delete removes the record with id. An unknown id is a silent no-op that
// reports false and performs no write.
func (l *Ledger) Delete(ctx context.Context, id int64) (bool, error) {
	l.mu.Lock()
	var removed *core.Expense
	next := make([]core.Expense, 0, len(l.expenses))
	for i := range l.expenses {
		if l.expenses[i].ID == id {
			if removed == nil {
				e := l.expenses[i]
				removed = &e
			}
			continue
		}
		next = append(next, l.expenses[i])
	}
	if removed == nil {
		l.mu.Unlock()
		l.logger.DebugContext(ctx, "Delete of unknown expense ignored", log.FieldOperation, log.OpDelete, log.FieldExpenseID, id)
		return false, nil
	}
	if err := l.persist(ctx, next); err != nil {
		l.mu.Unlock()
		return false, err
	}
	l.expenses = next
	now := l.clock.Now()
	l.mu.Unlock()

	l.logger.InfoContext(ctx, "Expense deleted", log.FieldOperation, log.OpDelete, log.FieldExpenseID, id)
	l.notify(ctx, Event{Type: EventExpenseDeleted, Expense: *removed, Timestamp: now})
	return true, nil
}

// Clear removes every record and persists an empty list.
func (l *Ledger) Clear(ctx context.Context) error {
	l.mu.Lock()
	if err := l.persist(ctx, []core.Expense{}); err != nil {
		l.mu.Unlock()
		return err
	}
	count := len(l.expenses)
	l.expenses = nil
	now := l.clock.Now()
	l.mu.Unlock()

	l.logger.InfoContext(ctx, "Ledger cleared", log.FieldOperation, log.OpClear, log.FieldCount, count)
	l.notify(ctx, Event{Type: EventLedgerCleared, Timestamp: now})
	return nil
}

// Snapshot returns a copy of the records, newest-first.
func (l *Ledger) Snapshot() []core.Expense {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]core.Expense(nil), l.expenses...)
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.expenses)
}

func (l *Ledger) Get(id int64) (core.Expense, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.expenses {
		if e.ID == id {
			return e, true
		}
	}
	return core.Expense{}, false
}

// Summary derives the aggregates from the current records. Nothing is cached.
func (l *Ledger) Summary() core.Summary {
	return core.Summarize(l.Snapshot())
}

// Export returns the persisted JSON form of the current records.
func (l *Ledger) Export() ([]byte, error) {
	return encode(l.Snapshot())
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks the store is reachable. Stores with their own Ping (sqlite) are
// asked directly; the others are probed with a read of the ledger blob.
func (l *Ledger) Ping(ctx context.Context) error {
	if p, ok := l.store.(pinger); ok {
		return p.Ping(ctx)
	}
	_, err := l.store.Get(ctx, StorageKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

func (l *Ledger) build(in AddInput) (core.Expense, error) {
	verr := &ValidationError{}

	if strings.TrimSpace(in.Description) == "" {
		verr.add("description", core.ErrEmptyDescription.Error())
	}
	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		verr.add("amount", err.Error())
	}
	category, err := core.ParseCategory(in.Category)
	if err != nil {
		verr.add("category", err.Error())
	}

	if len(verr.Fields) > 0 {
		return core.Expense{}, verr
	}
	return core.Expense{
		Description: in.Description,
		Amount:      amount,
		Category:    category,
	}, nil
}

// persist must be called with l.mu held.
func (l *Ledger) persist(ctx context.Context, expenses []core.Expense) error {
	data, err := encode(expenses)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := l.store.Put(ctx, StorageKey, data); err != nil {
		l.logger.ErrorContext(ctx, "Failed to persist ledger",
			log.FieldOperation, log.OpPersist,
			log.FieldStorageKey, StorageKey,
			log.FieldError, err)
		return fmt.Errorf("persist ledger: %w", err)
	}
	return nil
}

func (l *Ledger) replace(expenses []core.Expense) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expenses = expenses
}

func (l *Ledger) notify(ctx context.Context, ev Event) {
	if l.notifier == nil {
		return
	}
	if err := l.notifier.Notify(ctx, ev); err != nil {
		l.logger.WarnContext(ctx, "Failed to notify ledger event",
			log.FieldEventType, string(ev.Type),
			log.FieldExpenseID, ev.Expense.ID,
			log.FieldError, err)
	}
}

// nextID keeps IDs unique when two records land in the same millisecond or the
// clock goes backwards.
func nextID(candidate int64, existing []core.Expense) int64 {
	var highest int64
	for _, e := range existing {
		if e.ID > highest {
			highest = e.ID
		}
	}
	if candidate <= highest {
		return highest + 1
	}
	return candidate
}

func encode(expenses []core.Expense) ([]byte, error) {
	if expenses == nil {
		expenses = []core.Expense{}
	}
	return json.Marshal(expenses)
}

func decode(data []byte) ([]core.Expense, error) {
	var expenses []core.Expense
	if err := json.Unmarshal(data, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}
