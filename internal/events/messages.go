package events

import (
	"encoding/json"
	"time"

	"expensetracker/internal/ledger"
)

// Message is the wire form of a ledger event. Clear events carry no expense
// fields.
type Message struct {
	Type        string    `json:"type"`
	ExpenseID   int64     `json:"expense_id,omitempty"`
	Description string    `json:"description,omitempty"`
	Amount      float64   `json:"amount,omitempty"`
	Category    string    `json:"category,omitempty"`
	Date        string    `json:"date,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewMessage(ev ledger.Event) *Message {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	msg := &Message{
		Type:      string(ev.Type),
		Timestamp: ts.UTC(),
	}
	if ev.Type != ledger.EventLedgerCleared {
		msg.ExpenseID = ev.Expense.ID
		msg.Description = ev.Expense.Description
		msg.Amount = ev.Expense.Amount
		msg.Category = ev.Expense.Category.String()
		msg.Date = ev.Expense.Date
	}
	return msg
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
