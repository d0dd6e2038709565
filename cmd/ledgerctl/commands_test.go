package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/config"
	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
	"expensetracker/internal/storage/memory"
)

type harness struct {
	ledger *ledger.Ledger
	clock  *ledger.FixedClock
	out    *bytes.Buffer
	cfg    config.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := ledger.NewFixedClock(time.Date(2025, time.March, 7, 9, 30, 0, 0, time.UTC))
	l, err := ledger.Open(context.Background(), memory.New(), ledger.WithClock(clock))
	require.NoError(t, err)
	return &harness{ledger: l, clock: clock, out: &bytes.Buffer{}, cfg: config.Defaults()}
}

// run parses args with kong exactly like main does and runs the command.
func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	var cli struct {
		Add        addCmd        `cmd:""`
		List       listCmd       `cmd:""`
		Delete     deleteCmd     `cmd:""`
		Summary    summaryCmd    `cmd:""`
		Categories categoriesCmd `cmd:""`
		Reset      resetCmd      `cmd:""`
		Export     exportCmd     `cmd:""`
	}
	parser, err := kong.New(&cli, kong.Exit(func(int) {}))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	h.clock.Advance(time.Millisecond)
	return kctx.Run(newRunContext(context.Background(), h.ledger, h.out, &h.cfg))
}

func TestAddListSummary(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "add", "Coffee", "4.50", "--category", "food"))
	require.NoError(t, h.run(t, "add", "Bus", "2", "-c", "Transport"))
	h.out.Reset()

	require.NoError(t, h.run(t, "list"))
	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Bus")
	assert.Contains(t, lines[2], "Coffee")
	assert.Contains(t, lines[2], "$4.50")

	h.out.Reset()
	require.NoError(t, h.run(t, "summary"))
	assert.Contains(t, h.out.String(), "Total: $6.50 (2 expenses)")
	assert.Contains(t, h.out.String(), "Food")
	assert.Contains(t, h.out.String(), "$2.00")
}

func TestAddRejectsInvalidInput(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "add", "Coffee", "abc")

	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
	assert.Equal(t, 0, h.ledger.Len())
}

func TestDelete(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "add", "Coffee", "4.50"))
	id := h.ledger.Snapshot()[0].ID
	h.out.Reset()

	require.NoError(t, h.run(t, "delete", "12345"))
	assert.Contains(t, h.out.String(), "nothing to delete")
	assert.Equal(t, 1, h.ledger.Len())

	require.NoError(t, h.run(t, "delete", jsonNumber(id)))
	assert.Equal(t, 0, h.ledger.Len())
}

func TestResetRequiresConfirmation(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "add", "Coffee", "4.50"))

	assert.ErrorIs(t, h.run(t, "reset"), errResetNotConfirmed)
	assert.Equal(t, 1, h.ledger.Len())

	require.NoError(t, h.run(t, "reset", "--yes"))
	assert.Equal(t, 0, h.ledger.Len())
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "add", "Coffee", "4.50"))
	path := filepath.Join(t.TempDir(), "ledger.json")

	require.NoError(t, h.run(t, "export", "--out", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var expenses []core.Expense
	require.NoError(t, json.Unmarshal(data, &expenses))
	assert.Equal(t, h.ledger.Snapshot(), expenses)
}

func TestCategories(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "categories"))

	assert.True(t, strings.HasPrefix(h.out.String(), "Food (default)\n"))
	assert.Contains(t, h.out.String(), "Other\n")
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
