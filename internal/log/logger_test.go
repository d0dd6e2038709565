package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestJSONLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Output: &buf}).WithComponent(ComponentLedger)

	logger.Info("Expense added", FieldExpenseID, int64(42))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ledger", rec[FieldComponent])
	assert.Equal(t, float64(42), rec[FieldExpenseID])
	assert.Equal(t, "Expense added", rec["msg"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Output: &buf})

	logger.Debug("hidden")

	assert.Empty(t, buf.String())
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	logger := FromContext(context.Background())

	require.NotNil(t, logger)
	assert.Equal(t, "unknown", logger.Component())
}

func TestMiddlewareChainCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Output: &buf, Component: ComponentHTTP})

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).InfoContext(r.Context(), "handled")
	})
	handler = RequestIDMiddleware(func(*http.Request) string { return "req-1" })(handler)
	handler = Middleware(base)(handler)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	out := buf.String()
	assert.True(t, strings.Contains(out, "request_id=req-1"), out)
	assert.True(t, strings.Contains(out, "component=http"), out)
}

func TestLogFields(t *testing.T) {
	f := NewFields().WithOperation(OpAdd).WithExpense(1, "Coffee", 4.5, "Food").WithError(nil)

	assert.Equal(t, OpAdd, f[FieldOperation])
	assert.NotContains(t, f, FieldError)
	assert.Len(t, f.ToSlice(), len(f)*2)
}
