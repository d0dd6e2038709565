package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
)

const (
	chartCacheSize = 16
	chartCacheTTL  = 10 * time.Minute
)

// chartKey identifies a rendered chart by the totals it draws.
func chartKey(summary core.Summary, currency string) string {
	var b strings.Builder
	b.WriteString(currency)
	for _, ct := range summary.ByCategory {
		b.WriteByte('|')
		b.WriteString(ct.Category.String())
		b.WriteByte('=')
		b.WriteString(ct.Total.String())
	}
	return b.String()
}

// renderCategoryChart draws the per-category totals as a PNG pie chart.
// It returns nil when there is nothing positive to draw.
func renderCategoryChart(summary core.Summary, currency string) ([]byte, error) {
	values := make([]chart.Value, 0, len(summary.ByCategory))
	for _, ct := range summary.ByCategory {
		amount := ct.Amount()
		if amount <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %s", ct.Category, core.FormatMoneyDecimal(currency, ct.Total)),
			Value: amount,
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  480,
		Height: 480,
		Values: values,
		Background: chart.Style{
			Padding:   chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
			FillColor: chart.ColorWhite,
		},
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render category chart: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	summary := s.ledger.Summary()
	key := chartKey(summary, s.currency)
	if png, ok := s.charts.Get(key); ok {
		writePNG(w, png)
		return
	}

	png, err := renderCategoryChart(summary, s.currency)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Chart rendering failed", log.FieldOperation, log.OpRender, log.FieldError, err)
		http.Error(w, "chart unavailable", http.StatusInternalServerError)
		return
	}
	if png == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.charts.Set(key, png)
	writePNG(w, png)
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
