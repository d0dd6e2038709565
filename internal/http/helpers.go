package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"expensetracker/internal/core"
)

var errInvalidID = errors.New("invalid expense id")

// sanitizeInput removes control characters. Surrounding whitespace is kept;
// the ledger and the core parsers decide what blank means.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// parseID reads the {id} route parameter.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "id")), 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// selectedCategory is the category remembered in the cookie, or the default.
func selectedCategory(r *http.Request) core.Category {
	c, err := r.Cookie(CategoryCookie)
	if err != nil {
		return core.DefaultCategory
	}
	cat, err := core.ParseCategory(c.Value)
	if err != nil {
		return core.DefaultCategory
	}
	return cat
}

func rememberCategory(w http.ResponseWriter, cat core.Category) {
	http.SetCookie(w, &http.Cookie{
		Name:     CategoryCookie,
		Value:    cat.String(),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

type expenseRow struct {
	ID          int64
	Description string
	Category    string
	Date        string
	Amount      string
}

type categoryRow struct {
	Name   string
	Amount string
}

// ledgerView is the data behind the "ledger" template. OOB marks partial
// responses, which also carry the header total as an out-of-band swap.
type ledgerView struct {
	Total        string
	ByCategory   []categoryRow
	Expenses     []expenseRow
	ChartVersion string
	OOB          bool
}

type pageView struct {
	Ledger     ledgerView
	Categories []core.Category
	Selected   core.Category
}

func (s *Server) buildLedgerView(oob bool) ledgerView {
	expenses := s.ledger.Snapshot()
	summary := core.Summarize(expenses)

	v := ledgerView{
		Total: core.FormatMoneyDecimal(s.currency, summary.Total),
		OOB:   oob,
	}
	for _, ct := range summary.ByCategory {
		v.ByCategory = append(v.ByCategory, categoryRow{
			Name:   ct.Category.String(),
			Amount: core.FormatMoneyDecimal(s.currency, ct.Total),
		})
	}
	for _, e := range expenses {
		v.Expenses = append(v.Expenses, expenseRow{
			ID:          e.ID,
			Description: e.Description,
			Category:    e.Category.String(),
			Date:        e.Date,
			Amount:      core.FormatMoney(s.currency, e.Amount),
		})
	}
	if len(expenses) > 0 {
		// newest id plus count changes on every add and delete
		v.ChartVersion = strconv.FormatInt(expenses[0].ID, 10) + "-" + strconv.Itoa(len(expenses))
	}
	return v
}
