package http

import (
	"bytes"
	"errors"
	"net/http"
	"sort"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
	"expensetracker/internal/log"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := pageView{
		Ledger:     s.buildLedgerView(false),
		Categories: core.Categories(),
		Selected:   selectedCategory(r),
	}
	s.render(w, r, http.StatusOK, "index.html", data, nil)
}

func (s *Server) handleLedgerPartial(w http.ResponseWriter, r *http.Request) {
	s.renderLedger(w, r, NewHTMXResponse())
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		logger.WarnContext(r.Context(), "Parse form error", log.FieldError, err)
		if errors.Is(err, errBodyTooLarge) {
			RequestEntityTooLargeError("Expense is too large").Write(w)
			return
		}
		BadRequestError("Invalid request format").Write(w)
		return
	}

	in := ledger.AddInput{
		Description: p.Get("description"),
		Amount:      p.Get("amount"),
		Category:    p.Get("category"),
	}
	if cat, err := core.ParseCategory(in.Category); err == nil {
		rememberCategory(w, cat)
	}

	_, err := s.ledger.Add(r.Context(), in)
	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		UnprocessableEntityError(validationMessage(verr)).Write(w)
		return
	case err != nil:
		logger.ErrorContext(r.Context(), "Expense add failed", log.FieldOperation, log.OpAdd, log.FieldError, err)
		InternalServerError("Could not save the expense").Write(w)
		return
	}

	s.renderLedger(w, r, NewHTMXResponse().TriggerFormReset().TriggerLedgerChanged())
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	if _, err := s.ledger.Delete(r.Context(), id); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Expense delete failed",
			log.FieldOperation, log.OpDelete, log.FieldExpenseID, id, log.FieldError, err)
		InternalServerError("Could not delete the expense").Write(w)
		return
	}

	s.renderLedger(w, r, NewHTMXResponse().TriggerLedgerChanged())
}

// renderLedger writes the ledger partial, including the out-of-band header total.
func (s *Server) renderLedger(w http.ResponseWriter, r *http.Request, resp *HTMXResponseBuilder) {
	if s.templates == nil {
		InternalServerError("templates not loaded").Write(w)
		return
	}
	s.render(w, r, http.StatusOK, "ledger", s.buildLedgerView(true), resp)
}

// render executes name into a buffer so a template failure never leaves a
// half-written response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any, resp *HTMXResponseBuilder) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			log.FieldOperation, log.OpRender, "template", name, log.FieldError, err)
		InternalServerError("Could not render the page").Write(w)
		return
	}
	if resp == nil {
		resp = NewHTMXResponse()
	}
	resp.Status(status).BodyHTML(buf.String()).Write(w)
}

func validationMessage(verr *ledger.ValidationError) string {
	fields := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f {
		case "description":
			msgs = append(msgs, "Description is required.")
		case "amount":
			msgs = append(msgs, "Amount must be a positive number.")
		case "category":
			msgs = append(msgs, "Pick a category from the list.")
		default:
			msgs = append(msgs, verr.Fields[f])
		}
	}
	return strings.Join(msgs, " ")
}
