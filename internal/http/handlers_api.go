package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
	"expensetracker/internal/log"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type categoryTotalResponse struct {
	Category     string  `json:"category"`
	Total        float64 `json:"total"`
	TotalDisplay string  `json:"total_display"`
}

type summaryResponse struct {
	Total        float64                 `json:"total"`
	TotalDisplay string                  `json:"total_display"`
	Categories   []categoryTotalResponse `json:"categories"`
	Count        int                     `json:"count"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func (s *Server) apiListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses := s.ledger.Snapshot()
	if expenses == nil {
		expenses = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"expenses": expenses})
}

func (s *Server) apiGetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}
	exp, ok := s.ledger.Get(id)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Expense not found")
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

// apiCreateExpense accepts {description, amount, category}; amount may be a
// JSON string or number.
func (s *Server) apiCreateExpense(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		if errors.Is(err, errBodyTooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "body_too_large", "Request body exceeds 64KB")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Request body must be a JSON object")
		return
	}

	exp, err := s.ledger.Add(r.Context(), ledger.AddInput{
		Description: p.Get("description"),
		Amount:      p.Get("amount"),
		Category:    p.Get("category"),
	})
	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "invalid_input",
			Message: verr.Error(),
			Fields:  verr.Fields,
		})
		return
	case err != nil:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Expense add failed", log.FieldOperation, log.OpAdd, log.FieldError, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to save expense")
		return
	}
	writeJSON(w, http.StatusCreated, exp)
}

func (s *Server) apiDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}
	removed, err := s.ledger.Delete(r.Context(), id)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Expense delete failed", log.FieldOperation, log.OpDelete, log.FieldExpenseID, id, log.FieldError, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to delete expense")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (s *Server) apiSummary(w http.ResponseWriter, r *http.Request) {
	summary := s.ledger.Summary()
	resp := summaryResponse{
		Total:        summary.TotalAmount(),
		TotalDisplay: core.FormatMoneyDecimal(s.currency, summary.Total),
		Categories:   make([]categoryTotalResponse, 0, len(summary.ByCategory)),
		Count:        summary.Count,
	}
	for _, ct := range summary.ByCategory {
		resp.Categories = append(resp.Categories, categoryTotalResponse{
			Category:     ct.Category.String(),
			Total:        ct.Amount(),
			TotalDisplay: core.FormatMoneyDecimal(s.currency, ct.Total),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": core.Categories(),
		"default":    core.DefaultCategory,
	})
}
