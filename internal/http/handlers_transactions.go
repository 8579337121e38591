package http

import (
	"net/http"

	"fbfinance/internal/core"
	"fbfinance/internal/services"
)

type createTransactionRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Date        string `json:"date"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "valor inválido")
		return
	}
	date, err := parseDateOrToday(req.Date)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "data inválida, use AAAA-MM-DD")
		return
	}

	tx, err := s.finance.AddTransaction(r.Context(), services.TransactionInput{
		Description: sanitizeInput(req.Description),
		AmountCents: cents,
		Category:    sanitizeInput(req.Category),
		Type:        core.TransactionType(req.Type),
		Date:        date,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "id obrigatório")
		return
	}
	if err := s.finance.DeleteTransaction(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
