package http

import (
	"net/http"

	"fbfinance/internal/core"
	"fbfinance/internal/services"
)

type createGoalRequest struct {
	Name          string `json:"name"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount"`
	Deadline      string `json:"deadline"`
	Color         string `json:"color"`
}

type depositRequest struct {
	Amount string `json:"amount"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	target, err := core.ParseDecimalToCents(req.TargetAmount)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "valor da meta inválido")
		return
	}
	var current int64
	if req.CurrentAmount != "" {
		// An explicit "0" is as valid as an omitted field.
		current, err = core.ParseDecimalToNonnegativeCents(req.CurrentAmount)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "valor inicial inválido")
			return
		}
	}
	deadline, err := parseDateOrToday(req.Deadline)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "data inválida, use AAAA-MM-DD")
		return
	}

	g, err := s.finance.AddGoal(r.Context(), services.GoalInput{
		Name:         sanitizeInput(req.Name),
		TargetCents:  target,
		CurrentCents: current,
		Deadline:     deadline,
		Color:        sanitizeInput(req.Color),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, g)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "id obrigatório")
		return
	}
	if err := s.finance.DeleteGoal(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGoalDeposit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "id obrigatório")
		return
	}
	var req depositRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "valor inválido")
		return
	}

	g, err := s.finance.ApplyDeposit(r.Context(), id, cents)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}
