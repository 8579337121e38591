package http

import (
	"net/http"

	"fbfinance/internal/log"
)

type adviceResponse struct {
	Advice string `json:"advice"`
}

// handleAdvice runs the analysis pipeline. Only one request may be in flight;
// concurrent callers get a 409 so the UI can keep its button disabled.
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if !s.adviceInFlight.CompareAndSwap(false, true) {
		respondError(w, http.StatusConflict, "uma análise já está em andamento")
		return
	}
	defer s.adviceInFlight.Store(false)

	snap, err := s.finance.Snapshot(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	text, err := s.adviser.RequestAdvice(r.Context(), snap)
	if err != nil {
		// The gateway degrades to fallback text instead of erroring; a
		// non-nil error here means something unexpected happened.
		s.logger.ErrorContext(r.Context(), "Advice request failed",
			log.FieldOperation, log.OpAdvice, log.FieldError, err)
		respondError(w, http.StatusBadGateway, "não foi possível gerar a análise")
		return
	}
	respondJSON(w, http.StatusOK, adviceResponse{Advice: text})
}
