package http

import (
	"net/http"

	"fbfinance/internal/services"
)

// dashboardResponse decorates the service dashboard with display strings so
// clients do not reimplement currency formatting.
type dashboardResponse struct {
	services.Dashboard
	BalanceDisplay string `json:"balanceDisplay"`
	IncomeDisplay  string `json:"incomeDisplay"`
	ExpenseDisplay string `json:"expenseDisplay"`
}

// handleDashboard returns totals, the trailing seven-day series, and goal
// progress. An optional ?date=YYYY-MM-DD query pins the series' last day.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ref, err := parseDateOrToday(r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "data inválida, use AAAA-MM-DD")
		return
	}

	d, err := s.finance.Dashboard(r.Context(), ref)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dashboardResponse{
		Dashboard:      d,
		BalanceDisplay: formatBRL(d.Totals.BalanceCents),
		IncomeDisplay:  formatBRL(d.Totals.IncomeCents),
		ExpenseDisplay: formatBRL(d.Totals.ExpenseCents),
	})
}
