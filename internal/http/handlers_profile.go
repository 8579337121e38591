package http

import (
	"net/http"

	"fbfinance/internal/accounts"
	"fbfinance/internal/core"
)

type updateProfileRequest struct {
	Name          *string `json:"name"`
	ProfilePic    *string `json:"profilePic"`
	MonthlyIncome *string `json:"monthlyIncome"`
}

type themeRequest struct {
	PrimaryColor string `json:"primaryColor"`
	DarkMode     bool   `json:"darkMode"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	patch := accounts.ProfilePatch{}
	if req.Name != nil {
		name := sanitizeInput(*req.Name)
		patch.Name = &name
	}
	if req.ProfilePic != nil {
		pic := sanitizeInput(*req.ProfilePic)
		patch.ProfilePic = &pic
	}
	if req.MonthlyIncome != nil {
		// Zero is a valid income: clearing the field must round-trip.
		cents, err := core.ParseDecimalToNonnegativeCents(*req.MonthlyIncome)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "renda mensal inválida")
			return
		}
		patch.MonthlyIncomeCents = &cents
	}

	profile, err := s.finance.UpdateProfile(r.Context(), patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	theme := core.ThemeConfig{PrimaryColor: sanitizeInput(req.PrimaryColor), DarkMode: req.DarkMode}
	if theme.PrimaryColor == "" {
		theme.PrimaryColor = core.DefaultPrimaryColor
	}
	if err := s.finance.SetTheme(r.Context(), theme); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, theme)
}
