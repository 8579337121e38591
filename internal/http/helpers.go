package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fbfinance/internal/accounts"
	"fbfinance/internal/core"
	"fbfinance/internal/services"
	"fbfinance/internal/session"
)

// maxBodyBytes bounds request bodies; every payload here is a small JSON object.
const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON parses the request body into dst, rejecting unknown fields and
// oversized payloads.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// respondServiceError maps domain errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNoSession):
		respondError(w, http.StatusUnauthorized, "nenhuma sessão ativa")
	case errors.Is(err, accounts.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "e-mail ou senha inválidos")
	case errors.Is(err, accounts.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, "este e-mail já está cadastrado")
	case errors.Is(err, accounts.ErrMissingFields):
		respondError(w, http.StatusBadRequest, "preencha todos os campos")
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "item não encontrado")
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrLongDescription),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrInvalidDate):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "erro interno")
	}
}

// parseDateOrToday parses a YYYY-MM-DD value, defaulting to today when empty.
func parseDateOrToday(v string) (core.Date, error) {
	if strings.TrimSpace(v) == "" {
		now := time.Now()
		return core.NewDate(now.Year(), int(now.Month()), now.Day()), nil
	}
	return core.ParseDate(v)
}

// formatBRL formats cents as a Brazilian Real currency string (e.g. "R$ 12,34").
func formatBRL(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	reais := cents / 100
	rem := cents % 100
	s := strconv.FormatInt(reais, 10) + "," + fmt.Sprintf("%02d", rem)
	if neg {
		return "-R$ " + s
	}
	return "R$ " + s
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
