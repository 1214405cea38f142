// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"giftgenie/internal/ai"
	"giftgenie/internal/modules/gifts"
	"giftgenie/internal/modules/usage"
	"giftgenie/internal/providers"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, code, msg string) {
	writeJSON(c, status, errorResponse{Error: code, Message: msg})
}

// writeGiftError maps pipeline sentinels onto the error payload shape.
// Idea-level failures never reach here; only request-level ones do.
func writeGiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gifts.ErrBadRequest):
		writeError(c, http.StatusBadRequest, "bad_request", "Nieprawidłowe dane zapytania.")
	case errors.Is(err, gifts.ErrNoResults):
		writeError(c, http.StatusNotFound, "no_results",
			"Nie znaleziono produktów pasujących do kryteriów. Spróbuj zmienić parametry wyszukiwania lub zwiększyć budżet.")
	case errors.Is(err, ai.ErrInvalidResponse):
		writeError(c, http.StatusInternalServerError, "generation_failed",
			"AI zwróciło nieprawidłowy format odpowiedzi.")
	case errors.Is(err, providers.ErrNotConfigured):
		writeError(c, http.StatusInternalServerError, "not_configured", err.Error())
	case errors.Is(err, providers.ErrAuth):
		writeError(c, http.StatusBadGateway, "upstream_auth",
			"Autoryzacja w serwisie produktowym nie powiodła się.")
	case errors.Is(err, usage.ErrQuotaExhausted):
		writeError(c, http.StatusTooManyRequests, "quota_exhausted",
			"Limit generowań na ten miesiąc został wyczerpany.")
	default:
		writeError(c, http.StatusInternalServerError, "internal", "Błąd generowania propozycji.")
	}
}
