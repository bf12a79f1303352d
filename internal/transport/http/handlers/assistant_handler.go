package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/chitchat-app/chitchat/internal/gemini"
	"github.com/chitchat-app/chitchat/internal/service"
	"github.com/chitchat-app/chitchat/internal/transport/http/middleware"
)

type AssistantHandler struct {
	assistantService *service.AssistantService
}

func NewAssistantHandler(assistantService *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// Quota feeds the client's remaining-questions display and countdown.
func (h *AssistantHandler) Quota(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	status, err := h.assistantService.Quota(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR assistant quota: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.assistantService.Ask(r.Context(), userID, input.Question)
	if err != nil {
		var quotaErr *service.QuotaExceededError
		switch {
		case errors.Is(err, service.ErrEmptyQuestion):
			writeError(w, http.StatusBadRequest, "EMPTY_QUESTION", "Question is required")
		case errors.As(err, &quotaErr):
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int64(quotaErr.ResetIn.Seconds())))
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error": map[string]any{
					"code":     "QUOTA_EXHAUSTED",
					"message":  "Question limit reached",
					"reset_in": int64(quotaErr.ResetIn.Seconds()),
				},
			})
		case errors.Is(err, gemini.ErrUpstream):
			// The question was already charged; say so.
			log.Printf("ERROR assistant upstream: %v", err)
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"error": map[string]any{
					"code":    "UPSTREAM",
					"message": "The assistant could not answer, please try again",
					"charged": true,
				},
			})
		default:
			log.Printf("ERROR assistant ask: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
