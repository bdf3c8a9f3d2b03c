package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response body")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorResponse{Error: message})
}

// decodeAndValidate decodes the JSON request body into v and validates it,
// writing the error response itself when either fails.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return h.validateStruct(w, v)
}

func (h *Handler) validateStruct(w http.ResponseWriter, v any) bool {
	if err := h.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				details = append(details, fe.Translate(h.trans))
			}
			h.respondJSON(w, http.StatusBadRequest, errorResponse{
				Error:   "validation failed",
				Details: details,
			})
			return false
		}

		h.respondError(w, http.StatusBadRequest, "validation failed")
		return false
	}
	return true
}
