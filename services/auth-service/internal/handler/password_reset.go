package handler

import (
	"errors"
	"net/http"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/payload"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/usecase"
)

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.passwordResetUsecase.RequestReset(r.Context(), req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidPhoneNumber):
			h.respondError(w, http.StatusBadRequest, "invalid phone number format")
		case errors.Is(err, usecase.ErrAccountNotFound):
			h.respondError(w, http.StatusNotFound, "no account exists for this phone number")
		default:
			h.logger.Error().Err(err).Msg("failed to request password reset")
			h.respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "verification code sent"})
}

func (h *Handler) ConfirmCode(w http.ResponseWriter, r *http.Request) {
	var req payload.ConfirmCodeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resetToken, err := h.passwordResetUsecase.ConfirmCode(r.Context(), req.Phone, req.Code)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCode) {
			h.respondError(w, http.StatusUnauthorized, "invalid or expired verification code")
			return
		}

		h.logger.Error().Err(err).Msg("failed to confirm verification code")
		h.respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	h.respondJSON(w, http.StatusOK, payload.ConfirmCodeResponse{ResetToken: resetToken})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.passwordResetUsecase.ResetPassword(r.Context(), req.ResetToken, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidResetToken):
			h.respondError(w, http.StatusUnauthorized, "invalid or expired password reset token")
		case errors.Is(err, usecase.ErrAccountNotFound):
			h.respondError(w, http.StatusNotFound, "no account exists for this phone number")
		default:
			h.logger.Error().Err(err).Msg("failed to reset password")
			h.respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}
