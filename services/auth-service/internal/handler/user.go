package handler

import (
	"net/http"
	"strconv"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/payload"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/repository"
)

// ListUsers is a pass-through listing endpoint with pagination and simple
// filters.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := repository.FilterUsersParams{}

	q := r.URL.Query()
	if email := q.Get("email"); email != "" {
		params.Email = &email
	}
	if role := q.Get("role"); role != "" {
		params.Role = &role
	}
	if limit, err := strconv.ParseUint(q.Get("limit"), 10, 64); err == nil {
		params.Limit = limit
	}
	if offset, err := strconv.ParseUint(q.Get("offset"), 10, 64); err == nil {
		params.Offset = offset
	}
	if sortBy := q.Get("sortBy"); sortBy != "" {
		params.SortBy = &sortBy
	}
	params.SortDesc = q.Get("order") == "desc"

	users, err := h.userRepo.ListUsers(r.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list users")
		h.respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	resp := make([]payload.UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, payload.UserResponse{
			ID:        user.ID.Hex(),
			Email:     user.Email,
			Phone:     user.Phone,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      user.Role,
			StudentID: user.StudentID.Hex(),
			CreatedAt: user.CreatedAt,
		})
	}

	h.respondJSON(w, http.StatusOK, resp)
}
