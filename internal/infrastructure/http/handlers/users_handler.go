package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/auth"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/http/middleware"
)

// UsersHandler handles /users/*. Requires AuthValidator; List and UpdateRole also need an admin.
type UsersHandler struct {
	list       *auth.ListUsers
	updateRole *auth.UpdateUserRole
	log        zerolog.Logger
}

func NewUsersHandler(list *auth.ListUsers, updateRole *auth.UpdateUserRole, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{list: list, updateRole: updateRole, log: log}
}

// Me returns the caller.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	respondJSON(w, h.log, http.StatusOK, userView(user))
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.list.Execute(r.Context())
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	items := make([]UserView, 0, len(users))
	for _, u := range users {
		items = append(items, userView(u))
	}
	respondJSON(w, h.log, http.StatusOK, items)
}

func (h *UsersHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Role string `json:"role"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	actor := middleware.UserFromContext(r.Context())
	user, err := h.updateRole.Execute(r.Context(), auth.UpdateUserRoleInput{
		UserID: domain.UserID(id),
		Role:   domain.Role(body.Role),
	})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	if actor != nil {
		AuditLog(h.log, r, "user.role_update", actor.ID.String(), true, "")
	}
	respondJSON(w, h.log, http.StatusOK, map[string]any{
		"message": "Role updated",
		"user":    userView(user),
	})
}
