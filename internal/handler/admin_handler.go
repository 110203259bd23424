package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	dashboard, err := h.StatsService.GetDashboard(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, dashboard, http.StatusOK)
}

func (h *Handlers) AdminGetUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	page, limit := pageParams(r)

	list, err := h.UserService.AdminListUsers(
		r.Context(),
		r.URL.Query().Get("search"),
		r.URL.Query().Get("role"),
		page, limit,
	)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, list, http.StatusOK)
}

func (h *Handlers) AdminUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	var body struct {
		Role string `json:"role" validate:"required,oneof=user admin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(body); err != nil {
		WriteError(w, "Роль должна быть user или admin", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.AdminChangeRole(r.Context(), adminID, mux.Vars(r)["id"], body.Role)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	if err := h.UserService.AdminDeleteUser(r.Context(), adminID, mux.Vars(r)["id"]); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пользователь успешно удален"}, http.StatusOK)
}

func (h *Handlers) AdminGetBlogs(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	page, limit := pageParams(r)

	list, err := h.BlogService.AdminListBlogs(
		r.Context(),
		r.URL.Query().Get("status"),
		r.URL.Query().Get("search"),
		page, limit,
	)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, list, http.StatusOK)
}

func (h *Handlers) AdminUpdateBlogStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var body struct {
		Status string `json:"status" validate:"required,oneof=draft published archived"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(body); err != nil {
		WriteError(w, "Статус должен быть draft, published или archived", http.StatusBadRequest)
		return
	}

	blog, err := h.BlogService.AdminSetStatus(r.Context(), mux.Vars(r)["id"], body.Status)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, blog, http.StatusOK)
}

func (h *Handlers) AdminGetComments(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	page, limit := pageParams(r)

	list, err := h.CommentService.AdminListComments(r.Context(), r.URL.Query().Get("search"), page, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, list, http.StatusOK)
}
