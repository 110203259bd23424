package handlers

import (
	"net/http"
	"strings"

	"blogsphere/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	profile, err := h.UserService.GetProfile(r.Context(), username, callerID(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, profile, http.StatusOK)
}

// UpdateProfile принимает multipart-форму: текстовые поля профиля
// плюс необязательный файл avatar
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
		return
	}

	avatar, file, err := h.imageFromForm(r, "avatar")
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.Close()
	}

	req := service.UpdateProfileRequest{UserID: userID, Avatar: avatar}

	formPtr := func(field string) *string {
		if !r.Form.Has(field) {
			return nil
		}
		v := r.FormValue(field)
		return &v
	}

	req.FirstName = formPtr("firstName")
	req.LastName = formPtr("lastName")
	req.Bio = formPtr("bio")
	req.Website = formPtr("website")
	req.Twitter = formPtr("twitter")
	req.LinkedIn = formPtr("linkedin")
	req.GitHub = formPtr("github")

	user, err := h.UserService.UpdateProfile(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

type FollowResponse struct {
	Message       string `json:"message"`
	IsFollowing   bool   `json:"isFollowing"`
	FollowerCount int    `json:"followerCount"`
}

func (h *Handlers) FollowUser(w http.ResponseWriter, r *http.Request) {
	followerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	isFollowing, followerCount, err := h.UserService.ToggleFollow(r.Context(), followerID, mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	message := "Вы отписались от пользователя"
	if isFollowing {
		message = "Вы подписались на пользователя"
	}

	WriteSuccess(w, FollowResponse{
		Message:       message,
		IsFollowing:   isFollowing,
		FollowerCount: followerCount,
	}, http.StatusOK)
}

func (h *Handlers) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	page, limit := pageParams(r)

	list, err := h.UserService.SearchUsers(r.Context(), query, page, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, list, http.StatusOK)
}

func (h *Handlers) GetMyDrafts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	page, limit := pageParams(r)

	list, err := h.BlogService.ListDrafts(r.Context(), userID, page, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, list, http.StatusOK)
}

func (h *Handlers) GetMyStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	stats, err := h.UserService.GetUserStats(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, stats, http.StatusOK)
}
