package handlers

import (
	"encoding/json"
	"net/http"

	"blogsphere/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	blogID := mux.Vars(r)["blogId"]
	page, limit := pageParams(r)

	list, err := h.CommentService.ListTopLevel(r.Context(), blogID, page, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, list, http.StatusOK)
}

func (h *Handlers) GetCommentReplies(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["id"]
	page, limit := pageParams(r)

	list, err := h.CommentService.ListReplies(r.Context(), commentID, page, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, list, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	authorID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Content  string `json:"content" validate:"required,min=1,max=1000"`
		ParentID string `json:"parentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(body); err != nil {
		WriteError(w, "Комментарий должен содержать от 1 до 1000 символов", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.CreateComment(r.Context(), service.CreateCommentRequest{
		AuthorID: authorID,
		BlogID:   mux.Vars(r)["blogId"],
		Content:  body.Content,
		ParentID: body.ParentID,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Content string `json:"content" validate:"required,min=1,max=1000"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(body); err != nil {
		WriteError(w, "Комментарий должен содержать от 1 до 1000 символов", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.UpdateComment(r.Context(), mux.Vars(r)["id"], userID, body.Content)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	err := h.CommentService.DeleteComment(r.Context(), mux.Vars(r)["id"], userID, callerRole(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Комментарий успешно удален"}, http.StatusOK)
}

func (h *Handlers) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	hasLiked, likeCount, err := h.CommentService.ToggleLike(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	message := "Лайк снят"
	if hasLiked {
		message = "Лайк поставлен"
	}

	WriteSuccess(w, LikeResponse{Message: message, LikeCount: likeCount, HasLiked: hasLiked}, http.StatusOK)
}
