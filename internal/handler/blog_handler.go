package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"blogsphere/internal/service"

	"github.com/gorilla/mux"
)

// форматы, которые принимаем в качестве изображений
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

// imageFromForm достаёт прикреплённый файл из multipart-формы;
// nil без ошибки, если файла нет
func (h *Handlers) imageFromForm(r *http.Request, field string) (*service.ImageUpload, multipart.File, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		file.Close()
		return nil, nil, errUnsupportedImage
	}

	return &service.ImageUpload{
		FileName: header.Filename,
		File:     file,
		Size:     header.Size,
	}, file, nil
}

var errUnsupportedImage = errors.New("неподдерживаемый тип файла, разрешены: JPEG, PNG, GIF, WebP")

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (h *Handlers) GetBlogs(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	list, err := h.BlogService.ListBlogs(r.Context(), service.ListBlogsRequest{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		AuthorID: r.URL.Query().Get("author"),
		Sort:     r.URL.Query().Get("sort"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, list, http.StatusOK)
}

func (h *Handlers) GetBlog(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	blog, err := h.BlogService.GetBlogBySlug(r.Context(), slug, callerID(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, blog, http.StatusOK)
}

func (h *Handlers) GetUserBlogs(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	page, limit := pageParams(r)

	list, err := h.BlogService.ListUserBlogs(r.Context(), userID, page, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, list, http.StatusOK)
}

func (h *Handlers) CreateBlog(w http.ResponseWriter, r *http.Request) {
	authorID, ok := requireUser(w, r)
	if !ok {
		return
	}

	req := service.CreateBlogRequest{AuthorID: authorID}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
			return
		}

		image, file, err := h.imageFromForm(r, "featuredImage")
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if file != nil {
			defer file.Close()
		}

		req.Title = r.FormValue("title")
		req.Content = r.FormValue("content")
		req.Category = r.FormValue("category")
		req.Excerpt = r.FormValue("excerpt")
		req.Status = r.FormValue("status")
		req.Tags = splitTags(r.FormValue("tags"))
		req.Image = image
	} else {
		var body struct {
			Title    string   `json:"title"`
			Content  string   `json:"content"`
			Category string   `json:"category"`
			Excerpt  string   `json:"excerpt"`
			Status   string   `json:"status"`
			Tags     []string `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}

		req.Title = body.Title
		req.Content = body.Content
		req.Category = body.Category
		req.Excerpt = body.Excerpt
		req.Status = body.Status
		req.Tags = body.Tags
	}

	blog, err := h.BlogService.CreateBlog(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, blog, http.StatusCreated)
}

func (h *Handlers) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	req := service.UpdateBlogRequest{
		BlogID:     mux.Vars(r)["id"],
		CallerID:   userID,
		CallerRole: callerRole(r),
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
			return
		}

		image, file, err := h.imageFromForm(r, "featuredImage")
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if file != nil {
			defer file.Close()
		}
		req.Image = image

		if v := r.FormValue("title"); v != "" {
			req.Title = &v
		}
		if v := r.FormValue("content"); v != "" {
			req.Content = &v
		}
		if v := r.FormValue("category"); v != "" {
			req.Category = &v
		}
		if v := r.FormValue("excerpt"); v != "" {
			req.Excerpt = &v
		}
		if v := r.FormValue("status"); v != "" {
			req.Status = &v
		}
		if v := r.FormValue("tags"); v != "" {
			req.Tags = splitTags(v)
		}
	} else {
		var body struct {
			Title    *string  `json:"title"`
			Content  *string  `json:"content"`
			Category *string  `json:"category"`
			Excerpt  *string  `json:"excerpt"`
			Status   *string  `json:"status"`
			Tags     []string `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}

		req.Title = body.Title
		req.Content = body.Content
		req.Category = body.Category
		req.Excerpt = body.Excerpt
		req.Status = body.Status
		req.Tags = body.Tags
	}

	blog, err := h.BlogService.UpdateBlog(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, blog, http.StatusOK)
}

func (h *Handlers) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	err := h.BlogService.DeleteBlog(r.Context(), mux.Vars(r)["id"], userID, callerRole(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Блог успешно удален"}, http.StatusOK)
}

type LikeResponse struct {
	Message   string `json:"message"`
	LikeCount int    `json:"likeCount"`
	HasLiked  bool   `json:"hasLiked"`
}

func (h *Handlers) ToggleBlogLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	hasLiked, likeCount, err := h.BlogService.ToggleLike(r.Context(), mux.Vars(r)["id"], userID)
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
