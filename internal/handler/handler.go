package handlers

import (
	"net/http"

	"blogsphere/internal/config"
	"blogsphere/internal/repository"
	"blogsphere/internal/service"

	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	AuthService    service.AuthService
	BlogService    service.BlogService
	CommentService service.CommentService
	UserService    service.UserService
	StatsService   service.StatsService
	UserRepo       repository.UserRepository
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		BlogService:    service.Blog,
		CommentService: service.Comment,
		UserService:    service.User,
		StatsService:   service.Stats,
		UserRepo:       repo.User,
		Cfg:            config,
		Validate:       validator.New(),
	}
}

// callerID достаёт id пользователя из контекста; пустая строка - аноним
func callerID(r *http.Request) string {
	userID, _ := r.Context().Value("userID").(string)
	return userID
}

func callerRole(r *http.Request) string {
	role, _ := r.Context().Value("role").(string)
	return role
}

// requireUser возвращает id аутентифицированного пользователя либо пишет 401
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := callerID(r)
	if userID == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

func requireAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return "", false
	}
	if callerRole(r) != "admin" {
		WriteError(w, "Требуется роль администратора", http.StatusForbidden)
		return "", false
	}
	return userID, true
}
