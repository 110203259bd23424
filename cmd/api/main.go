package main

import (
	"fmt"
	"log"
	"net/http"

	"blogsphere/cmd/app"
	"blogsphere/internal/config"
	handlers "blogsphere/internal/handler"
	"blogsphere/internal/middleware"

	"github.com/gorilla/mux"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// auth
	api.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", handler.GetCurrentUser).Methods(http.MethodGet)

	// blogs
	api.HandleFunc("/blogs", handler.GetBlogs).Methods(http.MethodGet)
	api.HandleFunc("/blogs", handler.CreateBlog).Methods(http.MethodPost)
	api.HandleFunc("/blogs/user/{userId}", handler.GetUserBlogs).Methods(http.MethodGet)
	api.HandleFunc("/blogs/{slug}", handler.GetBlog).Methods(http.MethodGet)
	api.HandleFunc("/blogs/{id}", handler.UpdateBlog).Methods(http.MethodPut)
	api.HandleFunc("/blogs/{id}", handler.DeleteBlog).Methods(http.MethodDelete)
	api.HandleFunc("/blogs/{id}/like", handler.ToggleBlogLike).Methods(http.MethodPost)

	// comments
	api.HandleFunc("/comments/blog/{blogId}", handler.GetComments).Methods(http.MethodGet)
	api.HandleFunc("/comments/blog/{blogId}", handler.CreateComment).Methods(http.MethodPost)
	api.HandleFunc("/comments/{id}/replies", handler.GetCommentReplies).Methods(http.MethodGet)
	api.HandleFunc("/comments/{id}", handler.UpdateComment).Methods(http.MethodPut)
	api.HandleFunc("/comments/{id}", handler.DeleteComment).Methods(http.MethodDelete)
	api.HandleFunc("/comments/{id}/like", handler.ToggleCommentLike).Methods(http.MethodPost)

	// users
	api.HandleFunc("/users/profile/{username}", handler.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/users/profile", handler.UpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/users/follow/{id}", handler.FollowUser).Methods(http.MethodPost)
	api.HandleFunc("/users/search", handler.SearchUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/me/drafts", handler.GetMyDrafts).Methods(http.MethodGet)
	api.HandleFunc("/users/me/stats", handler.GetMyStats).Methods(http.MethodGet)

	// admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/dashboard", handler.AdminDashboard).Methods(http.MethodGet)
	admin.HandleFunc("/users", handler.AdminGetUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/role", handler.AdminUpdateUserRole).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", handler.AdminDeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/blogs", handler.AdminGetBlogs).Methods(http.MethodGet)
	admin.HandleFunc("/blogs/{id}/status", handler.AdminUpdateBlogStatus).Methods(http.MethodPut)
	admin.HandleFunc("/blogs/{id}", handler.DeleteBlog).Methods(http.MethodDelete)
	admin.HandleFunc("/comments", handler.AdminGetComments).Methods(http.MethodGet)
	admin.HandleFunc("/comments/{id}", handler.DeleteComment).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
