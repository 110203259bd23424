package service

import (
	"io"

	"blogsphere/internal/config"
	"blogsphere/internal/repository"
	"blogsphere/internal/storage"
)

type Service struct {
	Auth    AuthService
	Blog    BlogService
	Comment CommentService
	User    UserService
	Stats   StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		Blog:    NewBlogService(rep.Blog, rep.Comment, rep.User, storage),
		Comment: NewCommentService(rep.Comment, rep.Blog, rep.User),
		User:    NewUserService(rep.User, rep.Blog, rep.Stats, storage),
		Stats:   NewStatsService(rep.Stats),
	}
}

// ImageUpload - прикреплённый к запросу файл изображения
type ImageUpload struct {
	FileName string
	File     io.Reader
	Size     int64
}

// Pagination - блок пагинации в ответах списков
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	Total       int  `json:"total"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

func NewPagination(page, limit, total int) Pagination {
	totalPages := (total + limit - 1) / limit
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
