package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"blogsphere/internal/apperrors"
	"blogsphere/internal/models"
	"blogsphere/internal/repository"
	"blogsphere/internal/storage"
)

const slugRetries = 3

type CreateBlogRequest struct {
	AuthorID string
	Title    string
	Content  string
	Category string
	Tags     []string
	Excerpt  string
	Status   string
	Image    *ImageUpload
}

type UpdateBlogRequest struct {
	BlogID     string
	CallerID   string
	CallerRole string
	Title      *string
	Content    *string
	Category   *string
	Tags       []string
	Excerpt    *string
	Status     *string
	Image      *ImageUpload
}

type ListBlogsRequest struct {
	Category string
	Search   string
	AuthorID string
	Sort     string
	Page     int
	Limit    int
}

type BlogList struct {
	Blogs      []models.Blog `json:"blogs"`
	Pagination Pagination    `json:"pagination"`
}

type BlogService interface {
	CreateBlog(ctx context.Context, req CreateBlogRequest) (*models.Blog, error)
	UpdateBlog(ctx context.Context, req UpdateBlogRequest) (*models.Blog, error)
	DeleteBlog(ctx context.Context, blogID, callerID, callerRole string) error
	GetBlogBySlug(ctx context.Context, slug, viewerID string) (*models.Blog, error)
	ToggleLike(ctx context.Context, blogID, userID string) (bool, int, error)
	ListBlogs(ctx context.Context, req ListBlogsRequest) (*BlogList, error)
	ListUserBlogs(ctx context.Context, authorID string, page, limit int) (*BlogList, error)
	ListDrafts(ctx context.Context, authorID string, page, limit int) (*BlogList, error)
	AdminListBlogs(ctx context.Context, status, search string, page, limit int) (*BlogList, error)
	AdminSetStatus(ctx context.Context, blogID, status string) (*models.Blog, error)
}

type blogService struct {
	blogRepo    repository.BlogRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	storage     storage.Storage
}

func NewBlogService(blogRepo repository.BlogRepository, commentRepo repository.CommentRepository,
	userRepo repository.UserRepository, storage storage.Storage) BlogService {
	return &blogService{
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		storage:     storage,
	}
}

func validateBlogInput(title, content, category, excerpt string) error {
	ve := &apperrors.ValidationError{}

	if len([]rune(title)) < 1 || len([]rune(title)) > 100 {
		ve.Add("title", "заголовок должен быть от 1 до 100 символов")
	}
	if content == "" {
		ve.Add("content", "содержимое обязательно")
	}
	if !models.IsValidCategory(category) {
		ve.Add("category", "неизвестная категория")
	}
	if len([]rune(excerpt)) > 300 {
		ve.Add("excerpt", "выдержка не может превышать 300 символов")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

func (s *blogService) CreateBlog(ctx context.Context, req CreateBlogRequest) (*models.Blog, error) {
	if req.Status == "" {
		req.Status = models.StatusDraft
	}

	if err := validateBlogInput(req.Title, req.Content, req.Category, req.Excerpt); err != nil {
		return nil, err
	}
	if !models.IsValidStatus(req.Status) {
		return nil, apperrors.NewValidationError("status", "неизвестный статус")
	}

	featuredImage := ""
	if req.Image != nil {
		_, imageURL, err := s.storage.UploadImage(ctx, "blogs", req.Image.FileName, req.Image.File, req.Image.Size)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки изображения: %w", err)
		}
		featuredImage = imageURL
	}

	blog := &models.Blog{
		AuthorID:      req.AuthorID,
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       DeriveExcerpt(req.Excerpt, req.Content),
		FeaturedImage: featuredImage,
		Category:      req.Category,
		Tags:          models.JoinTags(req.Tags),
		Status:        req.Status,
		ReadTime:      ComputeReadTime(req.Content),
	}

	if req.Status == models.StatusPublished {
		blog.IsPublished = true
		blog.PublishedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}

	// временной суффикс делает slug уникальным; на случай гонки с одинаковым
	// заголовком в ту же миллисекунду повторяем с новым суффиксом
	var err error
	for attempt := 0; attempt < slugRetries; attempt++ {
		blog.Slug = MakeSlug(req.Title, time.Now())
		blog.BlogID = ""

		err = s.blogRepo.Create(ctx, blog)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		time.Sleep(time.Millisecond)
	}
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetAuthorSummary(ctx, blog.AuthorID)
	if err != nil {
		return nil, err
	}
	blog.Author = author

	return blog, nil
}

func (s *blogService) UpdateBlog(ctx context.Context, req UpdateBlogRequest) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, req.BlogID)
	if err != nil {
		return nil, err
	}

	if blog.AuthorID != req.CallerID && req.CallerRole != models.RoleAdmin {
		return nil, apperrors.Forbidden("нет прав на изменение этого блога")
	}

	if req.Title != nil && *req.Title != blog.Title {
		blog.Title = *req.Title
		// slug пересчитывается только при смене заголовка
		blog.Slug = MakeSlug(blog.Title, time.Now())
	}
	if req.Content != nil && *req.Content != blog.Content {
		blog.Content = *req.Content
		blog.ReadTime = ComputeReadTime(blog.Content)
	}
	if req.Category != nil {
		blog.Category = *req.Category
	}
	if req.Tags != nil {
		blog.Tags = models.JoinTags(req.Tags)
	}
	if req.Status != nil {
		if !models.IsValidStatus(*req.Status) {
			return nil, apperrors.NewValidationError("status", "неизвестный статус")
		}
		applyStatus(blog, *req.Status)
	}

	// явная выдержка проходит ту же проверку длины, что и при создании
	excerpt := ""
	if req.Excerpt != nil {
		excerpt = *req.Excerpt
	}
	if err := validateBlogInput(blog.Title, blog.Content, blog.Category, excerpt); err != nil {
		return nil, err
	}
	if req.Excerpt != nil {
		blog.Excerpt = DeriveExcerpt(*req.Excerpt, blog.Content)
	}

	oldImage := blog.FeaturedImage
	if req.Image != nil {
		_, imageURL, err := s.storage.UploadImage(ctx, "blogs", req.Image.FileName, req.Image.File, req.Image.Size)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки изображения: %w", err)
		}
		blog.FeaturedImage = imageURL
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}

	// прежняя обложка больше никем не используется
	if req.Image != nil && oldImage != "" && oldImage != blog.FeaturedImage {
		if err := s.storage.DeleteImage(ctx, oldImage); err != nil {
			log.Printf("Не удалось удалить старое изображение %s: %v", oldImage, err)
		}
	}

	author, err := s.userRepo.GetAuthorSummary(ctx, blog.AuthorID)
	if err != nil {
		return nil, err
	}
	blog.Author = author

	return blog, nil
}

// applyStatus переводит блог в новый статус. Дата первой публикации ставится
// один раз и больше не меняется: архивация и повторная публикация
// переключают только is_published.
func applyStatus(blog *models.Blog, status string) {
	blog.Status = status

	if status == models.StatusPublished {
		blog.IsPublished = true
		if !blog.PublishedAt.Valid {
			blog.PublishedAt = sql.NullTime{Time: time.Now(), Valid: true}
		}
	} else {
		blog.IsPublished = false
	}
}

func (s *blogService) DeleteBlog(ctx context.Context, blogID, callerID, callerRole string) error {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return err
	}

	if blog.AuthorID != callerID && callerRole != models.RoleAdmin {
		return apperrors.Forbidden("нет прав на удаление этого блога")
	}

	return s.blogRepo.Delete(ctx, blogID)
}

// GetBlogBySlug отдаёт опубликованный блог и безусловно увеличивает счётчик
// просмотров - дедупликации по читателю нет
func (s *blogService) GetBlogBySlug(ctx context.Context, slug, viewerID string) (*models.Blog, error) {
	blog, err := s.blogRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if blog.Status != models.StatusPublished {
		return nil, apperrors.NotFound("блог")
	}

	if err := s.blogRepo.IncrementViews(ctx, blog.BlogID); err != nil {
		return nil, err
	}
	blog.Views++

	if err := s.attachMeta(ctx, blog, viewerID); err != nil {
		return nil, err
	}

	return blog, nil
}

func (s *blogService) ToggleLike(ctx context.Context, blogID, userID string) (bool, int, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return false, 0, err
	}

	return s.blogRepo.ToggleLike(ctx, blogID, userID)
}

func (s *blogService) ListBlogs(ctx context.Context, req ListBlogsRequest) (*BlogList, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	filter := repository.BlogFilter{
		Status:   models.StatusPublished,
		Category: req.Category,
		AuthorID: req.AuthorID,
		Search:   req.Search,
		Sort:     req.Sort,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	blogs, total, err := s.blogRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.attachMetaAll(ctx, blogs); err != nil {
		return nil, err
	}

	return &BlogList{Blogs: blogs, Pagination: NewPagination(page, limit, total)}, nil
}

func (s *blogService) ListUserBlogs(ctx context.Context, authorID string, page, limit int) (*BlogList, error) {
	if _, err := s.userRepo.GetUserByID(ctx, authorID); err != nil {
		return nil, err
	}

	return s.ListBlogs(ctx, ListBlogsRequest{AuthorID: authorID, Page: page, Limit: limit})
}

func (s *blogService) ListDrafts(ctx context.Context, authorID string, page, limit int) (*BlogList, error) {
	page, limit = normalizePage(page, limit)

	filter := repository.BlogFilter{
		Status:   models.StatusDraft,
		AuthorID: authorID,
		Sort:     "recent",
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	blogs, total, err := s.blogRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &BlogList{Blogs: blogs, Pagination: NewPagination(page, limit, total)}, nil
}

func (s *blogService) AdminListBlogs(ctx context.Context, status, search string, page, limit int) (*BlogList, error) {
	page, limit = normalizePage(page, limit)

	filter := repository.BlogFilter{
		Status: status,
		Search: search,
		Sort:   "recent",
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	blogs, total, err := s.blogRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.attachMetaAll(ctx, blogs); err != nil {
		return nil, err
	}

	return &BlogList{Blogs: blogs, Pagination: NewPagination(page, limit, total)}, nil
}

func (s *blogService) AdminSetStatus(ctx context.Context, blogID, status string) (*models.Blog, error) {
	if !models.IsValidStatus(status) {
		return nil, apperrors.NewValidationError("status", "неизвестный статус")
	}

	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	applyStatus(blog, status)

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

// attachMeta наполняет расчётные поля: автора, счётчики и лайк зрителя
func (s *blogService) attachMeta(ctx context.Context, blog *models.Blog, viewerID string) error {
	author, err := s.userRepo.GetAuthorSummary(ctx, blog.AuthorID)
	if err != nil {
		return err
	}
	blog.Author = author

	blog.LikeCount, err = s.blogRepo.CountLikes(ctx, blog.BlogID)
	if err != nil {
		return err
	}

	blog.CommentCount, err = s.commentRepo.CountByBlog(ctx, blog.BlogID)
	if err != nil {
		return err
	}

	if viewerID != "" {
		blog.HasLiked, err = s.blogRepo.HasLiked(ctx, blog.BlogID, viewerID)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *blogService) attachMetaAll(ctx context.Context, blogs []models.Blog) error {
	for i := range blogs {
		if err := s.attachMeta(ctx, &blogs[i], ""); err != nil {
			return err
		}
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return page, limit
}
