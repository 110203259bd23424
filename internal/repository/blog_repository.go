package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogsphere/internal/apperrors"
	"blogsphere/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type BlogRepositoryImpl struct {
	db *sqlx.DB
}

func NewBlogRepository(db *sqlx.DB) *BlogRepositoryImpl {
	return &BlogRepositoryImpl{db: db}
}

func (r *BlogRepositoryImpl) Create(ctx context.Context, blog *models.Blog) error {
	if blog.BlogID == "" {
		blog.BlogID = uuid.New().String()
	}

	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	query := `
		INSERT INTO blogs
		(blog_id, author_id, title, content, excerpt, featured_image, category, tags,
		 status, views, read_time, slug, is_published, published_at, created_at, updated_at)
		VALUES
		(:blog_id, :author_id, :title, :content, :excerpt, :featured_image, :category, :tags,
		 :status, :views, :read_time, :slug, :is_published, :published_at, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, blog)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") &&
			strings.Contains(err.Error(), "slug") {
			return apperrors.Conflict("slug уже занят")
		}
		return fmt.Errorf("ошибка при создании блога: %w", err)
	}

	return nil
}

func (r *BlogRepositoryImpl) GetByID(ctx context.Context, blogID string) (*models.Blog, error) {
	query := `SELECT * FROM blogs WHERE blog_id = $1`

	var blog models.Blog
	err := r.db.GetContext(ctx, &blog, query, blogID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("блог")
		}
		return nil, fmt.Errorf("ошибка при получении блога: %w", err)
	}

	return &blog, nil
}

func (r *BlogRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	query := `SELECT * FROM blogs WHERE slug = $1`

	var blog models.Blog
	err := r.db.GetContext(ctx, &blog, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("блог")
		}
		return nil, fmt.Errorf("ошибка при получении блога по slug: %w", err)
	}

	return &blog, nil
}

func (r *BlogRepositoryImpl) Update(ctx context.Context, blog *models.Blog) error {
	blog.UpdatedAt = time.Now()

	query := `
		UPDATE blogs SET
			title = :title,
			content = :content,
			excerpt = :excerpt,
			featured_image = :featured_image,
			category = :category,
			tags = :tags,
			status = :status,
			read_time = :read_time,
			slug = :slug,
			is_published = :is_published,
			published_at = :published_at,
			updated_at = :updated_at
		WHERE blog_id = :blog_id
	`

	result, err := r.db.NamedExecContext(ctx, query, blog)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") &&
			strings.Contains(err.Error(), "slug") {
			return apperrors.Conflict("slug уже занят")
		}
		return fmt.Errorf("ошибка при обновлении блога: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("блог")
	}

	return nil
}

// Delete удаляет блог; комментарии и лайки уходят каскадом по внешним ключам
func (r *BlogRepositoryImpl) Delete(ctx context.Context, blogID string) error {
	query := `DELETE FROM blogs WHERE blog_id = $1`

	result, err := r.db.ExecContext(ctx, query, blogID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении блога: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("блог")
	}

	return nil
}

// IncrementViews увеличивает счётчик просмотров на 1 при каждом чтении
func (r *BlogRepositoryImpl) IncrementViews(ctx context.Context, blogID string) error {
	query := `UPDATE blogs SET views = views + 1 WHERE blog_id = $1`

	_, err := r.db.ExecContext(ctx, query, blogID)
	if err != nil {
		return fmt.Errorf("ошибка при подсчёте просмотров: %w", err)
	}

	return nil
}

// ToggleLike атомарно переключает лайк: сперва пробуем убрать, если убирать
// нечего - добавляем. Первичный ключ (blog_id, user_id) исключает дубликаты
// при конкурентных запросах одного пользователя.
func (r *BlogRepositoryImpl) ToggleLike(ctx context.Context, blogID, userID string) (bool, int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM blog_likes WHERE blog_id = $1 AND user_id = $2`, blogID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при снятии лайка: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	hasLiked := false
	if removed == 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO blog_likes (blog_id, user_id, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (blog_id, user_id) DO NOTHING
		`, blogID, userID, time.Now())
		if err != nil {
			return false, 0, fmt.Errorf("ошибка при добавлении лайка: %w", err)
		}
		hasLiked = true
	}

	var count int
	err = tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM blog_likes WHERE blog_id = $1`, blogID)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при подсчёте лайков: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return hasLiked, count, nil
}

func (r *BlogRepositoryImpl) HasLiked(ctx context.Context, blogID, userID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM blog_likes WHERE blog_id = $1 AND user_id = $2`, blogID, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке лайка: %w", err)
	}

	return count > 0, nil
}

func (r *BlogRepositoryImpl) CountLikes(ctx context.Context, blogID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM blog_likes WHERE blog_id = $1`, blogID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте лайков: %w", err)
	}

	return count, nil
}

// List собирает выборку по фильтру. Сортировки:
// newest/oldest - по published_at, popular - просмотры с тай-брейком по лайкам,
// trending - только опубликованные за последние 7 дней, по просмотрам.
func (r *BlogRepositoryImpl) List(ctx context.Context, filter BlogFilter) ([]models.Blog, int, error) {
	where := []string{}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		where = append(where, "status = "+arg(filter.Status))
	}
	if filter.Category != "" {
		where = append(where, "category = "+arg(filter.Category))
	}
	if filter.AuthorID != "" {
		where = append(where, "author_id = "+arg(filter.AuthorID))
	}
	if filter.Search != "" {
		pattern := arg("%" + filter.Search + "%")
		where = append(where, fmt.Sprintf(
			"(title ILIKE %s OR content ILIKE %s OR tags ILIKE %s)", pattern, pattern, pattern))
	}

	orderBy := "published_at DESC NULLS LAST"
	switch filter.Sort {
	case "oldest":
		orderBy = "published_at ASC NULLS LAST"
	case "popular":
		orderBy = "views DESC, (SELECT COUNT(*) FROM blog_likes bl WHERE bl.blog_id = blogs.blog_id) DESC"
	case "trending":
		where = append(where, "published_at >= "+arg(time.Now().AddDate(0, 0, -7)))
		orderBy = "views DESC"
	case "recent":
		orderBy = "created_at DESC"
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	countQuery := `SELECT COUNT(*) FROM blogs` + whereClause

	var total int
	err := r.db.GetContext(ctx, &total, countQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчёте блогов: %w", err)
	}

	query := fmt.Sprintf(`SELECT * FROM blogs%s ORDER BY %s LIMIT %s OFFSET %s`,
		whereClause, orderBy, arg(filter.Limit), arg(filter.Offset))

	var blogs []models.Blog
	err = r.db.SelectContext(ctx, &blogs, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении блогов: %w", err)
	}

	return blogs, total, nil
}

func (r *BlogRepositoryImpl) CountByAuthor(ctx context.Context, authorID, status string) (int, error) {
	var count int
	var err error

	if status == "" {
		err = r.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM blogs WHERE author_id = $1`, authorID)
	} else {
		err = r.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM blogs WHERE author_id = $1 AND status = $2`, authorID, status)
	}

	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте блогов автора: %w", err)
	}

	return count, nil
}
