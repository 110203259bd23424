package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blogsphere/internal/apperrors"
	"blogsphere/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CommentRepositoryImpl struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepositoryImpl {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}

	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	query := `
		INSERT INTO comments
		(comment_id, blog_id, author_id, parent_id, content, is_edited, edited_at, created_at, updated_at)
		VALUES
		(:comment_id, :blog_id, :author_id, :parent_id, :content, :is_edited, :edited_at, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

func (r *CommentRepositoryImpl) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	query := `SELECT * FROM comments WHERE comment_id = $1`

	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("комментарий")
		}
		return nil, fmt.Errorf("ошибка при получении комментария: %w", err)
	}

	return &comment, nil
}

func (r *CommentRepositoryImpl) Update(ctx context.Context, comment *models.Comment) error {
	comment.UpdatedAt = time.Now()

	query := `
		UPDATE comments SET
			content = :content,
			is_edited = :is_edited,
			edited_at = :edited_at,
			updated_at = :updated_at
		WHERE comment_id = :comment_id
	`

	result, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении комментария: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("комментарий")
	}

	return nil
}

// Delete удаляет комментарий вместе с прямыми ответами на него
func (r *CommentRepositoryImpl) Delete(ctx context.Context, commentID string) error {
	query := `DELETE FROM comments WHERE comment_id = $1 OR parent_id = $1`

	result, err := r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении комментария: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("комментарий")
	}

	return nil
}

// ToggleLike - та же семантика переключателя, что и у лайков блога
func (r *CommentRepositoryImpl) ToggleLike(ctx context.Context, commentID, userID string) (bool, int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`, commentID, userID)
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
			INSERT INTO comment_likes (comment_id, user_id, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (comment_id, user_id) DO NOTHING
		`, commentID, userID, time.Now())
		if err != nil {
			return false, 0, fmt.Errorf("ошибка при добавлении лайка: %w", err)
		}
		hasLiked = true
	}

	var count int
	err = tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1`, commentID)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при подсчёте лайков: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return hasLiked, count, nil
}

func (r *CommentRepositoryImpl) CountLikes(ctx context.Context, commentID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1`, commentID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте лайков: %w", err)
	}

	return count, nil
}

func (r *CommentRepositoryImpl) CountReplies(ctx context.Context, commentID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM comments WHERE parent_id = $1`, commentID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте ответов: %w", err)
	}

	return count, nil
}

func (r *CommentRepositoryImpl) CountByBlog(ctx context.Context, blogID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM comments WHERE blog_id = $1`, blogID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте комментариев: %w", err)
	}

	return count, nil
}

// ListTopLevel - корневые комментарии блога, свежие первыми
func (r *CommentRepositoryImpl) ListTopLevel(ctx context.Context, blogID string, limit, offset int) ([]models.Comment, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM comments WHERE blog_id = $1 AND parent_id IS NULL`, blogID)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчёте комментариев: %w", err)
	}

	query := `
		SELECT * FROM comments
		WHERE blog_id = $1 AND parent_id IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var comments []models.Comment
	err = r.db.SelectContext(ctx, &comments, query, blogID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, total, nil
}

// ListReplies - ответы в разговорном порядке, старые первыми
func (r *CommentRepositoryImpl) ListReplies(ctx context.Context, commentID string, limit, offset int) ([]models.Comment, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM comments WHERE parent_id = $1`, commentID)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчёте ответов: %w", err)
	}

	query := `
		SELECT * FROM comments
		WHERE parent_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`

	var replies []models.Comment
	err = r.db.SelectContext(ctx, &replies, query, commentID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении ответов: %w", err)
	}

	return replies, total, nil
}

// ListAll - все комментарии для админки, с поиском по содержимому
func (r *CommentRepositoryImpl) ListAll(ctx context.Context, search string, limit, offset int) ([]models.Comment, int, error) {
	pattern := "%" + search + "%"

	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM comments WHERE content ILIKE $1`, pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчёте комментариев: %w", err)
	}

	query := `
		SELECT * FROM comments
		WHERE content ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var comments []models.Comment
	err = r.db.SelectContext(ctx, &comments, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, total, nil
}
