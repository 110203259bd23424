package repository

import (
	"context"
	"fmt"

	"blogsphere/internal/models"

	"github.com/jmoiron/sqlx"
)

// statsRepository считает агрегаты дашборда по текущему состоянию таблиц.
// Никаких материализованных счётчиков - каждый запрос считает заново.
type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте пользователей: %w", err)
	}

	return count, nil
}

func (r *statsRepository) CountBlogs(ctx context.Context, status string) (int, error) {
	var count int
	var err error

	if status == "" {
		err = r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM blogs`)
	} else {
		err = r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM blogs WHERE status = $1`, status)
	}

	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте блогов: %w", err)
	}

	return count, nil
}

func (r *statsRepository) CountComments(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comments`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте комментариев: %w", err)
	}

	return count, nil
}

func (r *statsRepository) RecentUsers(ctx context.Context, limit int) ([]models.User, error) {
	query := `SELECT * FROM users ORDER BY created_at DESC LIMIT $1`

	var users []models.User
	err := r.db.SelectContext(ctx, &users, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении последних пользователей: %w", err)
	}

	return users, nil
}

func (r *statsRepository) RecentBlogs(ctx context.Context, limit int) ([]models.Blog, error) {
	query := `SELECT * FROM blogs ORDER BY created_at DESC LIMIT $1`

	var blogs []models.Blog
	err := r.db.SelectContext(ctx, &blogs, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении последних блогов: %w", err)
	}

	return blogs, nil
}

// TopAuthors - авторы с наибольшим числом опубликованных блогов,
// с суммой просмотров по каждому
func (r *statsRepository) TopAuthors(ctx context.Context, limit int) ([]TopAuthor, error) {
	query := `
		SELECT u.user_id, u.username, u.first_name, u.last_name,
		       COUNT(b.blog_id) AS blog_count,
		       COALESCE(SUM(b.views), 0) AS total_views
		FROM blogs b
		JOIN users u ON u.user_id = b.author_id
		WHERE b.status = 'published'
		GROUP BY u.user_id, u.username, u.first_name, u.last_name
		ORDER BY blog_count DESC
		LIMIT $1
	`

	var authors []TopAuthor
	err := r.db.SelectContext(ctx, &authors, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении лучших авторов: %w", err)
	}

	return authors, nil
}

func (r *statsRepository) UserStats(ctx context.Context, userID string) (*UserStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'published') AS published_blogs,
			COUNT(*) FILTER (WHERE status = 'draft') AS draft_blogs,
			COALESCE(SUM(views), 0) AS total_views,
			COALESCE((
				SELECT COUNT(*) FROM blog_likes bl
				JOIN blogs b2 ON b2.blog_id = bl.blog_id
				WHERE b2.author_id = $1
			), 0) AS total_likes
		FROM blogs
		WHERE author_id = $1
	`

	var stats UserStats
	err := r.db.GetContext(ctx, &stats, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статистики пользователя: %w", err)
	}

	return &stats, nil
}
