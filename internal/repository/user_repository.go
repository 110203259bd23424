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
	"golang.org/x/crypto/bcrypt"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users
		(user_id, username, email, password_hash, role, first_name, last_name, bio,
		 avatar_url, website, twitter, linkedin, github,
		 refresh_token, refresh_token_expiry_time, created_at, updated_at)
		VALUES
		(:user_id, :username, :email, :password_hash, :role, :first_name, :last_name, :bio,
		 :avatar_url, :website, :twitter, :linkedin, :github,
		 :refresh_token, :refresh_token_expiry_time, :created_at, :updated_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return apperrors.Conflict("username или email уже заняты")
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("пользователь")
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE username = $1`

	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("пользователь")
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по username: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("пользователь")
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// checking that the password hash is the same
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("неверный пароль")
	}

	return user, nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expiry_time = $2
		WHERE user_id = $3
	`

	_, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении refresh token: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	var user models.User

	query := `
		SELECT * FROM users
		WHERE refresh_token = $1
		AND refresh_token_expiry_time > CURRENT_TIMESTAMP
	`

	err := r.db.GetContext(ctx, &user, query, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("недействительный или просроченный refresh token")
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по refresh token: %w", err)
	}

	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users SET
			first_name = :first_name,
			last_name = :last_name,
			bio = :bio,
			avatar_url = :avatar_url,
			website = :website,
			twitter = :twitter,
			linkedin = :linkedin,
			github = :github,
			updated_at = :updated_at
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении профиля: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("пользователь")
	}

	return nil
}

func (r *userRepository) UpdateRole(ctx context.Context, userID, role string) error {
	query := `UPDATE users SET role = $1, updated_at = CURRENT_TIMESTAMP WHERE user_id = $2`

	result, err := r.db.ExecContext(ctx, query, role, userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении роли: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("пользователь")
	}

	return nil
}

// DeleteUser удаляет пользователя; его блоги, комментарии, лайки и рёбра
// подписок уходят каскадом по внешним ключам
func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении пользователя: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("пользователь")
	}

	return nil
}

// SearchUsers - регистронезависимый поиск по username, имени и фамилии
func (r *userRepository) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, int, error) {
	pattern := "%" + query + "%"

	var total int
	err := r.db.GetContext(ctx, &total, `
		SELECT COUNT(*) FROM users
		WHERE username ILIKE $1 OR first_name ILIKE $1 OR last_name ILIKE $1
	`, pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчёте пользователей: %w", err)
	}

	var users []models.User
	err = r.db.SelectContext(ctx, &users, `
		SELECT * FROM users
		WHERE username ILIKE $1 OR first_name ILIKE $1 OR last_name ILIKE $1
		ORDER BY username ASC
		LIMIT $2 OFFSET $3
	`, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при поиске пользователей: %w", err)
	}

	return users, total, nil
}

// ListUsers - список для админки с поиском и фильтром по роли
func (r *userRepository) ListUsers(ctx context.Context, search, role string, limit, offset int) ([]models.User, int, error) {
	where := []string{}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if search != "" {
		pattern := arg("%" + search + "%")
		where = append(where, fmt.Sprintf(
			"(username ILIKE %s OR email ILIKE %s OR first_name ILIKE %s OR last_name ILIKE %s)",
			pattern, pattern, pattern, pattern))
	}
	if role != "" {
		where = append(where, "role = "+arg(role))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`+whereClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчёте пользователей: %w", err)
	}

	query := fmt.Sprintf(`SELECT * FROM users%s ORDER BY created_at DESC LIMIT %s OFFSET %s`,
		whereClause, arg(limit), arg(offset))

	var users []models.User
	err = r.db.SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении пользователей: %w", err)
	}

	return users, total, nil
}

func (r *userRepository) GetAuthorSummary(ctx context.Context, userID string) (*models.AuthorSummary, error) {
	var author models.AuthorSummary

	query := `SELECT user_id, username, first_name, last_name, avatar_url FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &author, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("пользователь")
		}
		return nil, fmt.Errorf("ошибка при получении автора: %w", err)
	}

	return &author, nil
}

// ToggleFollow переключает подписку в одной транзакции. Ребро графа - одна
// строка в follows, обе стороны отношения читаются из неё же, поэтому
// половинчатое состояние "A подписан, а у B его нет" невозможно.
func (r *userRepository) ToggleFollow(ctx context.Context, followerID, followeeID string) (bool, int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`, followerID, followeeID)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при отписке: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	isFollowing := false
	if removed == 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO follows (follower_id, followee_id, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (follower_id, followee_id) DO NOTHING
		`, followerID, followeeID, time.Now())
		if err != nil {
			return false, 0, fmt.Errorf("ошибка при подписке: %w", err)
		}
		isFollowing = true
	}

	var followerCount int
	err = tx.GetContext(ctx, &followerCount,
		`SELECT COUNT(*) FROM follows WHERE followee_id = $1`, followeeID)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка при подсчёте подписчиков: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return isFollowing, followerCount, nil
}

func (r *userRepository) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке подписки: %w", err)
	}

	return count > 0, nil
}

func (r *userRepository) GetFollowers(ctx context.Context, userID string) ([]models.AuthorSummary, error) {
	query := `
		SELECT u.user_id, u.username, u.first_name, u.last_name, u.avatar_url
		FROM follows f
		JOIN users u ON u.user_id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY f.created_at DESC
	`

	var followers []models.AuthorSummary
	err := r.db.SelectContext(ctx, &followers, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении подписчиков: %w", err)
	}

	return followers, nil
}

func (r *userRepository) GetFollowing(ctx context.Context, userID string) ([]models.AuthorSummary, error) {
	query := `
		SELECT u.user_id, u.username, u.first_name, u.last_name, u.avatar_url
		FROM follows f
		JOIN users u ON u.user_id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`

	var following []models.AuthorSummary
	err := r.db.SelectContext(ctx, &following, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении подписок: %w", err)
	}

	return following, nil
}

func (r *userRepository) CountFollowers(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM follows WHERE followee_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте подписчиков: %w", err)
	}

	return count, nil
}

func (r *userRepository) CountFollowing(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте подписок: %w", err)
	}

	return count, nil
}
