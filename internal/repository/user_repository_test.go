package repository

import (
	"context"
	"testing"

	"blogsphere/internal/apperrors"
	"blogsphere/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec("INSERT INTO users").
			WillReturnResult(sqlmock.NewResult(0, 1))

		user := &models.User{
			Username: "ivan",
			Email:    "ivan@example.com",
			Role:     models.RoleUser,
		}
		err := repo.CreateUser(ctx, user, "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Дубликат username или email", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&mockPqError{`duplicate key value violates unique constraint "users_email_key"`})

		user := &models.User{Username: "ivan", Email: "ivan@example.com", Role: models.RoleUser}
		err := repo.CreateUser(ctx, user, "password123")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	ctx := context.Background()

	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM users WHERE user_id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := repo.GetUserByID(ctx, "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_ToggleFollow(t *testing.T) {
	ctx := context.Background()

	t.Run("Первый вызов подписывает", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM follows").
			WithArgs("user-1", "user-2").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO follows").
			WithArgs("user-1", "user-2", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM follows WHERE followee_id = \$1`).
			WithArgs("user-2").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectCommit()

		isFollowing, count, err := repo.ToggleFollow(ctx, "user-1", "user-2")

		require.NoError(t, err)
		assert.True(t, isFollowing)
		assert.Equal(t, 1, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Повторный вызов отписывает", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM follows").
			WithArgs("user-1", "user-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM follows WHERE followee_id = \$1`).
			WithArgs("user-2").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectCommit()

		isFollowing, count, err := repo.ToggleFollow(ctx, "user-1", "user-2")

		require.NoError(t, err)
		assert.False(t, isFollowing)
		assert.Equal(t, 0, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_IsFollowing(t *testing.T) {
	ctx := context.Background()

	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM follows WHERE follower_id = \$1 AND followee_id = \$2`).
		WithArgs("user-1", "user-2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	following, err := repo.IsFollowing(ctx, "user-1", "user-2")

	require.NoError(t, err)
	assert.True(t, following)
}
