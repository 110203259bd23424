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

func TestCommentRepository_Create(t *testing.T) {
	ctx := context.Background()

	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectExec("INSERT INTO comments").
		WillReturnResult(sqlmock.NewResult(0, 1))

	comment := &models.Comment{
		BlogID:   "blog-1",
		AuthorID: "user-1",
		Content:  "Первый!",
	}
	err := repo.Create(ctx, comment)

	require.NoError(t, err)
	assert.NotEmpty(t, comment.CommentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Удаление забирает и прямые ответы", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewCommentRepository(db)

		// корневой комментарий и два ответа одним запросом
		mock.ExpectExec(`DELETE FROM comments WHERE comment_id = \$1 OR parent_id = \$1`).
			WithArgs("comment-1").
			WillReturnResult(sqlmock.NewResult(0, 3))

		assert.NoError(t, repo.Delete(ctx, "comment-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Несуществующий комментарий", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewCommentRepository(db)

		mock.ExpectExec(`DELETE FROM comments`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, "missing")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCommentRepository_ToggleLike(t *testing.T) {
	ctx := context.Background()

	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM comment_likes").
		WithArgs("comment-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO comment_likes").
		WithArgs("comment-1", "user-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM comment_likes`).
		WithArgs("comment-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	hasLiked, count, err := repo.ToggleLike(ctx, "comment-1", "user-1")

	require.NoError(t, err)
	assert.True(t, hasLiked)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListTopLevel(t *testing.T) {
	ctx := context.Background()

	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM comments WHERE blog_id = \$1 AND parent_id IS NULL`).
		WithArgs("blog-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM comments WHERE blog_id = \$1 AND parent_id IS NULL`).
		WithArgs("blog-1", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"comment_id", "blog_id", "content"}).
			AddRow("comment-2", "blog-1", "поздний").
			AddRow("comment-1", "blog-1", "ранний"))

	comments, total, err := repo.ListTopLevel(ctx, "blog-1", 10, 0)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, comments, 2)
	assert.Equal(t, "comment-2", comments[0].CommentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
