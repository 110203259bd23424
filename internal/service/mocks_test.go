package service

import (
	"context"
	"io"
	"time"

	"blogsphere/internal/models"
	"blogsphere/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshToken, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, int, error) {
	args := m.Called(ctx, query, limit, offset)
	return args.Get(0).([]models.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, search, role string, limit, offset int) ([]models.User, int, error) {
	args := m.Called(ctx, search, role, limit, offset)
	return args.Get(0).([]models.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) GetAuthorSummary(ctx context.Context, userID string) (*models.AuthorSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthorSummary), args.Error(1)
}

func (m *MockUserRepository) ToggleFollow(ctx context.Context, followerID, followeeID string) (bool, int, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetFollowers(ctx context.Context, userID string) ([]models.AuthorSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.AuthorSummary), args.Error(1)
}

func (m *MockUserRepository) GetFollowing(ctx context.Context, userID string) ([]models.AuthorSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.AuthorSummary), args.Error(1)
}

func (m *MockUserRepository) CountFollowers(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) CountFollowing(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) GetByID(ctx context.Context, blogID string) (*models.Blog, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogRepository) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogRepository) Update(ctx context.Context, blog *models.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) Delete(ctx context.Context, blogID string) error {
	args := m.Called(ctx, blogID)
	return args.Error(0)
}

func (m *MockBlogRepository) IncrementViews(ctx context.Context, blogID string) error {
	args := m.Called(ctx, blogID)
	return args.Error(0)
}

func (m *MockBlogRepository) ToggleLike(ctx context.Context, blogID, userID string) (bool, int, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockBlogRepository) HasLiked(ctx context.Context, blogID, userID string) (bool, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogRepository) CountLikes(ctx context.Context, blogID string) (int, error) {
	args := m.Called(ctx, blogID)
	return args.Int(0), args.Error(1)
}

func (m *MockBlogRepository) List(ctx context.Context, filter repository.BlogFilter) ([]models.Blog, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Blog), args.Int(1), args.Error(2)
}

func (m *MockBlogRepository) CountByAuthor(ctx context.Context, authorID, status string) (int, error) {
	args := m.Called(ctx, authorID, status)
	return args.Int(0), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID string) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) ToggleLike(ctx context.Context, commentID, userID string) (bool, int, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockCommentRepository) CountLikes(ctx context.Context, commentID string) (int, error) {
	args := m.Called(ctx, commentID)
	return args.Int(0), args.Error(1)
}

func (m *MockCommentRepository) CountReplies(ctx context.Context, commentID string) (int, error) {
	args := m.Called(ctx, commentID)
	return args.Int(0), args.Error(1)
}

func (m *MockCommentRepository) CountByBlog(ctx context.Context, blogID string) (int, error) {
	args := m.Called(ctx, blogID)
	return args.Int(0), args.Error(1)
}

func (m *MockCommentRepository) ListTopLevel(ctx context.Context, blogID string, limit, offset int) ([]models.Comment, int, error) {
	args := m.Called(ctx, blogID, limit, offset)
	return args.Get(0).([]models.Comment), args.Int(1), args.Error(2)
}

func (m *MockCommentRepository) ListReplies(ctx context.Context, commentID string, limit, offset int) ([]models.Comment, int, error) {
	args := m.Called(ctx, commentID, limit, offset)
	return args.Get(0).([]models.Comment), args.Int(1), args.Error(2)
}

func (m *MockCommentRepository) ListAll(ctx context.Context, search string, limit, offset int) ([]models.Comment, int, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]models.Comment), args.Int(1), args.Error(2)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountBlogs(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountComments(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) RecentUsers(ctx context.Context, limit int) ([]models.User, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStatsRepository) RecentBlogs(ctx context.Context, limit int) ([]models.Blog, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Blog), args.Error(1)
}

func (m *MockStatsRepository) TopAuthors(ctx context.Context, limit int) ([]repository.TopAuthor, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]repository.TopAuthor), args.Error(1)
}

func (m *MockStatsRepository) UserStats(ctx context.Context, userID string) (*repository.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UserStats), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, folder string, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, folder, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockStorage) GetImageURL(objectName string) string {
	args := m.Called(objectName)
	return args.String(0)
}
