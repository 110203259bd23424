package test

import (
	"context"

	"blogsphere/internal/models"
	"blogsphere/internal/repository"
	"blogsphere/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) CreateBlog(ctx context.Context, req service.CreateBlogRequest) (*models.Blog, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogService) UpdateBlog(ctx context.Context, req service.UpdateBlogRequest) (*models.Blog, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogService) DeleteBlog(ctx context.Context, blogID, callerID, callerRole string) error {
	args := m.Called(ctx, blogID, callerID, callerRole)
	return args.Error(0)
}

func (m *MockBlogService) GetBlogBySlug(ctx context.Context, slug, viewerID string) (*models.Blog, error) {
	args := m.Called(ctx, slug, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogService) ToggleLike(ctx context.Context, blogID, userID string) (bool, int, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockBlogService) ListBlogs(ctx context.Context, req service.ListBlogsRequest) (*service.BlogList, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BlogList), args.Error(1)
}

func (m *MockBlogService) ListUserBlogs(ctx context.Context, authorID string, page, limit int) (*service.BlogList, error) {
	args := m.Called(ctx, authorID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BlogList), args.Error(1)
}

func (m *MockBlogService) ListDrafts(ctx context.Context, authorID string, page, limit int) (*service.BlogList, error) {
	args := m.Called(ctx, authorID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BlogList), args.Error(1)
}

func (m *MockBlogService) AdminListBlogs(ctx context.Context, status, search string, page, limit int) (*service.BlogList, error) {
	args := m.Called(ctx, status, search, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BlogList), args.Error(1)
}

func (m *MockBlogService) AdminSetStatus(ctx context.Context, blogID, status string) (*models.Blog, error) {
	args := m.Called(ctx, blogID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(ctx context.Context, req service.CreateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) UpdateComment(ctx context.Context, commentID, callerID, content string) (*models.Comment, error) {
	args := m.Called(ctx, commentID, callerID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID, callerID, callerRole string) error {
	args := m.Called(ctx, commentID, callerID, callerRole)
	return args.Error(0)
}

func (m *MockCommentService) ToggleLike(ctx context.Context, commentID, userID string) (bool, int, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockCommentService) ListTopLevel(ctx context.Context, blogID string, page, limit int) (*service.CommentList, error) {
	args := m.Called(ctx, blogID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CommentList), args.Error(1)
}

func (m *MockCommentService) ListReplies(ctx context.Context, commentID string, page, limit int) (*service.CommentList, error) {
	args := m.Called(ctx, commentID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CommentList), args.Error(1)
}

func (m *MockCommentService) AdminListComments(ctx context.Context, search string, page, limit int) (*service.CommentList, error) {
	args := m.Called(ctx, search, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CommentList), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, username, viewerID string) (*service.Profile, error) {
	args := m.Called(ctx, username, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Profile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, req service.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ToggleFollow(ctx context.Context, followerID, targetID string) (bool, int, error) {
	args := m.Called(ctx, followerID, targetID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockUserService) SearchUsers(ctx context.Context, query string, page, limit int) (*service.UserList, error) {
	args := m.Called(ctx, query, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserList), args.Error(1)
}

func (m *MockUserService) GetUserStats(ctx context.Context, userID string) (*repository.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UserStats), args.Error(1)
}

func (m *MockUserService) AdminListUsers(ctx context.Context, search, role string, page, limit int) (*service.UserList, error) {
	args := m.Called(ctx, search, role, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserList), args.Error(1)
}

func (m *MockUserService) AdminChangeRole(ctx context.Context, adminID, targetID, role string) (*models.User, error) {
	args := m.Called(ctx, adminID, targetID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) AdminDeleteUser(ctx context.Context, adminID, targetID string) error {
	args := m.Called(ctx, adminID, targetID)
	return args.Error(0)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetDashboard(ctx context.Context) (*service.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}
