package repository

import (
	"blogsphere/internal/models"
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, userID, role string) error
	DeleteUser(ctx context.Context, userID string) error
	SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, int, error)
	ListUsers(ctx context.Context, search, role string, limit, offset int) ([]models.User, int, error)
	GetAuthorSummary(ctx context.Context, userID string) (*models.AuthorSummary, error)

	ToggleFollow(ctx context.Context, followerID, followeeID string) (bool, int, error)
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	GetFollowers(ctx context.Context, userID string) ([]models.AuthorSummary, error)
	GetFollowing(ctx context.Context, userID string) ([]models.AuthorSummary, error)
	CountFollowers(ctx context.Context, userID string) (int, error)
	CountFollowing(ctx context.Context, userID string) (int, error)
}

// BlogFilter - параметры выборки блогов; Status == "" означает любой статус
type BlogFilter struct {
	Status   string
	Category string
	AuthorID string
	Search   string
	Sort     string
	Limit    int
	Offset   int
}

type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, blogID string) (*models.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, blogID string) error
	IncrementViews(ctx context.Context, blogID string) error
	ToggleLike(ctx context.Context, blogID, userID string) (bool, int, error)
	HasLiked(ctx context.Context, blogID, userID string) (bool, error)
	CountLikes(ctx context.Context, blogID string) (int, error)
	List(ctx context.Context, filter BlogFilter) ([]models.Blog, int, error)
	CountByAuthor(ctx context.Context, authorID, status string) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, commentID string) error
	ToggleLike(ctx context.Context, commentID, userID string) (bool, int, error)
	CountLikes(ctx context.Context, commentID string) (int, error)
	CountReplies(ctx context.Context, commentID string) (int, error)
	CountByBlog(ctx context.Context, blogID string) (int, error)
	ListTopLevel(ctx context.Context, blogID string, limit, offset int) ([]models.Comment, int, error)
	ListReplies(ctx context.Context, commentID string, limit, offset int) ([]models.Comment, int, error)
	ListAll(ctx context.Context, search string, limit, offset int) ([]models.Comment, int, error)
}

// TopAuthor - строка агрегата "лучшие авторы" для дашборда
type TopAuthor struct {
	UserID     string `json:"userId" db:"user_id"`
	Username   string `json:"username" db:"username"`
	FirstName  string `json:"firstName" db:"first_name"`
	LastName   string `json:"lastName" db:"last_name"`
	BlogCount  int    `json:"blogCount" db:"blog_count"`
	TotalViews int64  `json:"totalViews" db:"total_views"`
}

// UserStats - агрегаты по одному пользователю
type UserStats struct {
	PublishedBlogs int   `json:"publishedBlogs" db:"published_blogs"`
	DraftBlogs     int   `json:"draftBlogs" db:"draft_blogs"`
	TotalViews     int64 `json:"totalViews" db:"total_views"`
	TotalLikes     int   `json:"totalLikes" db:"total_likes"`
	Followers      int   `json:"followers" db:"-"`
	Following      int   `json:"following" db:"-"`
}

type StatsRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountBlogs(ctx context.Context, status string) (int, error)
	CountComments(ctx context.Context) (int, error)
	RecentUsers(ctx context.Context, limit int) ([]models.User, error)
	RecentBlogs(ctx context.Context, limit int) ([]models.Blog, error)
	TopAuthors(ctx context.Context, limit int) ([]TopAuthor, error)
	UserStats(ctx context.Context, userID string) (*UserStats, error)
}

type Repository struct {
	User    UserRepository
	Blog    BlogRepository
	Comment CommentRepository
	Stats   StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Blog:    NewBlogRepository(db),
		Comment: NewCommentRepository(db),
		Stats:   NewStatsRepository(db),
	}
}
