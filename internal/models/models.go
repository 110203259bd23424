package models

import (
	"database/sql"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Categories - фиксированный набор категорий блога
var Categories = []string{
	"Technology",
	"Lifestyle",
	"Travel",
	"Food",
	"Health",
	"Business",
	"Education",
	"Entertainment",
	"Sports",
	"Politics",
	"Science",
	"Other",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func IsValidStatus(status string) bool {
	return status == StatusDraft || status == StatusPublished || status == StatusArchived
}

type User struct {
	UserID                 string       `json:"userId" db:"user_id"`
	Username               string       `json:"username" db:"username"`
	Email                  string       `json:"email" db:"email"`
	PasswordHash           string       `json:"-" db:"password_hash"`
	Role                   string       `json:"role" db:"role"`
	FirstName              string       `json:"firstName" db:"first_name"`
	LastName               string       `json:"lastName" db:"last_name"`
	Bio                    string       `json:"bio" db:"bio"`
	AvatarURL              string       `json:"avatar" db:"avatar_url"`
	Website                string       `json:"website" db:"website"`
	Twitter                string       `json:"twitter" db:"twitter"`
	LinkedIn               string       `json:"linkedin" db:"linkedin"`
	GitHub                 string       `json:"github" db:"github"`
	RefreshToken           string       `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time    `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time    `json:"updatedAt" db:"updated_at"`
}

// AuthorSummary - краткая карточка автора для вложенных ответов
type AuthorSummary struct {
	UserID    string `json:"userId" db:"user_id"`
	Username  string `json:"username" db:"username"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	AvatarURL string `json:"avatar" db:"avatar_url"`
}

type Blog struct {
	BlogID        string       `json:"blogId" db:"blog_id"`
	AuthorID      string       `json:"authorId" db:"author_id"`
	Title         string       `json:"title" db:"title"`
	Content       string       `json:"content" db:"content"`
	Excerpt       string       `json:"excerpt" db:"excerpt"`
	FeaturedImage string       `json:"featuredImage" db:"featured_image"`
	Category      string       `json:"category" db:"category"`
	Tags          string       `json:"-" db:"tags"`
	Status        string       `json:"status" db:"status"`
	Views         int64        `json:"views" db:"views"`
	ReadTime      int          `json:"readTime" db:"read_time"`
	Slug          string       `json:"slug" db:"slug"`
	IsPublished   bool         `json:"isPublished" db:"is_published"`
	PublishedAt   sql.NullTime `json:"-" db:"published_at"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`

	// заполняются отдельными запросами, не колонки
	Author       *AuthorSummary `json:"author,omitempty" db:"-"`
	LikeCount    int            `json:"likeCount" db:"-"`
	CommentCount int            `json:"commentCount" db:"-"`
	HasLiked     bool           `json:"hasLiked" db:"-"`
}

// TagList - теги хранятся одной строкой через запятую
func (b *Blog) TagList() []string {
	if b.Tags == "" {
		return []string{}
	}
	parts := strings.Split(b.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func JoinTags(tags []string) string {
	trimmed := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return strings.Join(trimmed, ",")
}

type Comment struct {
	CommentID string         `json:"commentId" db:"comment_id"`
	BlogID    string         `json:"blogId" db:"blog_id"`
	AuthorID  string         `json:"authorId" db:"author_id"`
	ParentID  sql.NullString `json:"-" db:"parent_id"`
	Content   string         `json:"content" db:"content"`
	IsEdited  bool           `json:"isEdited" db:"is_edited"`
	EditedAt  sql.NullTime   `json:"-" db:"edited_at"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`

	Author     *AuthorSummary `json:"author,omitempty" db:"-"`
	LikeCount  int            `json:"likeCount" db:"-"`
	ReplyCount int            `json:"replyCount" db:"-"`
	Replies    []Comment      `json:"replies,omitempty" db:"-"`
}

// Follow - одно ребро графа подписок; follower подписан на followee.
// Списки followers/following читаются из одной таблицы, поэтому
// рассинхронизация двух сторон невозможна по построению.
type Follow struct {
	FollowerID string    `json:"followerId" db:"follower_id"`
	FolloweeID string    `json:"followeeId" db:"followee_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
