package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"

	"blogsphere/internal/apperrors"
	"blogsphere/internal/models"
	"blogsphere/internal/repository"
	"blogsphere/internal/storage"
)

var (
	twitterPattern = regexp.MustCompile(`^@?[A-Za-z0-9_]+$`)
	githubPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

type UpdateProfileRequest struct {
	UserID    string
	FirstName *string
	LastName  *string
	Bio       *string
	Website   *string
	Twitter   *string
	LinkedIn  *string
	GitHub    *string
	Avatar    *ImageUpload
}

// Profile - публичный профиль без email и пароля
type Profile struct {
	UserID         string                 `json:"userId"`
	Username       string                 `json:"username"`
	FirstName      string                 `json:"firstName"`
	LastName       string                 `json:"lastName"`
	Bio            string                 `json:"bio"`
	AvatarURL      string                 `json:"avatar"`
	Website        string                 `json:"website"`
	Twitter        string                 `json:"twitter"`
	LinkedIn       string                 `json:"linkedin"`
	GitHub         string                 `json:"github"`
	Role           string                 `json:"role"`
	BlogCount      int                    `json:"blogCount"`
	FollowerCount  int                    `json:"followerCount"`
	FollowingCount int                    `json:"followingCount"`
	IsFollowing    bool                   `json:"isFollowing"`
	Followers      []models.AuthorSummary `json:"followers"`
	Following      []models.AuthorSummary `json:"following"`
}

type UserList struct {
	Users      []models.User `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

type UserService interface {
	GetProfile(ctx context.Context, username, viewerID string) (*Profile, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error)
	ToggleFollow(ctx context.Context, followerID, targetID string) (bool, int, error)
	SearchUsers(ctx context.Context, query string, page, limit int) (*UserList, error)
	GetUserStats(ctx context.Context, userID string) (*repository.UserStats, error)
	AdminListUsers(ctx context.Context, search, role string, page, limit int) (*UserList, error)
	AdminChangeRole(ctx context.Context, adminID, targetID, role string) (*models.User, error)
	AdminDeleteUser(ctx context.Context, adminID, targetID string) error
}

type userService struct {
	userRepo  repository.UserRepository
	blogRepo  repository.BlogRepository
	statsRepo repository.StatsRepository
	storage   storage.Storage
}

func NewUserService(userRepo repository.UserRepository, blogRepo repository.BlogRepository,
	statsRepo repository.StatsRepository, storage storage.Storage) UserService {
	return &userService{
		userRepo:  userRepo,
		blogRepo:  blogRepo,
		statsRepo: statsRepo,
		storage:   storage,
	}
}

// GetProfile собирает публичный профиль. Для аутентифицированного зрителя
// дополнительно сообщает, подписан ли он на этого пользователя.
func (s *userService) GetProfile(ctx context.Context, username, viewerID string) (*Profile, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	blogCount, err := s.blogRepo.CountByAuthor(ctx, user.UserID, models.StatusPublished)
	if err != nil {
		return nil, err
	}

	followers, err := s.userRepo.GetFollowers(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	following, err := s.userRepo.GetFollowing(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerID != "" && viewerID != user.UserID {
		isFollowing, err = s.userRepo.IsFollowing(ctx, viewerID, user.UserID)
		if err != nil {
			return nil, err
		}
	}

	return &Profile{
		UserID:         user.UserID,
		Username:       user.Username,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Bio:            user.Bio,
		AvatarURL:      user.AvatarURL,
		Website:        user.Website,
		Twitter:        user.Twitter,
		LinkedIn:       user.LinkedIn,
		GitHub:         user.GitHub,
		Role:           user.Role,
		BlogCount:      blogCount,
		FollowerCount:  len(followers),
		FollowingCount: len(following),
		IsFollowing:    isFollowing,
		Followers:      followers,
		Following:      following,
	}, nil
}

func isValidURL(value string) bool {
	u, err := url.ParseRequestURI(value)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func validateSocialLinks(req UpdateProfileRequest) error {
	ve := &apperrors.ValidationError{}

	if req.Bio != nil && len([]rune(*req.Bio)) > 500 {
		ve.Add("bio", "биография не может превышать 500 символов")
	}
	if req.Website != nil && *req.Website != "" && !isValidURL(*req.Website) {
		ve.Add("website", "неверный URL сайта")
	}
	if req.LinkedIn != nil && *req.LinkedIn != "" && !isValidURL(*req.LinkedIn) {
		ve.Add("linkedin", "неверный URL LinkedIn")
	}
	if req.Twitter != nil && *req.Twitter != "" && !twitterPattern.MatchString(*req.Twitter) {
		ve.Add("twitter", "неверное имя пользователя Twitter")
	}
	if req.GitHub != nil && *req.GitHub != "" && !githubPattern.MatchString(*req.GitHub) {
		ve.Add("github", "неверное имя пользователя GitHub")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// UpdateProfile - частичное обновление: непереданные поля не трогаем
func (s *userService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error) {
	if err := validateSocialLinks(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Website != nil {
		user.Website = *req.Website
	}
	if req.Twitter != nil {
		user.Twitter = *req.Twitter
	}
	if req.LinkedIn != nil {
		user.LinkedIn = *req.LinkedIn
	}
	if req.GitHub != nil {
		user.GitHub = *req.GitHub
	}

	oldAvatar := user.AvatarURL
	if req.Avatar != nil {
		_, avatarURL, err := s.storage.UploadImage(ctx, "avatars", req.Avatar.FileName, req.Avatar.File, req.Avatar.Size)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки аватара: %w", err)
		}
		user.AvatarURL = avatarURL
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	// старый аватар больше никем не используется
	if req.Avatar != nil && oldAvatar != "" && oldAvatar != user.AvatarURL {
		if err := s.storage.DeleteImage(ctx, oldAvatar); err != nil {
			log.Printf("Не удалось удалить старый аватар %s: %v", oldAvatar, err)
		}
	}

	return user, nil
}

// ToggleFollow переключает подписку; подписка на себя запрещена
func (s *userService) ToggleFollow(ctx context.Context, followerID, targetID string) (bool, int, error) {
	if followerID == targetID {
		return false, 0, apperrors.InvalidOperation("нельзя подписаться на себя")
	}

	if _, err := s.userRepo.GetUserByID(ctx, targetID); err != nil {
		return false, 0, err
	}

	return s.userRepo.ToggleFollow(ctx, followerID, targetID)
}

func (s *userService) SearchUsers(ctx context.Context, query string, page, limit int) (*UserList, error) {
	if len([]rune(query)) < 2 {
		return nil, apperrors.NewValidationError("q", "поисковый запрос должен быть не короче 2 символов")
	}

	page, limit = normalizePage(page, limit)

	users, total, err := s.userRepo.SearchUsers(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &UserList{Users: users, Pagination: NewPagination(page, limit, total)}, nil
}

func (s *userService) GetUserStats(ctx context.Context, userID string) (*repository.UserStats, error) {
	stats, err := s.statsRepo.UserStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats.Followers, err = s.userRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats.Following, err = s.userRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *userService) AdminListUsers(ctx context.Context, search, role string, page, limit int) (*UserList, error) {
	page, limit = normalizePage(page, limit)

	users, total, err := s.userRepo.ListUsers(ctx, search, role, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &UserList{Users: users, Pagination: NewPagination(page, limit, total)}, nil
}

func (s *userService) AdminChangeRole(ctx context.Context, adminID, targetID, role string) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, apperrors.NewValidationError("role", "роль должна быть user или admin")
	}

	// админ не может сменить роль самому себе
	if adminID == targetID {
		return nil, apperrors.InvalidOperation("нельзя менять собственную роль")
	}

	user, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}

	user.Role = role
	return user, nil
}

// AdminDeleteUser удаляет пользователя со всем его контентом:
// блоги, комментарии, лайки и рёбра подписок уходят каскадом
func (s *userService) AdminDeleteUser(ctx context.Context, adminID, targetID string) error {
	if adminID == targetID {
		return apperrors.InvalidOperation("нельзя удалить собственный аккаунт")
	}

	if _, err := s.userRepo.GetUserByID(ctx, targetID); err != nil {
		return err
	}

	return s.userRepo.DeleteUser(ctx, targetID)
}
