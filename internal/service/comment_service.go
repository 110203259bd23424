package service

import (
	"context"
	"database/sql"
	"time"

	"blogsphere/internal/apperrors"
	"blogsphere/internal/models"
	"blogsphere/internal/repository"
)

type CreateCommentRequest struct {
	AuthorID string
	BlogID   string
	Content  string
	ParentID string
}

type CommentList struct {
	Comments   []models.Comment `json:"comments"`
	Pagination Pagination       `json:"pagination"`
}

type CommentService interface {
	CreateComment(ctx context.Context, req CreateCommentRequest) (*models.Comment, error)
	UpdateComment(ctx context.Context, commentID, callerID, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID, callerID, callerRole string) error
	ToggleLike(ctx context.Context, commentID, userID string) (bool, int, error)
	ListTopLevel(ctx context.Context, blogID string, page, limit int) (*CommentList, error)
	ListReplies(ctx context.Context, commentID string, page, limit int) (*CommentList, error)
	AdminListComments(ctx context.Context, search string, page, limit int) (*CommentList, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	blogRepo    repository.BlogRepository
	userRepo    repository.UserRepository
}

func NewCommentService(commentRepo repository.CommentRepository, blogRepo repository.BlogRepository,
	userRepo repository.UserRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
		userRepo:    userRepo,
	}
}

func validateCommentContent(content string) error {
	length := len([]rune(content))
	if length < 1 || length > 1000 {
		return apperrors.NewValidationError("content", "комментарий должен быть от 1 до 1000 символов")
	}
	return nil
}

func (s *commentService) CreateComment(ctx context.Context, req CreateCommentRequest) (*models.Comment, error) {
	if err := validateCommentContent(req.Content); err != nil {
		return nil, err
	}

	if _, err := s.blogRepo.GetByID(ctx, req.BlogID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		BlogID:   req.BlogID,
		AuthorID: req.AuthorID,
		Content:  req.Content,
	}

	if req.ParentID != "" {
		parent, err := s.commentRepo.GetByID(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.BlogID != req.BlogID {
			return nil, apperrors.InvalidOperation("родительский комментарий относится к другому блогу")
		}
		// вложенность ограничена одним уровнем: отвечать можно только
		// на корневой комментарий
		if parent.ParentID.Valid {
			return nil, apperrors.InvalidOperation("нельзя отвечать на ответ")
		}
		comment.ParentID = sql.NullString{String: req.ParentID, Valid: true}
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetAuthorSummary(ctx, comment.AuthorID)
	if err != nil {
		return nil, err
	}
	comment.Author = author

	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, commentID, callerID, content string) (*models.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	// редактировать может только автор, без исключения для админов
	if comment.AuthorID != callerID {
		return nil, apperrors.Forbidden("нет прав на изменение этого комментария")
	}

	comment.Content = content
	comment.IsEdited = true
	comment.EditedAt = sql.NullTime{Time: time.Now(), Valid: true}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetAuthorSummary(ctx, comment.AuthorID)
	if err != nil {
		return nil, err
	}
	comment.Author = author

	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID, callerID, callerRole string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != callerID && callerRole != models.RoleAdmin {
		return apperrors.Forbidden("нет прав на удаление этого комментария")
	}

	return s.commentRepo.Delete(ctx, commentID)
}

func (s *commentService) ToggleLike(ctx context.Context, commentID, userID string) (bool, int, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return false, 0, err
	}

	return s.commentRepo.ToggleLike(ctx, commentID, userID)
}

// ListTopLevel отдаёт корневые комментарии вместе с их прямыми ответами
func (s *commentService) ListTopLevel(ctx context.Context, blogID string, page, limit int) (*CommentList, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return nil, err
	}

	page, limit = normalizePage(page, limit)

	comments, total, err := s.commentRepo.ListTopLevel(ctx, blogID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	for i := range comments {
		if err := s.attachMeta(ctx, &comments[i]); err != nil {
			return nil, err
		}

		replies, _, err := s.commentRepo.ListReplies(ctx, comments[i].CommentID, 50, 0)
		if err != nil {
			return nil, err
		}
		for j := range replies {
			if err := s.attachMeta(ctx, &replies[j]); err != nil {
				return nil, err
			}
		}
		comments[i].Replies = replies
	}

	return &CommentList{Comments: comments, Pagination: NewPagination(page, limit, total)}, nil
}

func (s *commentService) ListReplies(ctx context.Context, commentID string, page, limit int) (*CommentList, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}

	page, limit = normalizePage(page, limit)

	replies, total, err := s.commentRepo.ListReplies(ctx, commentID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	for i := range replies {
		if err := s.attachMeta(ctx, &replies[i]); err != nil {
			return nil, err
		}
	}

	return &CommentList{Comments: replies, Pagination: NewPagination(page, limit, total)}, nil
}

func (s *commentService) AdminListComments(ctx context.Context, search string, page, limit int) (*CommentList, error) {
	page, limit = normalizePage(page, limit)

	comments, total, err := s.commentRepo.ListAll(ctx, search, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	for i := range comments {
		if err := s.attachMeta(ctx, &comments[i]); err != nil {
			return nil, err
		}
	}

	return &CommentList{Comments: comments, Pagination: NewPagination(page, limit, total)}, nil
}

func (s *commentService) attachMeta(ctx context.Context, comment *models.Comment) error {
	author, err := s.userRepo.GetAuthorSummary(ctx, comment.AuthorID)
	if err != nil {
		return err
	}
	comment.Author = author

	comment.LikeCount, err = s.commentRepo.CountLikes(ctx, comment.CommentID)
	if err != nil {
		return err
	}

	if !comment.ParentID.Valid {
		comment.ReplyCount, err = s.commentRepo.CountReplies(ctx, comment.CommentID)
		if err != nil {
			return err
		}
	}

	return nil
}
