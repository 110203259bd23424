package service

import (
	"context"

	"blogsphere/internal/models"
	"blogsphere/internal/repository"
)

type DashboardStats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalBlogs     int `json:"totalBlogs"`
	TotalComments  int `json:"totalComments"`
	PublishedBlogs int `json:"publishedBlogs"`
	DraftBlogs     int `json:"draftBlogs"`
}

type DashboardActivity struct {
	RecentUsers []models.User          `json:"recentUsers"`
	RecentBlogs []models.Blog          `json:"recentBlogs"`
	TopAuthors  []repository.TopAuthor `json:"topAuthors"`
}

type Dashboard struct {
	Stats          DashboardStats    `json:"stats"`
	RecentActivity DashboardActivity `json:"recentActivity"`
}

type StatsService interface {
	GetDashboard(ctx context.Context) (*Dashboard, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

const dashboardTopN = 5

// GetDashboard собирает сводку для админки; все цифры считаются на лету
func (s *statsService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	totalUsers, err := s.statsRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	totalBlogs, err := s.statsRepo.CountBlogs(ctx, "")
	if err != nil {
		return nil, err
	}

	totalComments, err := s.statsRepo.CountComments(ctx)
	if err != nil {
		return nil, err
	}

	publishedBlogs, err := s.statsRepo.CountBlogs(ctx, models.StatusPublished)
	if err != nil {
		return nil, err
	}

	draftBlogs, err := s.statsRepo.CountBlogs(ctx, models.StatusDraft)
	if err != nil {
		return nil, err
	}

	recentUsers, err := s.statsRepo.RecentUsers(ctx, dashboardTopN)
	if err != nil {
		return nil, err
	}

	recentBlogs, err := s.statsRepo.RecentBlogs(ctx, dashboardTopN)
	if err != nil {
		return nil, err
	}

	topAuthors, err := s.statsRepo.TopAuthors(ctx, dashboardTopN)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Stats: DashboardStats{
			TotalUsers:     totalUsers,
			TotalBlogs:     totalBlogs,
			TotalComments:  totalComments,
			PublishedBlogs: publishedBlogs,
			DraftBlogs:     draftBlogs,
		},
		RecentActivity: DashboardActivity{
			RecentUsers: recentUsers,
			RecentBlogs: recentBlogs,
			TopAuthors:  topAuthors,
		},
	}, nil
}
