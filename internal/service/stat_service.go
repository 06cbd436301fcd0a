package service

import (
	"context"

	"github.com/faridhnr/skillswap/internal/repository"
)

type Stats struct {
	TotalMembers  int64 `json:"total_members"`
	TotalRequests int64 `json:"total_requests"`
}

type StatService interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type statService struct {
	users    repository.UserRepository
	requests repository.RequestRepository
}

func NewStatService(users repository.UserRepository, requests repository.RequestRepository) StatService {
	return &statService{
		users:    users,
		requests: requests,
	}
}

func (s *statService) GetStats(ctx context.Context) (*Stats, error) {
	totalMembers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalRequests, err := s.requests.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalMembers:  totalMembers,
		TotalRequests: totalRequests,
	}, nil
}
