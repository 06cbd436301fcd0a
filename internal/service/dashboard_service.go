package service

import (
	"context"

	"github.com/faridhnr/skillswap/internal/model"
	"github.com/google/uuid"
)

type DashboardStats struct {
	PendingIncoming int `json:"pending_incoming"`
	TotalRequests   int `json:"total_requests"`
	Accepted        int `json:"accepted"`
}

type Dashboard struct {
	Profile  *model.Profile       `json:"profile"`
	Incoming []RequestWithProfile `json:"incoming_requests"`
	Sent     []RequestWithProfile `json:"sent_requests"`
	Stats    DashboardStats       `json:"stats"`
}

type DashboardService interface {
	// GetDashboard joins the caller's profile with their incoming and sent
	// requests. Returns not-found when the caller has no profile yet, so the
	// client can redirect to profile creation.
	GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
}

type dashboardService struct {
	profileSvc ProfileService
	requestSvc RequestService
}

func NewDashboardService(profileSvc ProfileService, requestSvc RequestService) DashboardService {
	return &dashboardService{
		profileSvc: profileSvc,
		requestSvc: requestSvc,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	profile, err := s.profileSvc.GetOwnProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	incoming, err := s.requestSvc.IncomingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}

	sent, err := s.requestSvc.SentRequests(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Profile:  profile,
		Incoming: incoming,
		Sent:     sent,
		Stats:    computeStats(incoming, sent),
	}, nil
}

// computeStats derives the dashboard counters from the request lists. Pure
// read-side computation, nothing is stored.
func computeStats(incoming, sent []RequestWithProfile) DashboardStats {
	stats := DashboardStats{
		TotalRequests: len(incoming) + len(sent),
	}

	for _, r := range incoming {
		switch r.Request.Status {
		case model.RequestStatusPending:
			stats.PendingIncoming++
		case model.RequestStatusAccepted:
			stats.Accepted++
		}
	}

	for _, r := range sent {
		if r.Request.Status == model.RequestStatusAccepted {
			stats.Accepted++
		}
	}

	return stats
}
