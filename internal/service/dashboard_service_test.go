package service

import (
	"context"
	"testing"

	"github.com/faridhnr/skillswap/internal/model"
	"github.com/faridhnr/skillswap/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard_AggregatesRequestsAndStats(t *testing.T) {
	profiles := newFakeProfileRepo()
	requests := newFakeRequestRepo()
	users := newFakeUserRepo()

	me := uuid.New()
	other := uuid.New()
	profiles.add(&model.Profile{UserID: me, Name: "Me", IsPublic: true})
	profiles.add(&model.Profile{UserID: other, Name: "Other", IsPublic: true})

	// Two pending and one accepted incoming, one accepted and one declined sent.
	requests.add(&model.SkillRequest{FromUserID: other, ToUserID: me, Status: model.RequestStatusPending})
	requests.add(&model.SkillRequest{FromUserID: other, ToUserID: me, Status: model.RequestStatusPending})
	requests.add(&model.SkillRequest{FromUserID: other, ToUserID: me, Status: model.RequestStatusAccepted})
	requests.add(&model.SkillRequest{FromUserID: me, ToUserID: other, Status: model.RequestStatusAccepted})
	requests.add(&model.SkillRequest{FromUserID: me, ToUserID: other, Status: model.RequestStatusDeclined})

	profileSvc := NewProfileService(profiles, users, nil, nil)
	requestSvc := NewRequestService(requests, profiles, nil, nil, 0)
	svc := NewDashboardService(profileSvc, requestSvc)

	dashboard, err := svc.GetDashboard(context.Background(), me)
	require.NoError(t, err)

	require.Equal(t, "Me", dashboard.Profile.Name)
	require.Len(t, dashboard.Incoming, 3)
	require.Len(t, dashboard.Sent, 2)

	// Counterpart profiles are joined in on both lists.
	for _, r := range dashboard.Incoming {
		require.NotNil(t, r.Profile)
		require.Equal(t, "Other", r.Profile.Name)
	}
	for _, r := range dashboard.Sent {
		require.NotNil(t, r.Profile)
		require.Equal(t, "Other", r.Profile.Name)
	}

	require.Equal(t, DashboardStats{
		PendingIncoming: 2,
		TotalRequests:   5,
		Accepted:        2,
	}, dashboard.Stats)
}

func TestGetDashboard_NotFoundWithoutProfile(t *testing.T) {
	profiles := newFakeProfileRepo()
	requests := newFakeRequestRepo()
	users := newFakeUserRepo()

	profileSvc := NewProfileService(profiles, users, nil, nil)
	requestSvc := NewRequestService(requests, profiles, nil, nil, 0)
	svc := NewDashboardService(profileSvc, requestSvc)

	_, err := svc.GetDashboard(context.Background(), uuid.New())
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
