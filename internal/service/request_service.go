package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/faridhnr/skillswap/internal/model"
	"github.com/faridhnr/skillswap/internal/repository"
	"github.com/faridhnr/skillswap/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type SendRequestInput struct {
	ToUserID     string `json:"to_user_id" binding:"required,uuid"`
	SkillOffered string `json:"skill_offered" binding:"required,max=100"`
	SkillWanted  string `json:"skill_wanted" binding:"required,max=100"`
	Message      string `json:"message" binding:"required"`
}

type RespondRequestInput struct {
	Status string `json:"status" binding:"required,oneof=accepted declined"`
}

// RequestWithProfile pairs a skill request with the counterpart's profile for
// display (the sender's profile on incoming requests, the recipient's on sent
// ones). Profile is nil when the counterpart has no profile anymore.
type RequestWithProfile struct {
	Request *model.SkillRequest `json:"request"`
	Profile *model.Profile      `json:"profile"`
}

type RequestService interface {
	// SendRequest creates a pending skill request from sender to the user in
	// input. There is no duplicate suppression: a sender may send any number
	// of requests to the same recipient.
	SendRequest(ctx context.Context, senderID uuid.UUID, input SendRequestInput) (*model.SkillRequest, error)
	// RespondToRequest transitions a pending request to accepted or declined.
	// Only the recipient may respond, and only while the request is pending.
	RespondToRequest(ctx context.Context, receiverID, requestID uuid.UUID, status string) (*model.SkillRequest, error)
	IncomingRequests(ctx context.Context, userID uuid.UUID) ([]RequestWithProfile, error)
	SentRequests(ctx context.Context, userID uuid.UUID) ([]RequestWithProfile, error)
}

type requestService struct {
	requests        repository.RequestRepository
	profiles        repository.ProfileRepository
	notificationSvc NotificationService
	redisClient     *redis.Client
	sendLimit       time.Duration
}

func NewRequestService(requests repository.RequestRepository, profiles repository.ProfileRepository, notificationSvc NotificationService, redisClient *redis.Client, sendLimit time.Duration) RequestService {
	return &requestService{
		requests:        requests,
		profiles:        profiles,
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		sendLimit:       sendLimit,
	}
}

func (s *requestService) SendRequest(ctx context.Context, senderID uuid.UUID, input SendRequestInput) (*model.SkillRequest, error) {
	message := strings.TrimSpace(input.Message)
	skillOffered := strings.TrimSpace(input.SkillOffered)
	skillWanted := strings.TrimSpace(input.SkillWanted)

	if message == "" || skillOffered == "" || skillWanted == "" {
		return nil, apperror.New(http.StatusBadRequest, "message, skill_offered and skill_wanted are required", apperror.ErrInvalidInput)
	}

	toUserID, err := uuid.Parse(input.ToUserID)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "invalid recipient id", apperror.ErrInvalidInput)
	}

	if toUserID == senderID {
		return nil, apperror.New(http.StatusBadRequest, "cannot send a skill request to yourself", apperror.ErrBadRequest)
	}

	senderProfile, err := s.profiles.FindByUserID(ctx, senderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusBadRequest, "create a profile before sending requests", apperror.ErrBadRequest)
		}
		return nil, err
	}

	receiverProfile, err := s.profiles.FindByUserID(ctx, toUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "recipient profile not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	// Private recipients look nonexistent, same as in the directory.
	if !receiverProfile.IsPublic {
		return nil, apperror.New(http.StatusNotFound, "recipient profile not found", apperror.ErrNotFound)
	}

	if !containsSkill(senderProfile.SkillsOffered, skillOffered) {
		return nil, apperror.New(http.StatusBadRequest, "skill_offered must be one of your offered skills", apperror.ErrInvalidInput)
	}

	if !containsSkill(receiverProfile.SkillsOffered, skillWanted) {
		return nil, apperror.New(http.StatusBadRequest, "skill_wanted must be one of the recipient's offered skills", apperror.ErrInvalidInput)
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, senderID, "send_request", s.sendLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		ttl, _ := GetRateLimitTTL(ctx, s.redisClient, senderID, "send_request")
		return nil, apperror.New(http.StatusTooManyRequests,
			fmt.Sprintf("you are sending requests too quickly, try again in %s", ttl.Round(time.Second)),
			apperror.ErrRateLimitExceeded)
	}

	request := &model.SkillRequest{
		FromUserID:   senderID,
		ToUserID:     toUserID,
		Message:      message,
		SkillOffered: skillOffered,
		SkillWanted:  skillWanted,
		Status:       model.RequestStatusPending,
	}

	if err := s.requests.Create(ctx, request); err != nil {
		if clearErr := ClearRateLimit(ctx, s.redisClient, senderID, "send_request"); clearErr != nil {
			log.Printf("failed to clear rate limit for %s: %v", senderID, clearErr)
		}
		return nil, err
	}

	s.notify(ctx, toUserID, senderID, request.ID, model.NotificationRequestReceived,
		fmt.Sprintf("%s wants to swap %s for your %s", senderProfile.Name, skillOffered, skillWanted))

	return request, nil
}

func (s *requestService) RespondToRequest(ctx context.Context, receiverID, requestID uuid.UUID, status string) (*model.SkillRequest, error) {
	if status != model.RequestStatusAccepted && status != model.RequestStatusDeclined {
		return nil, apperror.New(http.StatusBadRequest, "status must be accepted or declined", apperror.ErrInvalidInput)
	}

	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "request not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if request.ToUserID != receiverID {
		return nil, apperror.New(http.StatusForbidden, "only the recipient can respond to this request", apperror.ErrForbidden)
	}

	if request.Status != model.RequestStatusPending {
		return nil, apperror.New(http.StatusConflict,
			fmt.Sprintf("request has already been %s", request.Status), apperror.ErrConflict)
	}

	request.Status = status
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, err
	}

	notifType := model.NotificationRequestAccepted
	verb := "accepted"
	if status == model.RequestStatusDeclined {
		notifType = model.NotificationRequestDeclined
		verb = "declined"
	}

	receiverName := "The recipient"
	if receiverProfile, err := s.profiles.FindByUserID(ctx, receiverID); err == nil {
		receiverName = receiverProfile.Name
	}

	s.notify(ctx, request.FromUserID, receiverID, request.ID, notifType,
		fmt.Sprintf("%s %s your skill request", receiverName, verb))

	return request, nil
}

func (s *requestService) IncomingRequests(ctx context.Context, userID uuid.UUID) ([]RequestWithProfile, error) {
	requests, err := s.requests.FindByToUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.joinWithProfiles(ctx, requests, func(r *model.SkillRequest) uuid.UUID {
		return r.FromUserID
	})
}

func (s *requestService) SentRequests(ctx context.Context, userID uuid.UUID) ([]RequestWithProfile, error) {
	requests, err := s.requests.FindByFromUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.joinWithProfiles(ctx, requests, func(r *model.SkillRequest) uuid.UUID {
		return r.ToUserID
	})
}

func (s *requestService) joinWithProfiles(ctx context.Context, requests []*model.SkillRequest, counterpart func(*model.SkillRequest) uuid.UUID) ([]RequestWithProfile, error) {
	userIDs := make([]uuid.UUID, 0, len(requests))
	seen := make(map[uuid.UUID]struct{}, len(requests))
	for _, r := range requests {
		id := counterpart(r)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		userIDs = append(userIDs, id)
	}

	profiles, err := s.profiles.FindByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	byUserID := make(map[uuid.UUID]*model.Profile, len(profiles))
	for _, p := range profiles {
		byUserID[p.UserID] = p
	}

	result := make([]RequestWithProfile, 0, len(requests))
	for _, r := range requests {
		result = append(result, RequestWithProfile{
			Request: r,
			Profile: byUserID[counterpart(r)],
		})
	}

	return result, nil
}

func (s *requestService) notify(ctx context.Context, userID, actorID, requestID uuid.UUID, notifType, message string) {
	if s.notificationSvc == nil {
		return
	}

	notification := &model.Notification{
		UserID:    userID,
		ActorID:   actorID,
		RequestID: requestID,
		Type:      notifType,
		Message:   message,
	}

	if err := s.notificationSvc.CreateNotification(ctx, notification); err != nil {
		log.Printf("failed to create %s notification: %v", notifType, err)
	}
}

func containsSkill(skills []string, skill string) bool {
	for _, s := range skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}
