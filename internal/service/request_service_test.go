package service

import (
	"context"
	"testing"

	"github.com/faridhnr/skillswap/internal/model"
	"github.com/faridhnr/skillswap/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type requestFixture struct {
	svc        RequestService
	requests   *fakeRequestRepo
	profiles   *fakeProfileRepo
	notifRepo  *fakeNotificationRepo
	senderID   uuid.UUID
	receiverID uuid.UUID
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()

	profiles := newFakeProfileRepo()
	requests := newFakeRequestRepo()
	notifRepo := &fakeNotificationRepo{}
	notifSvc := NewNotificationService(notifRepo, nil)

	senderID := uuid.New()
	receiverID := uuid.New()

	profiles.add(&model.Profile{
		UserID:        senderID,
		Name:          "Alice",
		SkillsOffered: []string{"Go", "Photography"},
		IsPublic:      true,
	})
	profiles.add(&model.Profile{
		UserID:        receiverID,
		Name:          "Bob",
		SkillsOffered: []string{"Cooking"},
		IsPublic:      true,
	})

	return &requestFixture{
		svc:        NewRequestService(requests, profiles, notifSvc, nil, 0),
		requests:   requests,
		profiles:   profiles,
		notifRepo:  notifRepo,
		senderID:   senderID,
		receiverID: receiverID,
	}
}

func (f *requestFixture) validInput() SendRequestInput {
	return SendRequestInput{
		ToUserID:     f.receiverID.String(),
		SkillOffered: "Go",
		SkillWanted:  "Cooking",
		Message:      "Let's swap!",
	}
}

func TestSendRequest_CreatesPendingRequest(t *testing.T) {
	f := newRequestFixture(t)

	request, err := f.svc.SendRequest(context.Background(), f.senderID, f.validInput())
	require.NoError(t, err)
	require.Equal(t, model.RequestStatusPending, request.Status)
	require.Equal(t, f.senderID, request.FromUserID)
	require.Equal(t, f.receiverID, request.ToUserID)

	// Recipient is notified
	require.Len(t, f.notifRepo.notifications, 1)
	notif := f.notifRepo.notifications[0]
	require.Equal(t, f.receiverID, notif.UserID)
	require.Equal(t, model.NotificationRequestReceived, notif.Type)
}

func TestSendRequest_EmptyMessagePerformsNoInsert(t *testing.T) {
	f := newRequestFixture(t)

	input := f.validInput()
	input.Message = "   "

	_, err := f.svc.SendRequest(context.Background(), f.senderID, input)
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	require.Zero(t, f.requests.createCalls)
}

func TestSendRequest_SelfRequestRejected(t *testing.T) {
	f := newRequestFixture(t)

	input := f.validInput()
	input.ToUserID = f.senderID.String()

	_, err := f.svc.SendRequest(context.Background(), f.senderID, input)
	require.ErrorIs(t, err, apperror.ErrBadRequest)
	require.Zero(t, f.requests.createCalls)
}

func TestSendRequest_SkillMustBeOffered(t *testing.T) {
	f := newRequestFixture(t)

	input := f.validInput()
	input.SkillOffered = "Juggling" // Alice doesn't offer this

	_, err := f.svc.SendRequest(context.Background(), f.senderID, input)
	require.ErrorIs(t, err, apperror.ErrInvalidInput)

	input = f.validInput()
	input.SkillWanted = "Juggling" // Bob doesn't offer this

	_, err = f.svc.SendRequest(context.Background(), f.senderID, input)
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	require.Zero(t, f.requests.createCalls)
}

func TestSendRequest_RequiresSenderProfile(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.svc.SendRequest(context.Background(), uuid.New(), f.validInput())
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestSendRequest_PrivateRecipientLooksNonexistent(t *testing.T) {
	f := newRequestFixture(t)

	hidden := uuid.New()
	f.profiles.add(&model.Profile{
		UserID:        hidden,
		Name:          "Hidden",
		SkillsOffered: []string{"Cooking"},
		IsPublic:      false,
	})

	input := f.validInput()
	input.ToUserID = hidden.String()

	_, err := f.svc.SendRequest(context.Background(), f.senderID, input)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	// Same outcome as a recipient that doesn't exist at all
	input.ToUserID = uuid.New().String()
	_, err = f.svc.SendRequest(context.Background(), f.senderID, input)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSendRequest_NoDuplicateSuppression(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.svc.SendRequest(context.Background(), f.senderID, f.validInput())
	require.NoError(t, err)
	_, err = f.svc.SendRequest(context.Background(), f.senderID, f.validInput())
	require.NoError(t, err)

	require.Equal(t, 2, f.requests.createCalls)
}

func TestRespondToRequest_AcceptsPendingRequest(t *testing.T) {
	f := newRequestFixture(t)

	request, err := f.svc.SendRequest(context.Background(), f.senderID, f.validInput())
	require.NoError(t, err)

	updated, err := f.svc.RespondToRequest(context.Background(), f.receiverID, request.ID, model.RequestStatusAccepted)
	require.NoError(t, err)
	require.Equal(t, model.RequestStatusAccepted, updated.Status)

	// Sender is notified about the response
	require.Len(t, f.notifRepo.notifications, 2)
	notif := f.notifRepo.notifications[1]
	require.Equal(t, f.senderID, notif.UserID)
	require.Equal(t, model.NotificationRequestAccepted, notif.Type)
}

func TestRespondToRequest_OnlyRecipientMayRespond(t *testing.T) {
	f := newRequestFixture(t)

	request, err := f.svc.SendRequest(context.Background(), f.senderID, f.validInput())
	require.NoError(t, err)

	_, err = f.svc.RespondToRequest(context.Background(), f.senderID, request.ID, model.RequestStatusAccepted)
	require.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.svc.RespondToRequest(context.Background(), uuid.New(), request.ID, model.RequestStatusAccepted)
	require.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestRespondToRequest_TerminalStateIsConflict(t *testing.T) {
	f := newRequestFixture(t)

	request, err := f.svc.SendRequest(context.Background(), f.senderID, f.validInput())
	require.NoError(t, err)

	_, err = f.svc.RespondToRequest(context.Background(), f.receiverID, request.ID, model.RequestStatusDeclined)
	require.NoError(t, err)

	// Accepting an already-declined request must not overwrite the status.
	_, err = f.svc.RespondToRequest(context.Background(), f.receiverID, request.ID, model.RequestStatusAccepted)
	require.ErrorIs(t, err, apperror.ErrConflict)

	stored, err := f.requests.FindByID(context.Background(), request.ID)
	require.NoError(t, err)
	require.Equal(t, model.RequestStatusDeclined, stored.Status)
}

func TestRespondToRequest_InvalidStatus(t *testing.T) {
	f := newRequestFixture(t)

	request, err := f.svc.SendRequest(context.Background(), f.senderID, f.validInput())
	require.NoError(t, err)

	for _, status := range []string{"completed", "pending", "bogus"} {
		_, err := f.svc.RespondToRequest(context.Background(), f.receiverID, request.ID, status)
		require.ErrorIs(t, err, apperror.ErrInvalidInput, "status %q", status)
	}
}

func TestRespondToRequest_UnknownRequest(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.svc.RespondToRequest(context.Background(), f.receiverID, uuid.New(), model.RequestStatusAccepted)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestIncomingAndSentRequests_JoinCounterpartProfiles(t *testing.T) {
	f := newRequestFixture(t)

	request, err := f.svc.SendRequest(context.Background(), f.senderID, f.validInput())
	require.NoError(t, err)

	incoming, err := f.svc.IncomingRequests(context.Background(), f.receiverID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	require.Equal(t, request.ID, incoming[0].Request.ID)
	require.NotNil(t, incoming[0].Profile)
	require.Equal(t, "Alice", incoming[0].Profile.Name)

	sent, err := f.svc.SentRequests(context.Background(), f.senderID)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	require.NotNil(t, sent[0].Profile)
	require.Equal(t, "Bob", sent[0].Profile.Name)
}
