package service

import (
	"context"

	"github.com/faridhnr/skillswap/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They return gorm.ErrRecordNotFound for the
// no-row branch, matching what the services expect from the real
// implementations.

type fakeProfileRepo struct {
	profiles    map[uuid.UUID]*model.Profile
	createCalls int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*model.Profile)}
}

func (r *fakeProfileRepo) add(p *model.Profile) *model.Profile {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.profiles[p.ID] = p
	return p
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *model.Profile) error {
	r.createCalls++
	r.add(profile)
	return nil
}

func (r *fakeProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProfileRepo) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]*model.Profile, error) {
	result := []*model.Profile{}
	for _, id := range userIDs {
		if p, err := r.FindByUserID(ctx, id); err == nil {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakeProfileRepo) FindAllPublic(ctx context.Context) ([]*model.Profile, error) {
	result := []*model.Profile{}
	for _, p := range r.profiles {
		if p.IsPublic {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, profile *model.Profile) error {
	r.profiles[profile.ID] = profile
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) add(u *model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeRequestRepo struct {
	requests    map[uuid.UUID]*model.SkillRequest
	order       []uuid.UUID
	createCalls int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uuid.UUID]*model.SkillRequest)}
}

func (r *fakeRequestRepo) add(req *model.SkillRequest) *model.SkillRequest {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	r.requests[req.ID] = req
	r.order = append(r.order, req.ID)
	return req
}

func (r *fakeRequestRepo) Create(ctx context.Context, request *model.SkillRequest) error {
	r.createCalls++
	r.add(request)
	return nil
}

func (r *fakeRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SkillRequest, error) {
	if req, ok := r.requests[id]; ok {
		return req, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRequestRepo) FindByToUserID(ctx context.Context, userID uuid.UUID) ([]*model.SkillRequest, error) {
	result := []*model.SkillRequest{}
	for _, id := range r.order {
		if req := r.requests[id]; req.ToUserID == userID {
			result = append(result, req)
		}
	}
	return result, nil
}

func (r *fakeRequestRepo) FindByFromUserID(ctx context.Context, userID uuid.UUID) ([]*model.SkillRequest, error) {
	result := []*model.SkillRequest{}
	for _, id := range r.order {
		if req := r.requests[id]; req.FromUserID == userID {
			result = append(result, req)
		}
	}
	return result, nil
}

func (r *fakeRequestRepo) Update(ctx context.Context, request *model.SkillRequest) error {
	r.requests[request.ID] = request
	return nil
}

func (r *fakeRequestRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.requests)), nil
}

type fakeNotificationRepo struct {
	notifications []*model.Notification
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *model.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	result := []model.Notification{}
	for _, n := range r.notifications {
		if n.UserID == userID {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}
