package repository

import (
	"context"

	"github.com/faridhnr/skillswap/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestRepository interface {
	Create(ctx context.Context, request *model.SkillRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SkillRequest, error)
	FindByToUserID(ctx context.Context, userID uuid.UUID) ([]*model.SkillRequest, error)
	FindByFromUserID(ctx context.Context, userID uuid.UUID) ([]*model.SkillRequest, error)
	Update(ctx context.Context, request *model.SkillRequest) error
	Count(ctx context.Context) (int64, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *model.SkillRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SkillRequest, error) {
	var request model.SkillRequest
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}

	return &request, nil
}

func (r *requestRepository) FindByToUserID(ctx context.Context, userID uuid.UUID) ([]*model.SkillRequest, error) {
	var requests []*model.SkillRequest
	if err := r.db.WithContext(ctx).
		Where("to_user_id = ?", userID).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *requestRepository) FindByFromUserID(ctx context.Context, userID uuid.UUID) ([]*model.SkillRequest, error) {
	var requests []*model.SkillRequest
	if err := r.db.WithContext(ctx).
		Where("from_user_id = ?", userID).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *requestRepository) Update(ctx context.Context, request *model.SkillRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *requestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.SkillRequest{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
