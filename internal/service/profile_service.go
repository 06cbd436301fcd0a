package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/faridhnr/skillswap/internal/model"
	"github.com/faridhnr/skillswap/internal/repository"
	"github.com/faridhnr/skillswap/pkg/apperror"
	"github.com/faridhnr/skillswap/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateProfileInput struct {
	Name          string   `json:"name" form:"name" binding:"required,max=100"`
	Location      *string  `json:"location" form:"location"`
	Bio           *string  `json:"bio" form:"bio"`
	SkillsOffered []string `json:"skills_offered" form:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted" form:"skills_wanted"`
	Availability  *string  `json:"availability" form:"availability"`
	IsPublic      *bool    `json:"is_public" form:"is_public"`
}

type UpdateProfileInput struct {
	Name          *string  `json:"name" form:"name"`
	Location      *string  `json:"location" form:"location"`
	Bio           *string  `json:"bio" form:"bio"`
	SkillsOffered []string `json:"skills_offered" form:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted" form:"skills_wanted"`
	Availability  *string  `json:"availability" form:"availability"`
	IsPublic      *bool    `json:"is_public" form:"is_public"`
}

type ProfileService interface {
	// CreateProfile creates the profile owned by userID. Each user gets at
	// most one profile; a second create attempt is a conflict.
	CreateProfile(ctx context.Context, userID uuid.UUID, input CreateProfileInput, avatar *AvatarFile) (*model.Profile, error)
	// GetProfile returns a profile by id. Private profiles are only visible
	// to their owner; to anyone else they look like they don't exist.
	GetProfile(ctx context.Context, requesterID, profileID uuid.UUID) (*model.Profile, error)
	// GetOwnProfile returns the caller's profile regardless of visibility.
	GetOwnProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput, avatar *AvatarFile) (*model.Profile, error)
}

type profileService struct {
	profiles     repository.ProfileRepository
	users        repository.UserRepository
	imageStorage storage.ImageStorage
	searchIndex  SearchIndexService
}

func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository, imageStorage storage.ImageStorage, searchIndex SearchIndexService) ProfileService {
	return &profileService{
		profiles:     profiles,
		users:        users,
		imageStorage: imageStorage,
		searchIndex:  searchIndex,
	}
}

func (s *profileService) CreateProfile(ctx context.Context, userID uuid.UUID, input CreateProfileInput, avatar *AvatarFile) (*model.Profile, error) {
	// Absence of a row is the expected branch here; anything else is a real error.
	if _, err := s.profiles.FindByUserID(ctx, userID); err == nil {
		return nil, apperror.New(http.StatusConflict, "profile already exists", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusUnauthorized, "user not found", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	availability := model.AvailabilityFlexible
	if input.Availability != nil && strings.TrimSpace(*input.Availability) != "" {
		availability = strings.TrimSpace(*input.Availability)
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	profile := &model.Profile{
		UserID:        userID,
		Name:          strings.TrimSpace(input.Name),
		Email:         user.Email,
		Location:      normalizeOptional(input.Location),
		Bio:           normalizeOptional(input.Bio),
		SkillsOffered: dedupeSkills(input.SkillsOffered),
		SkillsWanted:  dedupeSkills(input.SkillsWanted),
		Availability:  availability,
		IsPublic:      isPublic,
	}

	if avatar != nil && avatar.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "avatars", avatar.FileName)
		if err != nil {
			return nil, err
		}
		profile.AvatarURL = &url
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.syncSearchIndex(profile)

	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, requesterID, profileID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "profile not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	// A private profile must be indistinguishable from a nonexistent one for
	// anyone but its owner.
	if !profile.IsPublic && profile.UserID != requesterID {
		return nil, apperror.New(http.StatusNotFound, "profile not found", apperror.ErrNotFound)
	}

	return profile, nil
}

func (s *profileService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "profile not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput, avatar *AvatarFile) (*model.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "profile not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		profile.Name = strings.TrimSpace(*input.Name)
	}
	if input.Location != nil {
		profile.Location = normalizeOptional(input.Location)
	}
	if input.Bio != nil {
		profile.Bio = normalizeOptional(input.Bio)
	}
	if input.SkillsOffered != nil {
		profile.SkillsOffered = dedupeSkills(input.SkillsOffered)
	}
	if input.SkillsWanted != nil {
		profile.SkillsWanted = dedupeSkills(input.SkillsWanted)
	}
	if input.Availability != nil && strings.TrimSpace(*input.Availability) != "" {
		profile.Availability = strings.TrimSpace(*input.Availability)
	}
	if input.IsPublic != nil {
		profile.IsPublic = *input.IsPublic
	}

	if avatar != nil && avatar.Reader != nil && s.imageStorage != nil {
		oldURL := profile.AvatarURL

		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "avatars", avatar.FileName)
		if err != nil {
			return nil, err
		}
		profile.AvatarURL = &url

		if oldURL != nil && *oldURL != "" {
			if err := s.imageStorage.DeleteImage(ctx, *oldURL); err != nil {
				log.Printf("failed to delete old avatar: %v", err)
			}
		}
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	s.syncSearchIndex(profile)

	return profile, nil
}

// syncSearchIndex mirrors the profile into the search index. Only public
// profiles are indexed; failures never fail the triggering operation.
func (s *profileService) syncSearchIndex(profile *model.Profile) {
	if s.searchIndex == nil {
		return
	}

	if profile.IsPublic {
		if err := s.searchIndex.IndexProfile(profile); err != nil {
			log.Printf("failed to index profile %s: %v", profile.ID, err)
		}
		return
	}

	if err := s.searchIndex.DeleteProfile(profile.ID.String()); err != nil {
		log.Printf("failed to remove profile %s from index: %v", profile.ID, err)
	}
}

// dedupeSkills trims entries, drops empties and removes case-insensitive
// duplicates while preserving insertion order.
func dedupeSkills(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}

		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, trimmed)
	}

	return result
}
