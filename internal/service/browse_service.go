package service

import (
	"context"
	"sort"
	"strings"

	"github.com/faridhnr/skillswap/internal/model"
	"github.com/faridhnr/skillswap/internal/repository"
	"github.com/google/uuid"
)

const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortName   = "name"
	SortSkills = "skills"

	// AvailabilityAll is the filter sentinel that matches every profile.
	AvailabilityAll = "all"
)

type BrowseOptions struct {
	Search       string `form:"search"`
	Location     string `form:"location"`
	Availability string `form:"availability"`
	Sort         string `form:"sort"`
}

type BrowseService interface {
	// Browse returns the public profiles matching opts, excluding the
	// caller's own profile.
	Browse(ctx context.Context, userID uuid.UUID, opts BrowseOptions) ([]*model.Profile, error)
}

type browseService struct {
	profiles repository.ProfileRepository
}

func NewBrowseService(profiles repository.ProfileRepository) BrowseService {
	return &browseService{profiles: profiles}
}

func (s *browseService) Browse(ctx context.Context, userID uuid.UUID, opts BrowseOptions) ([]*model.Profile, error) {
	profiles, err := s.profiles.FindAllPublic(ctx)
	if err != nil {
		return nil, err
	}

	others := make([]*model.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.UserID != userID {
			others = append(others, p)
		}
	}

	result := FilterProfiles(others, opts)
	SortProfiles(result, opts.Sort)

	return result, nil
}

// FilterProfiles applies the browse predicates to a profile snapshot. All
// predicates are ANDed; an empty search term matches everything, as does the
// "all" availability sentinel. A nil location never matches a non-empty
// location filter.
func FilterProfiles(profiles []*model.Profile, opts BrowseOptions) []*model.Profile {
	search := strings.ToLower(strings.TrimSpace(opts.Search))
	location := strings.ToLower(strings.TrimSpace(opts.Location))
	availability := strings.ToLower(strings.TrimSpace(opts.Availability))

	result := make([]*model.Profile, 0, len(profiles))
	for _, p := range profiles {
		if search != "" && !matchesSearch(p, search) {
			continue
		}

		if location != "" {
			if p.Location == nil || !strings.Contains(strings.ToLower(*p.Location), location) {
				continue
			}
		}

		if availability != "" && availability != AvailabilityAll {
			if !strings.EqualFold(p.Availability, availability) {
				continue
			}
		}

		result = append(result, p)
	}

	return result
}

func matchesSearch(p *model.Profile, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	for _, skill := range p.SkillsOffered {
		if strings.Contains(strings.ToLower(skill), term) {
			return true
		}
	}
	for _, skill := range p.SkillsWanted {
		if strings.Contains(strings.ToLower(skill), term) {
			return true
		}
	}
	return false
}

// SortProfiles orders profiles in place. The sort is stable, so ties keep the
// order of the underlying snapshot. Unknown values fall back to newest-first.
func SortProfiles(profiles []*model.Profile, sortBy string) {
	switch sortBy {
	case SortOldest:
		sort.SliceStable(profiles, func(i, j int) bool {
			return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
		})
	case SortName:
		sort.SliceStable(profiles, func(i, j int) bool {
			return strings.ToLower(profiles[i].Name) < strings.ToLower(profiles[j].Name)
		})
	case SortSkills:
		sort.SliceStable(profiles, func(i, j int) bool {
			return len(profiles[i].SkillsOffered) > len(profiles[j].SkillsOffered)
		})
	default: // SortNewest
		sort.SliceStable(profiles, func(i, j int) bool {
			return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
		})
	}
}
