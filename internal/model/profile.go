package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Recognized availability values. Free text is still accepted; the UI offers
// these options but the server does not reject other values.
const (
	AvailabilityFlexible = "flexible"
	AvailabilityWeekends = "weekends"
	AvailabilityEvenings = "evenings"
	AvailabilityWeekdays = "weekdays"
	AvailabilityLimited  = "limited"
)

type Profile struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Email         string         `gorm:"size:100;not null" json:"email"`
	Location      *string        `gorm:"size:120" json:"location,omitempty"`
	Bio           *string        `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL     *string        `gorm:"type:text" json:"avatar_url,omitempty"`
	SkillsOffered pq.StringArray `gorm:"type:text[]" json:"skills_offered"`
	SkillsWanted  pq.StringArray `gorm:"type:text[]" json:"skills_wanted"`
	Availability  string         `gorm:"size:30;default:'flexible'" json:"availability"`
	IsPublic      bool           `gorm:"default:true" json:"is_public"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
