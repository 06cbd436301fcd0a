package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusDeclined = "declined"
	// RequestStatusCompleted is a reserved terminal value. The schema accepts
	// it but no endpoint transitions a request into it yet.
	RequestStatusCompleted = "completed"
)

// SkillRequest is a proposal from one member to another to exchange specific
// skills. Requests are keyed by user id on both ends, matching the owning
// principal column of profiles.
type SkillRequest struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FromUserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"from_user_id"`
	ToUserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"to_user_id"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	SkillOffered string    `gorm:"size:100;not null" json:"skill_offered"`
	SkillWanted  string    `gorm:"size:100;not null" json:"skill_wanted"`
	Status       string    `gorm:"size:20;default:'pending';check:status IN ('pending','accepted','declined','completed')" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	FromUser *User `gorm:"foreignKey:FromUserID;constraint:OnDelete:CASCADE" json:"from_user,omitempty"`
	ToUser   *User `gorm:"foreignKey:ToUserID;constraint:OnDelete:CASCADE" json:"to_user,omitempty"`
}

func (r *SkillRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
