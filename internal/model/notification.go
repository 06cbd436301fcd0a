package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationRequestReceived = "request_received"
	NotificationRequestAccepted = "request_accepted"
	NotificationRequestDeclined = "request_declined"
)

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"` // recipient
	ActorID   uuid.UUID `gorm:"type:uuid;not null" json:"actor_id"`      // counterpart who triggered it
	RequestID uuid.UUID `gorm:"type:uuid;not null" json:"request_id"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Message   string    `gorm:"type:text" json:"message"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}
