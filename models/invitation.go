package models

import "time"

const (
	RSVPPending  = "PENDING"
	RSVPAccepted = "ACCEPTED"
	RSVPDeclined = "DECLINED"
	RSVPMaybe    = "MAYBE"
)

type Invitation struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	EventID  uint   `gorm:"index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;not null" json:"event_id"`
	Email    string `gorm:"not null" json:"email"`
	Name     string `gorm:"size:200" json:"name,omitempty"`
	Status   string `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	PlusOnes int    `gorm:"default:0" json:"plus_ones"`
	Note     string `gorm:"size:500" json:"note,omitempty"`
	Token    string `gorm:"uniqueIndex;not null" json:"token"`

	RespondedAt *time.Time `json:"responded_at,omitempty"` // set on first status change only
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
