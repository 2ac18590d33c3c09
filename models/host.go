package models

import "time"

type Host struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	FullName     string `gorm:"not null" json:"full_name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Password     string `gorm:"not null" json:"-"` // bcrypt hash
	Role         string `gorm:"type:varchar(50);default:'host'" json:"role"`
	RefreshToken string `json:"-"`

	Events []Event `gorm:"foreignKey:HostID" json:"events,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
