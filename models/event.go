package models

import "time"

type Event struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Slug         string     `gorm:"uniqueIndex;not null" json:"slug"`
	StartsAt     time.Time  `gorm:"not null" json:"starts_at"`
	DoorsAt      *time.Time `json:"doors_at,omitempty"`
	Location     string     `gorm:"size:300" json:"location,omitempty"`
	HeroImageURL string     `json:"hero_image_url,omitempty"`
	Published    bool       `gorm:"default:false" json:"published"`
	Archived     bool       `gorm:"default:false" json:"archived"`

	HostID uint `gorm:"index" json:"host_id"`

	Lineup          []LineupEntry    `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"lineup,omitempty"`
	Invitations     []Invitation     `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"invitations,omitempty"`
	FeatureRequests []FeatureRequest `gorm:"foreignKey:EventID" json:"feature_requests,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
