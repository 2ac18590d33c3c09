package models

import "time"

type Film struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Title         string `gorm:"not null" json:"title"`
	LetterboxdURL string `gorm:"uniqueIndex;not null" json:"letterboxd_url"`
	RuntimeMin    int    `json:"runtime_min,omitempty"` // runtime in minutes, 0 = unknown
	PosterURL     string `json:"poster_url,omitempty"`
	Director      string `gorm:"size:200" json:"director,omitempty"`
	Synopsis      string `gorm:"type:text" json:"synopsis,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
