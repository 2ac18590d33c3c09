package models

import "time"

const (
	FeatureRequestPending  = "PENDING"
	FeatureRequestApproved = "APPROVED"
	FeatureRequestRejected = "REJECTED"
	FeatureRequestArchived = "ARCHIVED"
)

// FeatureRequest is a visitor's wish for a film to be shown. A host may later
// link it to a Film record and to the Event that fulfils it.
type FeatureRequest struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Email         string `gorm:"not null" json:"email"`
	Name          string `gorm:"size:200" json:"name,omitempty"`
	Title         string `gorm:"not null" json:"title"`
	LetterboxdURL string `json:"letterboxd_url,omitempty"`
	Notes         string `gorm:"size:1000" json:"notes,omitempty"`
	Status        string `gorm:"type:varchar(20);default:'PENDING'" json:"status"`

	FilmID  *uint `gorm:"index" json:"film_id,omitempty"`
	Film    *Film `gorm:"foreignKey:FilmID" json:"film,omitempty"`
	EventID *uint `gorm:"index" json:"event_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
