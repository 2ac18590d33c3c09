package models

import "time"

// LineupEntry joins an Event to a Film at a zero-based position. Entries are
// owned by their event: editing a line-up replaces all of its rows in one batch.
type LineupEntry struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	EventID  uint   `gorm:"index:idx_event_position,unique;not null" json:"event_id"`
	Position int    `gorm:"index:idx_event_position,unique;not null" json:"position"`
	FilmID   uint   `gorm:"index;not null" json:"film_id"`
	Film     Film   `gorm:"foreignKey:FilmID" json:"film"`
	Note     string `gorm:"size:500" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
