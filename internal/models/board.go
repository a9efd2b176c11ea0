package models

import "time"

type Board struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Participants []BoardParticipant `gorm:"foreignKey:BoardID" json:"participants,omitempty"`
	Categories   []GoalCategory     `gorm:"foreignKey:BoardID" json:"categories,omitempty"`
}
