package models

import "time"

type GoalComment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	GoalID    uint64    `gorm:"not null" json:"goal_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Goal Goal `gorm:"foreignKey:GoalID" json:"goal,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
