package models

import "time"

type GoalStatus string

const (
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusDone       GoalStatus = "done"
	GoalStatusArchived   GoalStatus = "archived"
)

// Valid reports whether the status is one of the known states.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusInProgress, GoalStatusDone, GoalStatusArchived:
		return true
	}
	return false
}

type GoalPriority int

const (
	PriorityLow      GoalPriority = 1
	PriorityMedium   GoalPriority = 2
	PriorityHigh     GoalPriority = 3
	PriorityCritical GoalPriority = 4
)

// Valid reports whether the priority is within the known range.
func (p GoalPriority) Valid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

// Goal rows are never physically removed: deleting a goal forces
// Status to archived and nothing else.
type Goal struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	CategoryID  uint64       `gorm:"not null" json:"category_id"`
	UserID      uint64       `gorm:"not null" json:"user_id"`
	Status      GoalStatus   `gorm:"type:varchar(20);not null;default:'in_progress'" json:"status"`
	Priority    GoalPriority `gorm:"not null;default:2" json:"priority"`
	DueDate     *time.Time   `json:"due_date"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Category GoalCategory  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	User     User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments []GoalComment `gorm:"foreignKey:GoalID" json:"comments,omitempty"`
}
