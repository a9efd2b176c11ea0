package models

import "time"

type ParticipantRole string

const (
	RoleOwner  ParticipantRole = "owner"
	RoleWriter ParticipantRole = "writer"
	RoleReader ParticipantRole = "reader"
)

// BoardParticipant links a user to a board with a role. Every board has
// exactly one owner participant: the user who created it.
type BoardParticipant struct {
	BoardID   uint64          `gorm:"primarykey" json:"board_id"`
	UserID    uint64          `gorm:"primarykey" json:"user_id"`
	Role      ParticipantRole `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time       `json:"created_at"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// CanWrite reports whether the role sits in the write tier.
func (r ParticipantRole) CanWrite() bool {
	return r == RoleOwner || r == RoleWriter
}
