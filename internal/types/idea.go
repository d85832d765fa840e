package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdeaSourceManual       = "manual"
	IdeaSourceFrankenstein = "frankenstein"
)

// Idea is the user's submitted concept. It is owned by exactly one user and
// persists independently of any documents generated from it.
type Idea struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_idea_user" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	IdeaText  string    `gorm:"column:idea_text;not null" json:"idea_text"`
	Source    string    `gorm:"column:source;not null;default:'manual';index" json:"source"` // manual|frankenstein
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Idea) TableName() string { return "idea" }
