package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	DocumentTypeStartupAnalysis   = "startup_analysis"
	DocumentTypeHackathonAnalysis = "hackathon_analysis"
)

// Document is a generated artifact tied to exactly one idea. Many documents
// may reference one idea; deleting a document never deletes its idea.
type Document struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	IdeaID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_document_idea" json:"idea_id"`
	Idea         *Idea          `gorm:"foreignKey:IdeaID;references:ID" json:"idea,omitempty"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_document_user" json:"user_id"`
	DocumentType string         `gorm:"column:document_type;not null;index" json:"document_type"`
	Content      datatypes.JSON `gorm:"column:content;type:jsonb" json:"content"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (Document) TableName() string { return "document" }
