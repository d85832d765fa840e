package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	TierFree  = "free"
	TierPaid  = "paid"
	TierAdmin = "admin"
)

// CreditAccount tracks a user's remaining billable operations. Admin tier
// is unmetered; free/paid tiers consume one credit per billable operation.
type CreditAccount struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_credit_account_user" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Credits   int       `gorm:"column:credits;not null;default:0" json:"credits"`
	Tier      string    `gorm:"column:tier;not null;default:'free';index" json:"tier"` // free|paid|admin
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CreditAccount) TableName() string { return "credit_account" }

// CreditDeduction records one completed deduction keyed by the caller's
// operation id. A repeated deduction with the same operation id is a no-op,
// which makes retried persistence safe from double-charging.
type CreditDeduction struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_credit_deduction_user" json:"user_id"`
	OperationID string    `gorm:"column:operation_id;not null;uniqueIndex:idx_credit_deduction_op" json:"operation_id"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (CreditDeduction) TableName() string { return "credit_deduction" }
