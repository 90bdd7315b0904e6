package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// UserPreference stores one account's preferences document as jsonb. Version
// starts at 1 and is bumped on every replace or section update.
type UserPreference struct {
	BaseModel
	AccountID           uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null"`
	Document            datatypes.JSON `gorm:"type:jsonb;not null"`
	CompletedSections   pq.StringArray `gorm:"type:text[]"`
	Version             int64          `gorm:"not null;default:1"`
	OnboardingCompleted bool           `gorm:"not null;default:false"`
	LastUpdated         int64
}
