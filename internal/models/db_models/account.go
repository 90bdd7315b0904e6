package db_models

type Account struct {
	BaseModel
	Name         string
	Email        string          `gorm:"uniqueIndex;not null"`
	PasswordHash string          `gorm:"not null"`
	Preference   *UserPreference `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}
