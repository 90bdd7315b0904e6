package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"tripwise/internal/models/db_models"
	"tripwise/pkg/utils"
)

type PreferenceRepository interface {
	FindByAccount(ctx context.Context, accountID uuid.UUID) (*db_models.UserPreference, error)

	// Upsert creates or fully replaces the account's row and bumps its
	// version. Only the document, completed sections and onboarding flag
	// are taken from pref; the stored row is returned.
	Upsert(ctx context.Context, pref *db_models.UserPreference) (*db_models.UserPreference, error)

	// Delete removes the account's row and reports whether one existed.
	Delete(ctx context.Context, accountID uuid.UUID) (bool, error)
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) (*db_models.UserPreference, error) {
	var pref db_models.UserPreference
	err := r.db.WithContext(ctx).First(&pref, "account_id = ?", accountID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &pref, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref *db_models.UserPreference) (*db_models.UserPreference, error) {
	var stored db_models.UserPreference
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&stored, "account_id = ?", pref.AccountID).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			stored = db_models.UserPreference{
				AccountID:           pref.AccountID,
				Document:            pref.Document,
				CompletedSections:   pref.CompletedSections,
				OnboardingCompleted: pref.OnboardingCompleted,
				Version:             1,
				LastUpdated:         utils.NowUnixSeconds(),
			}
			return tx.Create(&stored).Error
		case err != nil:
			return err
		}

		stored.Document = pref.Document
		stored.CompletedSections = pref.CompletedSections
		stored.OnboardingCompleted = pref.OnboardingCompleted
		stored.Version++
		stored.LastUpdated = utils.NowUnixSeconds()
		return tx.Save(&stored).Error
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *preferenceRepository) Delete(ctx context.Context, accountID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Unscoped().
		Where("account_id = ?", accountID).
		Delete(&db_models.UserPreference{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
