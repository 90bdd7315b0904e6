package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"tripwise/internal/models/db_models"
	"tripwise/internal/models/response_models"
	"tripwise/internal/preferences"
	"tripwise/internal/repositories"
	mem "tripwise/pkg/memcache"
	"tripwise/pkg/utils"
)

type PreferenceServiceInterface interface {
	GetPreferences(ctx context.Context, accountID string) (*response_models.PreferenceResponse, error)
	ReplacePreferences(ctx context.Context, accountID string, raw []byte) (*response_models.PreferenceResponse, error)
	UpdateSection(ctx context.Context, accountID, section string, raw []byte) (*response_models.PreferenceResponse, error)
	DeletePreferences(ctx context.Context, accountID string) error
	SaveDraft(ctx context.Context, accountID string, raw []byte) (*response_models.DraftResponse, error)
	GetDraft(ctx context.Context, accountID string) (*response_models.DraftResponse, error)
	Validate(raw []byte) *response_models.ValidationResult
	Defaults() preferences.Document
}

type PreferenceService struct {
	prefRepo repositories.PreferenceRepository
	drafts   mem.DraftStore
	draftTTL time.Duration
	logger   *zap.Logger
}

func NewPreferenceService(prefRepo repositories.PreferenceRepository, drafts mem.DraftStore, draftTTL time.Duration, logger *zap.Logger) PreferenceServiceInterface {
	return &PreferenceService{
		prefRepo: prefRepo,
		drafts:   drafts,
		draftTTL: draftTTL,
		logger:   logger,
	}
}

func (p *PreferenceService) GetPreferences(ctx context.Context, accountID string) (*response_models.PreferenceResponse, error) {
	id, err := parseAccountID(accountID)
	if err != nil {
		return nil, err
	}

	pref, err := p.prefRepo.FindByAccount(ctx, id)
	if err != nil {
		p.logger.Error("Loading preferences failed", zap.String("account_id", accountID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if pref == nil {
		return nil, utils.ErrPreferencesNotFound
	}
	return toPreferenceResponse(pref)
}

// ReplacePreferences validates the whole document, sections first and then
// the cross-field rules, and replaces the stored copy.
func (p *PreferenceService) ReplacePreferences(ctx context.Context, accountID string, raw []byte) (*response_models.PreferenceResponse, error) {
	id, err := parseAccountID(accountID)
	if err != nil {
		return nil, err
	}

	doc, err := preferences.DecodeDocument(raw)
	if err != nil {
		return nil, err
	}
	if err := preferences.Validate(doc); err != nil {
		return nil, err
	}
	return p.store(ctx, id, doc)
}

// UpdateSection replaces one section of an existing document. The section
// is validated on its own and the merged document against the cross-field
// rules.
func (p *PreferenceService) UpdateSection(ctx context.Context, accountID, section string, raw []byte) (*response_models.PreferenceResponse, error) {
	sec, ok := preferences.ParseSection(section)
	if !ok {
		return nil, fmt.Errorf("%w: %s", utils.ErrInvalidSection, section)
	}
	id, err := parseAccountID(accountID)
	if err != nil {
		return nil, err
	}

	existing, err := p.prefRepo.FindByAccount(ctx, id)
	if err != nil {
		p.logger.Error("Loading preferences failed", zap.String("account_id", accountID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if existing == nil {
		return nil, utils.ErrPreferencesNotFound
	}

	merged, err := mergeSection(existing.Document, sec, raw)
	if err != nil {
		return nil, err
	}
	if err := preferences.ValidateSection(sec, merged); err != nil {
		return nil, err
	}
	if err := preferences.ValidateCrossField(merged); err != nil {
		return nil, err
	}
	return p.store(ctx, id, merged)
}

func (p *PreferenceService) DeletePreferences(ctx context.Context, accountID string) error {
	id, err := parseAccountID(accountID)
	if err != nil {
		return err
	}

	deleted, err := p.prefRepo.Delete(ctx, id)
	if err != nil {
		p.logger.Error("Deleting preferences failed", zap.String("account_id", accountID), zap.Error(err))
		return utils.ErrDatabaseError
	}
	p.drafts.Delete(accountID)
	if !deleted {
		return utils.ErrPreferencesNotFound
	}
	return nil
}

// SaveDraft keeps an unfinished document. Drafts are checked for shape only;
// section and cross-field rules apply when the document is submitted.
func (p *PreferenceService) SaveDraft(_ context.Context, accountID string, raw []byte) (*response_models.DraftResponse, error) {
	if _, err := parseAccountID(accountID); err != nil {
		return nil, err
	}
	doc, err := preferences.DecodeDocument(raw)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}

	draft := p.drafts.Set(accountID, data, p.draftTTL)
	p.logger.Debug("Draft saved", zap.String("account_id", accountID), zap.Int("sections", len(doc.PresentSections())))
	return &response_models.DraftResponse{
		Preferences: doc,
		SavedAt:     draft.SavedAt.Unix(),
		ExpiresAt:   draft.ExpiresAt.Unix(),
	}, nil
}

func (p *PreferenceService) GetDraft(_ context.Context, accountID string) (*response_models.DraftResponse, error) {
	draft, ok := p.drafts.Get(accountID)
	if !ok {
		return nil, utils.ErrDraftNotFound
	}
	doc, err := preferences.DecodeDocument(draft.Data)
	if err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &response_models.DraftResponse{
		Preferences: doc,
		SavedAt:     draft.SavedAt.Unix(),
		ExpiresAt:   draft.ExpiresAt.Unix(),
	}, nil
}

// Validate reports every problem with raw without storing anything: the
// first failing field of each section plus every violated cross-field rule.
func (p *PreferenceService) Validate(raw []byte) *response_models.ValidationResult {
	result := &response_models.ValidationResult{Errors: []response_models.ValidationIssue{}}

	doc, err := preferences.DecodeDocument(raw)
	if err != nil {
		result.Errors = append(result.Errors, issueFor(err))
		return result
	}
	for _, sec := range preferences.Sections {
		if err := preferences.ValidateSection(sec, doc); err != nil {
			result.Errors = append(result.Errors, issueFor(err))
		}
	}
	if len(result.Errors) == 0 {
		for _, c := range preferences.CrossFieldViolations(doc) {
			result.Errors = append(result.Errors, issueFor(c))
		}
	}
	result.IsValid = len(result.Errors) == 0
	return result
}

func (p *PreferenceService) Defaults() preferences.Document {
	return preferences.Defaults()
}

func (p *PreferenceService) store(ctx context.Context, id uuid.UUID, doc preferences.Document) (*response_models.PreferenceResponse, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode preferences: %w", err)
	}
	completed := doc.PresentSections()

	stored, err := p.prefRepo.Upsert(ctx, &db_models.UserPreference{
		AccountID:           id,
		Document:            datatypes.JSON(data),
		CompletedSections:   sectionNames(completed),
		OnboardingCompleted: len(completed) == len(preferences.Sections),
	})
	if err != nil {
		p.logger.Error("Saving preferences failed", zap.String("account_id", id.String()), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	// a stored draft is superseded by the saved document
	p.drafts.Delete(id.String())
	p.logger.Info("Preferences saved",
		zap.String("account_id", id.String()),
		zap.Int64("version", stored.Version),
		zap.Bool("onboarding_completed", stored.OnboardingCompleted))
	return toPreferenceResponse(stored)
}

func mergeSection(stored datatypes.JSON, sec preferences.Section, raw []byte) (preferences.Document, error) {
	tree := make(map[string]json.RawMessage)
	if len(stored) > 0 {
		if err := json.Unmarshal(stored, &tree); err != nil {
			return preferences.Document{}, fmt.Errorf("decode stored preferences: %w", err)
		}
	}
	if !json.Valid(raw) {
		return preferences.Document{}, &preferences.ValidationError{
			Field:   string(sec),
			Message: fmt.Sprintf("Invalid value for %s: malformed JSON", sec),
		}
	}
	tree[string(sec)] = json.RawMessage(raw)

	merged, err := json.Marshal(tree)
	if err != nil {
		return preferences.Document{}, fmt.Errorf("encode merged preferences: %w", err)
	}
	return preferences.DecodeDocument(merged)
}

func toPreferenceResponse(pref *db_models.UserPreference) (*response_models.PreferenceResponse, error) {
	doc, err := preferences.DecodeDocument(pref.Document)
	if err != nil {
		return nil, fmt.Errorf("decode stored preferences: %w", err)
	}
	completed := make([]preferences.Section, 0, len(pref.CompletedSections))
	for _, name := range pref.CompletedSections {
		if sec, ok := preferences.ParseSection(name); ok {
			completed = append(completed, sec)
		}
	}
	return &response_models.PreferenceResponse{
		Preferences:         doc,
		CompletedSections:   completed,
		OnboardingCompleted: pref.OnboardingCompleted,
		Version:             pref.Version,
		LastUpdated:         pref.LastUpdated,
	}, nil
}

func issueFor(err error) response_models.ValidationIssue {
	var verr *preferences.ValidationError
	var conflict *preferences.ConflictError
	switch {
	case errors.As(err, &verr):
		return response_models.ValidationIssue{Field: verr.Field, Message: verr.Message}
	case errors.As(err, &conflict):
		field := ""
		if len(conflict.Fields) > 0 {
			field = conflict.Fields[0]
		}
		return response_models.ValidationIssue{Field: field, Message: conflict.Message, Rule: conflict.Rule}
	}
	return response_models.ValidationIssue{Message: err.Error()}
}

func sectionNames(secs []preferences.Section) []string {
	out := make([]string, len(secs))
	for i, s := range secs {
		out[i] = string(s)
	}
	return out
}

func parseAccountID(accountID string) (uuid.UUID, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return uuid.Nil, utils.ErrUnauthenticated
	}
	return id, nil
}
