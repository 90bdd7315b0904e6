package response_models

import "tripwise/internal/preferences"

type PreferenceResponse struct {
	Preferences         preferences.Document  `json:"preferences"`
	CompletedSections   []preferences.Section `json:"completedSections"`
	OnboardingCompleted bool                  `json:"onboardingCompleted"`
	Version             int64                 `json:"version"`
	LastUpdated         int64                 `json:"lastUpdated"`
}

type DraftResponse struct {
	Preferences preferences.Document `json:"preferences"`
	SavedAt     int64                `json:"savedAt"`
	ExpiresAt   int64                `json:"expiresAt"`
}

type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
}

type ValidationResult struct {
	IsValid bool              `json:"isValid"`
	Errors  []ValidationIssue `json:"errors"`
}
