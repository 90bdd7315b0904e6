package request_models

import "encoding/json"

type ValidatePreferencesRequest struct {
	Preferences json.RawMessage `json:"preferences" binding:"required"`
}
