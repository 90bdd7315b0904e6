package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tripwise/internal/models/request_models"
	"tripwise/internal/services"
	"tripwise/pkg/utils"
)

type PreferencesController struct {
	preferenceService services.PreferenceServiceInterface
}

func NewPreferencesController(preferenceService services.PreferenceServiceInterface) *PreferencesController {
	return &PreferencesController{
		preferenceService: preferenceService,
	}
}

// GetPreferences godoc
// @Summary Get the caller's preferences
// @Tags Preferences
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /preferences [get]
func (p *PreferencesController) GetPreferences(c *gin.Context) {
	prefs, err := p.preferenceService.GetPreferences(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, prefs, "Preferences fetched successfully")
}

// ReplacePreferences godoc
// @Summary Create or replace the caller's preferences
// @Description The whole document is validated; conflicting sections are rejected with 422
// @Tags Preferences
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Security BearerAuth
// @Router /preferences [put]
func (p *PreferencesController) ReplacePreferences(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	prefs, err := p.preferenceService.ReplacePreferences(c.Request.Context(), c.GetString("user_id"), body)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, prefs, "Preferences saved successfully")
}

// UpdateSection godoc
// @Summary Replace one section of the caller's preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param section path string true "Section name"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Security BearerAuth
// @Router /preferences/{section} [patch]
func (p *PreferencesController) UpdateSection(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	prefs, err := p.preferenceService.UpdateSection(c.Request.Context(), c.GetString("user_id"), c.Param("section"), body)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, prefs, "Preference section updated successfully")
}

// DeletePreferences godoc
// @Summary Delete the caller's preferences
// @Tags Preferences
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /preferences [delete]
func (p *PreferencesController) DeletePreferences(c *gin.Context) {
	if err := p.preferenceService.DeletePreferences(c.Request.Context(), c.GetString("user_id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Preferences deleted successfully")
}

// SaveDraft godoc
// @Summary Save an unfinished preferences document
// @Tags Preferences
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /preferences/draft [post]
func (p *PreferencesController) SaveDraft(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	draft, err := p.preferenceService.SaveDraft(c.Request.Context(), c.GetString("user_id"), body)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, draft, "Draft saved")
}

// GetDraft godoc
// @Summary Get the caller's saved draft
// @Tags Preferences
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /preferences/draft [get]
func (p *PreferencesController) GetDraft(c *gin.Context) {
	draft, err := p.preferenceService.GetDraft(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, draft, "Draft fetched successfully")
}

// ValidatePreferences godoc
// @Summary Validate a preferences document without saving it
// @Tags Preferences
// @Accept json
// @Produce json
// @Param request body request_models.ValidatePreferencesRequest true "Document to check"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /preferences/validate [post]
func (p *PreferencesController) ValidatePreferences(c *gin.Context) {
	var req request_models.ValidatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	utils.RespondSuccess(c, p.preferenceService.Validate(req.Preferences), "Validation complete")
}

// GetDefaults godoc
// @Summary Get the default preferences template
// @Tags Preferences
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /preferences/defaults [get]
func (p *PreferencesController) GetDefaults(c *gin.Context) {
	utils.RespondSuccess(c, p.preferenceService.Defaults(), "Default preferences")
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return nil, false
	}
	return body, true
}
