package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"tripwise/internal/api"
	"tripwise/internal/api/controllers"
	"tripwise/internal/config"
	"tripwise/internal/models/db_models"
	"tripwise/internal/preferences"
	"tripwise/internal/services"
	mem "tripwise/pkg/memcache"
	"tripwise/pkg/utils"
)

type memoryAccounts struct {
	mu   sync.Mutex
	rows map[string]*db_models.Account
}

func (m *memoryAccounts) Insert(_ context.Context, a *db_models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = uuid.New()
	m.rows[a.Email] = a
	return nil
}

func (m *memoryAccounts) FindById(_ context.Context, id string) (*db_models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if a.ID.String() == id {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memoryAccounts) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[email], nil
}

type memoryPreferences struct {
	mu   sync.Mutex
	rows map[uuid.UUID]db_models.UserPreference
}

func (m *memoryPreferences) FindByAccount(_ context.Context, id uuid.UUID) (*db_models.UserPreference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (m *memoryPreferences) Upsert(_ context.Context, p *db_models.UserPreference) (*db_models.UserPreference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := m.rows[p.AccountID]
	row.AccountID = p.AccountID
	row.Document = p.Document
	row.CompletedSections = p.CompletedSections
	row.OnboardingCompleted = p.OnboardingCompleted
	row.Version++
	m.rows[p.AccountID] = row
	return &row, nil
}

func (m *memoryPreferences) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

type testServer struct {
	router *gin.Engine
	tokens *utils.TokenManager
	prefs  *memoryPreferences
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	accounts := &memoryAccounts{rows: make(map[string]*db_models.Account)}
	prefs := &memoryPreferences{rows: make(map[uuid.UUID]db_models.UserPreference)}

	accountCtl := controllers.NewAccountController(services.NewAccountService(accounts, tokens, logger))
	prefCtl := controllers.NewPreferencesController(
		services.NewPreferenceService(prefs, mem.NewDrafts(), time.Hour, logger))

	cfg := config.Config{AppEnv: "development", CORSOrigins: []string{"*"}}
	return &testServer{
		router: api.NewRouter(cfg, logger, tokens, accountCtl, prefCtl),
		tokens: tokens,
		prefs:  prefs,
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	code, _ := s.do(t, http.MethodPost, "/accounts/register", "", map[string]string{
		"display_name": "Robin",
		"email":        "robin@example.com",
		"password":     "hunter22",
	})
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodPost, "/accounts/login", "", map[string]string{
		"email":    "robin@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, code)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out.Token
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPreferencesRequireAuth(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/preferences", "/preferences/draft"} {
		code, env := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
		assert.NotEmpty(t, env.TraceID)
	}
	code, _ := s.do(t, http.MethodGet, "/preferences", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestMe(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	code, env := s.do(t, http.MethodGet, "/accounts/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"email":"robin@example.com"`)

	code, _ = s.do(t, http.MethodGet, "/accounts/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	code, _ := s.do(t, http.MethodPost, "/accounts/login", "", map[string]string{
		"email": "robin@example.com", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodPost, "/accounts/register", "", map[string]string{
		"display_name": "Robin", "email": "robin@example.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusConflict, code)
}

func TestPreferencesLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	code, _ := s.do(t, http.MethodGet, "/preferences", token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env := s.do(t, http.MethodPut, "/preferences", token, preferences.Defaults())
	require.Equal(t, http.StatusOK, code, env.Message)
	var saved struct {
		Preferences         preferences.Document `json:"preferences"`
		Version             int64                `json:"version"`
		OnboardingCompleted bool                 `json:"onboardingCompleted"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	assert.Equal(t, int64(1), saved.Version)
	assert.True(t, saved.OnboardingCompleted)

	code, env = s.do(t, http.MethodPatch, "/preferences/budget", token, map[string]string{
		"accommodation": "luxury", "currency": "GBP",
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	assert.Equal(t, int64(2), saved.Version)
	assert.Equal(t, "GBP", saved.Preferences.Budget.Currency)

	code, env = s.do(t, http.MethodGet, "/preferences", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	assert.Equal(t, preferences.BudgetLuxury, saved.Preferences.Budget.Accommodation)

	code, _ = s.do(t, http.MethodDelete, "/preferences", token, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodDelete, "/preferences", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestReplacePreferencesRejectsInvalid(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	code, env := s.do(t, http.MethodPut, "/preferences", token, `{"budget":{"currency":"XYZ"}}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid currency code", env.Message)
	assert.JSONEq(t, `{"field":"budget.currency"}`, string(env.Data))

	code, env = s.do(t, http.MethodPut, "/preferences", token,
		`{"dietary":{"restrictions":["vegan","gluten-free","nut-free"]},"travelStyle":{"pace":"fast"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Multiple dietary restrictions may be challenging with fast-paced travel", env.Message)

	code, _ = s.do(t, http.MethodPut, "/preferences", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	assert.Empty(t, s.prefs.rows)
}

func TestUpdateSectionRejectsUnknownSection(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	code, _ := s.do(t, http.MethodPut, "/preferences", token, `{}`)
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodPatch, "/preferences/notificationPreferences", token, `{}`)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid preference section", env.Message)
}

func TestDraftEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	code, _ := s.do(t, http.MethodGet, "/preferences/draft", token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodPost, "/preferences/draft", token, `{"budget":{"currency":"EUR"}}`)
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodGet, "/preferences/draft", token, nil)
	require.Equal(t, http.StatusOK, code)
	var draft struct {
		Preferences preferences.Document `json:"preferences"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &draft))
	assert.Equal(t, "EUR", draft.Preferences.Budget.Currency)
}

func TestValidateEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	code, env := s.do(t, http.MethodPost, "/preferences/validate", token, map[string]any{
		"preferences": map[string]any{
			"budget":          map[string]any{"accommodation": "luxury"},
			"activityComfort": map[string]any{"maxDuration": "10+", "preferredActivities": []string{"trekking"}},
		},
	})
	require.Equal(t, http.StatusOK, code)
	var result struct {
		IsValid bool `json:"isValid"`
		Errors  []struct {
			Field string `json:"field"`
			Rule  string `json:"rule"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "luxury-long-duration", result.Errors[0].Rule)

	code, _ = s.do(t, http.MethodPost, "/preferences/validate", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDefaultsArePublic(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/preferences/defaults", "", nil)
	require.Equal(t, http.StatusOK, code)

	doc, err := preferences.DecodeDocument(env.Data)
	require.NoError(t, err)
	assert.NoError(t, preferences.Validate(doc))
}
