package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrafts_SetGet(t *testing.T) {
	s := NewDrafts()
	data := []byte(`{"budget":{"currency":"USD"}}`)

	saved := s.Set("acct", data, time.Hour)
	data[0] = 'x'

	got, ok := s.Get("acct")
	require.True(t, ok)
	assert.Equal(t, `{"budget":{"currency":"USD"}}`, string(got.Data))
	assert.Equal(t, saved.SavedAt, got.SavedAt)

	_, ok = s.Get("other")
	assert.False(t, ok)
}

func TestDrafts_Expiry(t *testing.T) {
	s := NewDrafts()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	s.Set("acct", []byte("{}"), time.Minute)
	s.Set("fresh", []byte("{}"), time.Hour)

	now = now.Add(2 * time.Minute)

	_, ok := s.Get("acct")
	assert.False(t, ok)
	assert.Zero(t, s.Sweep())

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, s.Sweep())
}

func TestDrafts_Delete(t *testing.T) {
	s := NewDrafts()
	s.Set("acct", []byte("{}"), time.Hour)

	s.Delete("acct")

	_, ok := s.Get("acct")
	assert.False(t, ok)
}

func TestDrafts_ExpiredCleanupKeepsReplacement(t *testing.T) {
	s := NewDrafts()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	s.Set("acct", []byte(`{"old":true}`), time.Minute)
	now = now.Add(2 * time.Minute)

	// a new draft lands between Get's read and its cleanup
	s.Set("acct", []byte(`{}`), time.Hour)
	s.dropExpired("acct")

	got, ok := s.Get("acct")
	require.True(t, ok)
	assert.Equal(t, `{}`, string(got.Data))

	now = now.Add(2 * time.Hour)
	s.dropExpired("acct")
	_, ok = s.Get("acct")
	assert.False(t, ok)
	assert.Zero(t, s.Sweep())
}
