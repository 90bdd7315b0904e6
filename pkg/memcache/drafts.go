package mem

import (
	"sync"
	"time"
)

// DraftStore keeps the latest unfinished preferences document per account.
type DraftStore interface {
	Set(accountID string, data []byte, ttl time.Duration) Draft

	// Get returns the draft if present and not expired.
	Get(accountID string) (Draft, bool)

	Delete(accountID string)
}

type Draft struct {
	Data      []byte
	SavedAt   time.Time
	ExpiresAt time.Time
}

type Drafts struct {
	mu   sync.RWMutex
	data map[string]Draft
	now  func() time.Time
}

func NewDrafts() *Drafts {
	return &Drafts{
		data: make(map[string]Draft),
		now:  time.Now,
	}
}

func (s *Drafts) Set(accountID string, data []byte, ttl time.Duration) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	d := Draft{
		Data:      append([]byte(nil), data...),
		SavedAt:   now,
		ExpiresAt: now.Add(ttl),
	}
	s.data[accountID] = d
	return d
}

func (s *Drafts) Get(accountID string) (Draft, bool) {
	s.mu.RLock()
	d, ok := s.data[accountID]
	s.mu.RUnlock()
	if !ok {
		return Draft{}, false
	}
	if s.now().After(d.ExpiresAt) {
		s.dropExpired(accountID)
		return Draft{}, false
	}
	d.Data = append([]byte(nil), d.Data...)
	return d, true
}

func (s *Drafts) Delete(accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, accountID)
}

// dropExpired deletes the entry only if it is still expired, so a draft Set
// after the read above survives.
func (s *Drafts) dropExpired(accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.data[accountID]; ok && s.now().After(d.ExpiresAt) {
		delete(s.data, accountID)
	}
}

// Sweep drops every expired draft and reports how many were removed.
func (s *Drafts) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, d := range s.data {
		if now.After(d.ExpiresAt) {
			delete(s.data, id)
			n++
		}
	}
	return n
}
