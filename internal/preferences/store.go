package preferences

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Store holds the in-progress document. It tracks unsaved changes and keeps
// an undo history; it never persists anything itself.
//
// Sections marked validated are guarded: a write that would make one of them
// fail its validator is rejected and the document is left untouched.
//
// A Store is not safe for concurrent use.
type Store struct {
	doc       Document
	dirty     bool
	validated map[Section]bool
	history   *History
}

// NewStore creates a store seeded with doc. historyLimit <= 0 selects
// DefaultHistoryLimit.
func NewStore(seed Document, historyLimit int) *Store {
	s := &Store{
		doc:       seed.Clone(),
		validated: make(map[Section]bool),
		history:   NewHistory(historyLimit),
	}
	s.history.Push(s.doc)
	return s
}

// Document returns a copy of the current document.
func (s *Store) Document() Document { return s.doc.Clone() }

func (s *Store) Dirty() bool { return s.dirty }

// MarkClean records that the current document has been persisted.
func (s *Store) MarkClean() { s.dirty = false }

func (s *Store) MarkDirty() { s.dirty = true }

func (s *Store) History() *History { return s.history }

// Get reads the value at a dot-delimited path such as
// "budget.accommodation". Values come back in their JSON form: strings,
// float64, bool, []any and map[string]any.
func (s *Store) Get(path string) (any, bool) {
	keys, err := splitPath(path)
	if err != nil {
		return nil, false
	}
	tree, err := toTree(s.doc)
	if err != nil {
		return nil, false
	}
	var cur any = tree
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[k]; !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// Set writes value at a dot-delimited path, creating intermediate objects as
// needed, and marks the document dirty. A value of the wrong type for the
// field is rejected with a *ValidationError.
func (s *Store) Set(path string, value any) error {
	keys, err := splitPath(path)
	if err != nil {
		return err
	}
	tree, err := toTree(s.doc)
	if err != nil {
		return err
	}
	target := tree
	for i, k := range keys[:len(keys)-1] {
		next, ok := target[k]
		if !ok || next == nil {
			child := make(map[string]any)
			target[k] = child
			target = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			field := strings.Join(keys[:i+1], ".")
			return invalid(field, fmt.Sprintf("Cannot set %s: %s is not an object", path, field))
		}
		target = child
	}
	target[keys[len(keys)-1]] = value

	raw, err := json.Marshal(tree)
	if err != nil {
		return invalid(path, fmt.Sprintf("Invalid value for %s: %v", path, err))
	}
	candidate, err := DecodeDocument(raw)
	if err != nil {
		return err
	}
	return s.commit(candidate)
}

// SetSection replaces a whole section.
func (s *Store) SetSection(section Section, value any) error {
	return s.Set(string(section), value)
}

// Update applies fn to a copy of the document and commits the result.
func (s *Store) Update(fn func(doc *Document)) error {
	candidate := s.doc.Clone()
	fn(&candidate)
	return s.commit(candidate)
}

func (s *Store) commit(candidate Document) error {
	if err := s.checkValidated(candidate); err != nil {
		return err
	}
	s.doc = candidate
	s.dirty = true
	s.history.Push(candidate)
	return nil
}

func (s *Store) checkValidated(candidate Document) error {
	for _, sec := range Sections {
		if !s.validated[sec] {
			continue
		}
		if err := ValidateSection(sec, candidate); err != nil {
			return err
		}
	}
	return nil
}

// MarkValidated records that section passed its validator.
func (s *Store) MarkValidated(section Section) { s.validated[section] = true }

func (s *Store) Validated(section Section) bool { return s.validated[section] }

// Replace swaps in a document loaded from or confirmed by persistence. The
// store is clean afterwards and the history restarts from doc.
func (s *Store) Replace(doc Document) {
	s.doc = doc.Clone()
	s.dirty = false
	clear(s.validated)
	s.history.Reset()
	s.history.Push(s.doc)
}

// Reset discards the document.
func (s *Store) Reset() { s.Replace(Document{}) }

func (s *Store) Undo() error {
	prev, ok := s.history.Undo()
	if !ok {
		return ErrNothingToUndo
	}
	if err := s.checkValidated(prev); err != nil {
		s.history.Redo()
		return err
	}
	s.doc = prev
	s.dirty = true
	return nil
}

func (s *Store) Redo() error {
	next, ok := s.history.Redo()
	if !ok {
		return ErrNothingToRedo
	}
	if err := s.checkValidated(next); err != nil {
		s.history.Undo()
		return err
	}
	s.doc = next
	s.dirty = true
	return nil
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, invalid(path, "Preference path must not be empty")
	}
	keys := strings.Split(path, ".")
	for _, k := range keys {
		if k == "" {
			return nil, invalid(path, fmt.Sprintf("Invalid preference path: %q", path))
		}
	}
	if sec, ok := ParseSection(keys[0]); ok {
		keys[0] = string(sec)
	}
	return keys, nil
}

func toTree(doc Document) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	tree := make(map[string]any)
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("decode document tree: %w", err)
	}
	return tree, nil
}
