// Package wizard sequences preference sections into steps and drives the
// validate, advance and submit flow over a preferences.Store.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"tripwise/internal/preferences"
)

var (
	ErrSaveInFlight     = errors.New("a save is already in progress")
	ErrAlreadySubmitted = errors.New("preferences already submitted")
	ErrNotPendingSubmit = errors.New("no failed submission to retry")
	ErrAtFirstStep      = errors.New("already at the first step")
	ErrStepOutOfRange   = errors.New("step out of range")
)

// Gateway loads and persists the preferences document for the current user.
type Gateway interface {
	// Load returns the saved document, or an empty one when none exists.
	Load(ctx context.Context) (preferences.Document, error)
	// Save replaces the stored document and returns the canonical copy.
	Save(ctx context.Context, doc preferences.Document) (preferences.Document, error)
	// SaveDraft persists an unfinished document on a best-effort basis.
	SaveDraft(ctx context.Context, doc preferences.Document) error
	Delete(ctx context.Context) error
}

type Status string

const (
	StatusEditing      Status = "editing"
	StatusSubmitting   Status = "submitting"
	StatusSubmitted    Status = "submitted"
	StatusSubmitFailed Status = "submit_failed"
)

// Controller is the wizard state machine. It is meant to be driven from a
// single goroutine; the only cross-goroutine guarantee is that at most one
// save runs at a time.
type Controller struct {
	store   *preferences.Store
	gateway Gateway
	steps   []Step
	logger  *zap.Logger

	current    int
	completion map[preferences.Section]bool
	errors     map[string]string
	status     Status
	err        error

	saving atomic.Bool
}

type Option func(*Controller)

func WithSteps(steps []Step) Option {
	return func(c *Controller) {
		if len(steps) > 0 {
			c.steps = steps
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(store *preferences.Store, gateway Gateway, opts ...Option) *Controller {
	c := &Controller{
		store:      store,
		gateway:    gateway,
		steps:      DefaultSteps,
		logger:     zap.NewNop(),
		completion: make(map[preferences.Section]bool),
		errors:     make(map[string]string),
		status:     StatusEditing,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Store() *preferences.Store { return c.store }

func (c *Controller) Steps() []Step { return c.steps }

func (c *Controller) StepCount() int { return len(c.steps) }

func (c *Controller) CurrentStepIndex() int { return c.current }

func (c *Controller) CurrentStep() Step { return c.steps[c.current] }

func (c *Controller) IsLastStep() bool { return c.current == len(c.steps)-1 }

func (c *Controller) Status() Status { return c.status }

// Err is the last persistence error, cleared by a successful save.
func (c *Controller) Err() error { return c.err }

func (c *Controller) Saving() bool { return c.saving.Load() }

func (c *Controller) Completion() map[preferences.Section]bool { return maps.Clone(c.completion) }

// ValidationErrors maps field paths to messages from the last navigation
// attempt.
func (c *Controller) ValidationErrors() map[string]string { return maps.Clone(c.errors) }

// Progress is the percentage of steps reached, counting the current one.
func (c *Controller) Progress() float64 {
	return float64(c.current+1) / float64(len(c.steps)) * 100
}

// Next validates the active step and advances. On the last step it runs the
// cross-field rules over the whole document and submits it.
func (c *Controller) Next(ctx context.Context) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	clear(c.errors)

	step := c.steps[c.current]
	doc := c.store.Document()
	if err := preferences.ValidateSection(step.ID, doc); err != nil {
		c.recordValidation(step, err)
		return err
	}
	c.completion[step.ID] = true
	c.store.MarkValidated(step.ID)

	if !c.IsLastStep() {
		c.current++
		return nil
	}

	// skipped steps are checked here, before anything reaches the gateway
	if err := preferences.Validate(doc); err != nil {
		c.rejectDocument(err)
		return err
	}
	return c.submit(ctx, doc)
}

// Prev moves one step back without validating. Completion flags are kept.
func (c *Controller) Prev() error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	clear(c.errors)
	if c.current == 0 {
		return ErrAtFirstStep
	}
	c.current--
	c.leaveFailedSubmit()
	return nil
}

// GoToStep jumps directly to step n without validating skipped steps.
func (c *Controller) GoToStep(n int) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	clear(c.errors)
	if n < 0 || n >= len(c.steps) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrStepOutOfRange, n, len(c.steps))
	}
	c.current = n
	c.leaveFailedSubmit()
	return nil
}

// Resubmit retries a failed submission with the current document.
func (c *Controller) Resubmit(ctx context.Context) error {
	if c.saving.Load() {
		return ErrSaveInFlight
	}
	if c.status != StatusSubmitFailed {
		return ErrNotPendingSubmit
	}
	clear(c.errors)
	doc := c.store.Document()
	if err := preferences.Validate(doc); err != nil {
		c.rejectDocument(err)
		return err
	}
	return c.submit(ctx, doc)
}

// SaveDraft persists the document if it changed since the last save. A
// failed draft save is reported but leaves the wizard untouched.
func (c *Controller) SaveDraft(ctx context.Context) error {
	if !c.saving.CompareAndSwap(false, true) {
		return ErrSaveInFlight
	}
	defer c.saving.Store(false)
	if !c.store.Dirty() {
		return nil
	}

	if err := c.gateway.SaveDraft(ctx, c.store.Document()); err != nil {
		c.logger.Warn("Draft save failed", zap.Error(err))
		return fmt.Errorf("save draft: %w", err)
	}
	c.store.MarkClean()
	return nil
}

// Load seeds the wizard from the previously saved document.
func (c *Controller) Load(ctx context.Context) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	doc, err := c.gateway.Load(ctx)
	if err != nil {
		c.err = err
		c.logger.Error("Loading preferences failed", zap.Error(err))
		return fmt.Errorf("load preferences: %w", err)
	}
	c.store.Replace(doc)
	c.resetNavigation()
	c.err = nil
	return nil
}

// Cancel discards the in-progress document.
func (c *Controller) Cancel() error {
	if c.saving.Load() {
		return ErrSaveInFlight
	}
	c.store.Reset()
	c.resetNavigation()
	c.status = StatusEditing
	c.err = nil
	return nil
}

func (c *Controller) submit(ctx context.Context, doc preferences.Document) error {
	if !c.saving.CompareAndSwap(false, true) {
		return ErrSaveInFlight
	}
	defer c.saving.Store(false)

	c.status = StatusSubmitting
	saved, err := c.gateway.Save(ctx, doc)
	if err != nil {
		c.status = StatusSubmitFailed
		c.err = err
		c.logger.Error("Saving preferences failed", zap.Error(err))
		return fmt.Errorf("save preferences: %w", err)
	}

	c.store.Replace(saved)
	c.status = StatusSubmitted
	c.err = nil
	c.logger.Info("Preferences submitted", zap.Int("sections", len(saved.PresentSections())))
	return nil
}

func (c *Controller) checkIdle() error {
	if c.saving.Load() {
		return ErrSaveInFlight
	}
	if c.status == StatusSubmitted {
		return ErrAlreadySubmitted
	}
	return nil
}

func (c *Controller) leaveFailedSubmit() {
	if c.status == StatusSubmitFailed {
		c.status = StatusEditing
	}
}

func (c *Controller) resetNavigation() {
	c.current = 0
	clear(c.completion)
	clear(c.errors)
}

// rejectDocument records a whole-document validation failure. A section
// failure moves the wizard back to the step owning that section; conflicts
// stay on the current step.
func (c *Controller) rejectDocument(err error) {
	if i := c.stepOwning(err); i >= 0 {
		c.current = i
		delete(c.completion, c.steps[i].ID)
		c.leaveFailedSubmit()
	}
	c.recordValidation(c.steps[c.current], err)
}

func (c *Controller) stepOwning(err error) int {
	var verr *preferences.ValidationError
	if !errors.As(err, &verr) {
		return -1
	}
	name, _, _ := strings.Cut(verr.Field, ".")
	sec, ok := preferences.ParseSection(name)
	if !ok {
		return -1
	}
	for i, step := range c.steps {
		if step.ID == sec {
			return i
		}
	}
	return -1
}

func (c *Controller) recordValidation(step Step, err error) {
	var verr *preferences.ValidationError
	var conflict *preferences.ConflictError
	switch {
	case errors.As(err, &verr):
		c.errors[verr.Field] = verr.Message
	case errors.As(err, &conflict):
		for _, f := range conflict.Fields {
			c.errors[f] = conflict.Message
		}
	default:
		c.errors[string(step.ID)] = err.Error()
	}
}
