package wizard

import (
	"fmt"
	"maps"

	"tripwise/internal/preferences"
)

// State is the serializable part of a wizard session, used to resume an
// unfinished session.
type State struct {
	CurrentStep int                          `json:"currentStep"`
	Completion  map[preferences.Section]bool `json:"completion,omitempty"`
	Document    preferences.Document         `json:"document"`
}

func (c *Controller) Snapshot() State {
	return State{
		CurrentStep: c.current,
		Completion:  maps.Clone(c.completion),
		Document:    c.store.Document(),
	}
}

// Restore resumes a session saved with Snapshot. The restored document is
// treated as unsaved; completed steps are re-validated before they count as
// complete again.
func (c *Controller) Restore(st State) error {
	if err := c.checkIdle(); err != nil {
		return err
	}
	if st.CurrentStep < 0 || st.CurrentStep >= len(c.steps) {
		return fmt.Errorf("%w: %d", ErrStepOutOfRange, st.CurrentStep)
	}
	c.store.Replace(st.Document)
	c.store.MarkDirty()
	c.resetNavigation()
	for _, step := range c.steps {
		if st.Completion[step.ID] && preferences.ValidateSection(step.ID, st.Document) == nil {
			c.completion[step.ID] = true
			c.store.MarkValidated(step.ID)
		}
	}
	c.current = st.CurrentStep
	c.status = StatusEditing
	return nil
}
