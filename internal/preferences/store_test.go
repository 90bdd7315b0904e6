package preferences

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetCreatesIntermediates(t *testing.T) {
	s := NewStore(Document{}, 0)
	assert.False(t, s.Dirty())

	require.NoError(t, s.Set("activityComfort.limitations.preferredTimeOfDay", "evening"))

	doc := s.Document()
	require.NotNil(t, doc.ActivityComfort)
	require.NotNil(t, doc.ActivityComfort.Limitations)
	assert.Equal(t, "evening", doc.ActivityComfort.Limitations.PreferredTimeOfDay)
	assert.True(t, s.Dirty())
}

func TestStore_GetReadsJSONForm(t *testing.T) {
	s := NewStore(validDocument(), 0)

	v, ok := s.Get("budget.accommodation")
	require.True(t, ok)
	assert.Equal(t, "moderate", v)

	v, ok = s.Get("interests.culture")
	require.True(t, ok)
	assert.Equal(t, float64(80), v)

	v, ok = s.Get("travel.pace")
	require.True(t, ok)
	assert.Equal(t, "moderate", v)

	_, ok = s.Get("budget.dailyBudget")
	assert.False(t, ok)
	_, ok = s.Get("transportation.accessibility.serviceAnimal")
	assert.False(t, ok)
	_, ok = s.Get("")
	assert.False(t, ok)
}

func TestStore_SetTravelAlias(t *testing.T) {
	s := NewStore(Document{}, 0)
	require.NoError(t, s.Set("travel.pace", "fast"))
	assert.Equal(t, PaceFast, s.Document().TravelStyle.Pace)
}

func TestStore_SetTypedSection(t *testing.T) {
	s := NewStore(Document{}, 0)
	require.NoError(t, s.SetSection(SectionBudget, &Budget{Accommodation: BudgetLuxury, Currency: "USD"}))
	assert.Equal(t, &Budget{Accommodation: BudgetLuxury, Currency: "USD"}, s.Document().Budget)
}

func TestStore_SetRejectsWrongType(t *testing.T) {
	s := NewStore(validDocument(), 0)
	before := s.Document()

	err := s.Set("dietary.preferences.localCuisine", "yes")
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "dietary.preferences.localCuisine", verr.Field)
	assert.Empty(t, cmp.Diff(before, s.Document()))
	assert.False(t, s.Dirty())
}

func TestStore_SetRejectsUnknownField(t *testing.T) {
	s := NewStore(Document{}, 0)
	err := s.Set("budget.tip", 10)
	assert.ErrorIs(t, err, ErrInvalidPreference)
	assert.Nil(t, s.Document().Budget)
}

func TestStore_SetThroughScalarFails(t *testing.T) {
	s := NewStore(validDocument(), 0)
	err := s.Set("budget.currency.code", "USD")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "budget.currency", verr.Field)
}

func TestStore_ValidatedSectionCannotRegress(t *testing.T) {
	s := NewStore(validDocument(), 0)
	s.MarkValidated(SectionBudget)

	err := s.Set("budget.currency", "XYZ")
	require.ErrorIs(t, err, ErrInvalidPreference)
	assert.Equal(t, "EUR", s.Document().Budget.Currency)

	// unvalidated sections accept anything well-typed until they are checked
	require.NoError(t, s.Set("mobility.level", "sprinter"))
	assert.Equal(t, MobilityLevel("sprinter"), s.Document().Mobility.Level)

	require.NoError(t, s.Set("budget.currency", "JPY"))
	assert.Equal(t, "JPY", s.Document().Budget.Currency)
}

func TestStore_Update(t *testing.T) {
	s := NewStore(Document{}, 0)
	require.NoError(t, s.Update(func(d *Document) {
		d.Mobility = &Mobility{Level: MobilityWheelchair}
	}))
	assert.Equal(t, MobilityWheelchair, s.Document().Mobility.Level)
	assert.True(t, s.Dirty())
}

func TestStore_DocumentIsACopy(t *testing.T) {
	s := NewStore(validDocument(), 0)
	doc := s.Document()
	doc.Budget.Currency = "GBP"
	assert.Equal(t, "EUR", s.Document().Budget.Currency)
}

func TestStore_UndoRedo(t *testing.T) {
	s := NewStore(Document{}, 0)
	require.NoError(t, s.Set("budget.currency", "USD"))
	require.NoError(t, s.Set("budget.currency", "EUR"))

	require.NoError(t, s.Undo())
	assert.Equal(t, "USD", s.Document().Budget.Currency)
	require.NoError(t, s.Undo())
	assert.Nil(t, s.Document().Budget)
	assert.ErrorIs(t, s.Undo(), ErrNothingToUndo)

	require.NoError(t, s.Redo())
	assert.Equal(t, "USD", s.Document().Budget.Currency)

	// a new write drops the redo branch
	require.NoError(t, s.Set("budget.currency", "CAD"))
	assert.ErrorIs(t, s.Redo(), ErrNothingToRedo)
	assert.True(t, s.Dirty())
}

func TestStore_UndoRespectsValidatedSections(t *testing.T) {
	s := NewStore(Document{}, 0)
	require.NoError(t, s.Set("budget.currency", "XYZ"))
	require.NoError(t, s.Set("budget.currency", "USD"))
	s.MarkValidated(SectionBudget)

	err := s.Undo()
	require.ErrorIs(t, err, ErrInvalidPreference)
	assert.Equal(t, "USD", s.Document().Budget.Currency)
	assert.Equal(t, 2, s.History().Cursor())
}

func TestStore_ReplaceAndReset(t *testing.T) {
	s := NewStore(Document{}, 0)
	require.NoError(t, s.Set("budget.currency", "USD"))
	s.MarkValidated(SectionBudget)

	s.Replace(validDocument())
	assert.False(t, s.Dirty())
	assert.False(t, s.Validated(SectionBudget))
	assert.Equal(t, 1, s.History().Len())
	assert.True(t, Equal(validDocument(), s.Document()))

	s.Reset()
	assert.True(t, s.Document().IsEmpty())
	assert.False(t, s.Dirty())
}

func TestStore_MarkClean(t *testing.T) {
	s := NewStore(Document{}, 0)
	require.NoError(t, s.Set("specialRequirements.other", "window table"))
	assert.True(t, s.Dirty())
	s.MarkClean()
	assert.False(t, s.Dirty())
}
