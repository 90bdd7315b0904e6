package preferences

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument_RoundTrip(t *testing.T) {
	raw, err := json.Marshal(validDocument())
	require.NoError(t, err)

	doc, err := DecodeDocument(raw)
	require.NoError(t, err)
	assert.True(t, Equal(validDocument(), doc))
}

func TestDocument_EmptyInterestsSurviveCopies(t *testing.T) {
	doc := Document{Interests: Interests{}}
	require.True(t, doc.Has(SectionInterests))

	assert.True(t, doc.Clone().Has(SectionInterests))

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"interests":{}}`, string(raw))
	decoded, err := DecodeDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, []Section{SectionInterests}, decoded.PresentSections())

	store := NewStore(doc, 0)
	assert.True(t, store.Document().Has(SectionInterests))

	raw, err = json.Marshal(Document{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestDecodeDocument_Empty(t *testing.T) {
	doc, err := DecodeDocument([]byte("  "))
	require.NoError(t, err)
	assert.True(t, doc.IsEmpty())
}

func TestDecodeDocument_ShapeErrors(t *testing.T) {
	cases := map[string]string{
		`{"mobility":{"requirements":{"ramps":"yes"}}}`: "mobility.requirements.ramps",
		`{"budget":{"currency":"USD","tip":5}}`:         "tip",
		`{"dietary":`:                                   "document",
	}
	for raw, field := range cases {
		_, err := DecodeDocument([]byte(raw))
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), raw)
		assert.Equal(t, field, verr.Field, raw)
	}
}

func TestDecodeDocumentYAML(t *testing.T) {
	raw := []byte(`
budget:
  accommodation: moderate
  currency: USD
activityComfort:
  maxDuration: "3-5"
  preferredActivities: [hiking]
travelStyle:
  pace: relaxed
`)
	doc, err := DecodeDocumentYAML(raw)
	require.NoError(t, err)
	assert.Equal(t, BudgetModerate, doc.Budget.Accommodation)
	assert.Equal(t, ActivityDuration("3-5"), doc.ActivityComfort.MaxDuration)
	assert.Equal(t, []string{"hiking"}, doc.ActivityComfort.PreferredActivities)
	assert.Equal(t, PaceRelaxed, doc.TravelStyle.Pace)
	assert.Equal(t, []Section{SectionBudget, SectionActivityComfort, SectionTravelStyle}, doc.PresentSections())
}

func TestDecodeDocumentYAML_UnknownKey(t *testing.T) {
	_, err := DecodeDocumentYAML([]byte("weather:\n  sunny: true\n"))
	assert.ErrorIs(t, err, ErrInvalidPreference)
}
