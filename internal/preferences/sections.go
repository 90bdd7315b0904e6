package preferences

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"
)

const maxAllergyLength = 100

// ValidateSection runs the validator for section s against doc. An absent
// section passes.
func ValidateSection(s Section, doc Document) error {
	switch s {
	case SectionDietary:
		return ValidateDietary(doc.Dietary)
	case SectionMobility:
		return ValidateMobility(doc.Mobility)
	case SectionInterests:
		return ValidateInterests(doc.Interests)
	case SectionBudget:
		return ValidateBudget(doc.Budget)
	case SectionAccommodation:
		return ValidateAccommodation(doc.Accommodation)
	case SectionActivityComfort:
		return ValidateActivityComfort(doc.ActivityComfort)
	case SectionTransportation:
		return ValidateTransportation(doc.Transportation)
	case SectionTravelStyle:
		return ValidateTravelStyle(doc.TravelStyle)
	case SectionSpecialRequirements:
		return ValidateSpecialRequirements(doc.SpecialRequirements)
	}
	return invalid(string(s), fmt.Sprintf("Unknown preference section: %s", s))
}

// ValidateSections validates every section in wizard order and returns the
// first failure.
func ValidateSections(doc Document) error {
	for _, s := range Sections {
		if err := ValidateSection(s, doc); err != nil {
			return err
		}
	}
	return nil
}

func ValidateDietary(d *Dietary) error {
	if d == nil {
		return nil
	}
	for _, r := range d.Restrictions {
		if !slices.Contains(DietaryRestrictions, r) {
			return invalid("dietary.restrictions", fmt.Sprintf("Invalid dietary restriction: %s", r))
		}
	}
	for _, a := range d.Allergies {
		if strings.TrimSpace(a) == "" {
			return invalid("dietary.allergies", "Allergies must not be blank")
		}
		if utf8.RuneCountInString(a) > maxAllergyLength {
			return invalid("dietary.allergies", fmt.Sprintf("Allergy must be at most %d characters", maxAllergyLength))
		}
	}
	if p := d.Preferences; p != nil && p.Spicy != "" && !slices.Contains(SpiceLevels, p.Spicy) {
		return invalid("dietary.preferences.spicy", "Invalid spicy preference level")
	}
	if d.ImportanceLevel != nil && (*d.ImportanceLevel < 1 || *d.ImportanceLevel > 5) {
		return invalid("dietary.importanceLevel", "Importance level must be between 1 and 5")
	}
	return checkFreeText("dietary.additionalNotes", d.AdditionalNotes)
}

func ValidateMobility(m *Mobility) error {
	if m == nil {
		return nil
	}
	if m.Level != "" && !slices.Contains(MobilityLevels, m.Level) {
		return invalid("mobility.level", "Invalid mobility level")
	}
	if l := m.Limitations; l != nil {
		if l.MaxWalkingDistance < 0 {
			return invalid("mobility.limitations.maxWalkingDistance", "Invalid maximum walking distance")
		}
		if l.MaxStandingTime < 0 {
			return invalid("mobility.limitations.maxStandingTime", "Invalid maximum standing time")
		}
		if l.RestFrequency < 0 {
			return invalid("mobility.limitations.restFrequency", "Invalid rest frequency")
		}
	}
	return nil
}

func ValidateInterests(in Interests) error {
	for _, k := range slices.Sorted(maps.Keys(in)) {
		if !slices.Contains(InterestCategories, k) {
			return invalid("interests."+string(k), fmt.Sprintf("Invalid interest category: %s", k))
		}
		if v := in[k]; v < SliderMin || v > SliderMax {
			return invalid("interests."+string(k),
				fmt.Sprintf("Interest %s must be between %d and %d", k, SliderMin, SliderMax))
		}
	}
	return nil
}

func ValidateBudget(b *Budget) error {
	if b == nil {
		return nil
	}
	if b.Accommodation != "" && !slices.Contains(BudgetLevels, b.Accommodation) {
		return invalid("budget.accommodation", "Invalid accommodation budget level")
	}
	if b.Activities != "" && !slices.Contains(BudgetLevels, b.Activities) {
		return invalid("budget.activities", "Invalid activities budget level")
	}
	if b.Dining != "" && !slices.Contains(BudgetLevels, b.Dining) {
		return invalid("budget.dining", "Invalid dining budget level")
	}
	if b.Flexibility != "" && !slices.Contains(BudgetFlexibilities, b.Flexibility) {
		return invalid("budget.flexibility", "Invalid flexibility level")
	}
	if b.Currency != "" && !slices.Contains(Currencies, b.Currency) {
		return invalid("budget.currency", "Invalid currency code")
	}
	if b.DailyBudget != nil && *b.DailyBudget < 0 {
		return invalid("budget.dailyBudget", "Daily budget must not be negative")
	}
	return nil
}

func ValidateAccommodation(a *Accommodation) error {
	if a == nil {
		return nil
	}
	for _, t := range a.Types {
		if !slices.Contains(AccommodationTypes, t) {
			return invalid("accommodation.types", fmt.Sprintf("Invalid accommodation type: %s", t))
		}
	}
	for _, am := range a.Amenities {
		if !slices.Contains(Amenities, am) {
			return invalid("accommodation.amenities", fmt.Sprintf("Invalid amenity: %s", am))
		}
	}
	for _, loc := range a.Locations {
		if !slices.Contains(LocationPreferences, loc) {
			return invalid("accommodation.locations", fmt.Sprintf("Invalid location preference: %s", loc))
		}
	}
	if a.MinStarRating != nil && (*a.MinStarRating < 1 || *a.MinStarRating > 5) {
		return invalid("accommodation.minStarRating", "Minimum star rating must be between 1 and 5")
	}
	return checkFreeText("accommodation.additionalNotes", a.AdditionalNotes)
}

func ValidateActivityComfort(ac *ActivityComfort) error {
	if ac == nil {
		return nil
	}
	if ac.MaxDuration != "" && !slices.Contains(ActivityDurations, ac.MaxDuration) {
		return invalid("activityComfort.maxDuration", "Invalid maximum duration value")
	}
	if ac.PreferredIntensity != "" && !slices.Contains(PhysicalIntensities, ac.PreferredIntensity) {
		return invalid("activityComfort.preferredIntensity", "Invalid physical intensity level")
	}
	if ac.RestDayFrequency != "" && !slices.Contains(RestDayFrequencies, ac.RestDayFrequency) {
		return invalid("activityComfort.restDayFrequency", "Invalid rest day frequency")
	}
	if ac.PreferredActivities != nil && len(ac.PreferredActivities) == 0 {
		return invalid("activityComfort.preferredActivities", "At least one preferred activity must be selected")
	}
	for _, act := range ac.PreferredActivities {
		if strings.TrimSpace(act) == "" {
			return invalid("activityComfort.preferredActivities", "Preferred activities must not be blank")
		}
	}
	if l := ac.Limitations; l != nil {
		if n := l.MaxDailyActivities; n != nil && (*n < MinDailyActivities || *n > MaxDailyActivities) {
			return invalid("activityComfort.limitations.maxDailyActivities",
				fmt.Sprintf("Maximum daily activities must be between %d and %d", MinDailyActivities, MaxDailyActivities))
		}
		if l.PreferredTimeOfDay != "" && !slices.Contains(TimesOfDay, l.PreferredTimeOfDay) {
			return invalid("activityComfort.limitations.preferredTimeOfDay", "Invalid preferred time of day")
		}
	}
	return ValidateComfortLevels(ac.Levels)
}

// ValidateComfortLevels checks the detailed comfort profile nested under
// activityComfort.levels.
func ValidateComfortLevels(cl *ComfortLevels) error {
	if cl == nil {
		return nil
	}
	const prefix = "activityComfort.levels."
	if cl.MaxPhysicalIntensity != "" && !slices.Contains(PhysicalIntensities, cl.MaxPhysicalIntensity) {
		return invalid(prefix+"maxPhysicalIntensity", "Invalid maximum physical intensity level")
	}
	for _, w := range cl.WeatherPreferences {
		if !slices.Contains(WeatherPreferences, w) {
			return invalid(prefix+"weatherPreferences", fmt.Sprintf("Invalid weather preference: %s", w))
		}
	}
	for _, c := range cl.CrowdPreferences {
		if !slices.Contains(CrowdLevels, c) {
			return invalid(prefix+"crowdPreferences", fmt.Sprintf("Invalid crowd level preference: %s", c))
		}
	}
	for _, t := range cl.TimingPreferences {
		if !slices.Contains(ActivityTimings, t) {
			return invalid(prefix+"timingPreferences", fmt.Sprintf("Invalid activity timing preference: %s", t))
		}
	}
	if cl.MaxPhysicalIntensity == IntensityExtreme {
		switch {
		case isFalse(cl.ComfortableWithHeights):
			return invalid(prefix+"comfortableWithHeights",
				"Extreme activities may not be suitable for those uncomfortable with heights")
		case isFalse(cl.ComfortableWithWater):
			return invalid(prefix+"comfortableWithWater",
				"Extreme activities may not be suitable for those uncomfortable with water")
		case isFalse(cl.ComfortableWithAnimals):
			return invalid(prefix+"comfortableWithAnimals",
				"Extreme activities may not be suitable for those uncomfortable with animals")
		}
	}
	if d := cl.MaxActivityDuration; d != nil && (*d < 1 || *d > 24) {
		return invalid(prefix+"maxActivityDuration", "Maximum activity duration must be between 1 and 24 hours")
	}
	if r := cl.MinRestBetweenActivities; r != nil && (*r < 0 || *r > 24) {
		return invalid(prefix+"minRestBetweenActivities",
			"Minimum rest time between activities must be between 0 and 24 hours")
	}
	return checkFreeText(prefix+"additionalNotes", cl.AdditionalNotes)
}

func ValidateTransportation(t *Transportation) error {
	if t == nil {
		return nil
	}
	for _, m := range t.Modes {
		if !slices.Contains(TransportModes, m) {
			return invalid("transportation.modes", fmt.Sprintf("Invalid transportation mode: %s", m))
		}
	}
	return nil
}

func ValidateTravelStyle(ts *TravelStyle) error {
	if ts == nil {
		return nil
	}
	if ts.Pace != "" && !slices.Contains(TravelPaces, ts.Pace) {
		return invalid("travelStyle.pace", "Invalid travel pace")
	}
	if ts.GroupSize != "" && !slices.Contains(GroupSizes, ts.GroupSize) {
		return invalid("travelStyle.groupSize", "Invalid group size")
	}
	for k := range ts.Interests {
		if strings.TrimSpace(k) == "" {
			return invalid("travelStyle.interests", "Interest names must not be blank")
		}
	}
	for _, s := range ts.Styles {
		if !slices.Contains(StyleTags, s) {
			return invalid("travelStyle.styles", fmt.Sprintf("Invalid travel style: %s", s))
		}
	}
	for _, s := range ts.Seasons {
		if !slices.Contains(Seasons, s) {
			return invalid("travelStyle.seasons", fmt.Sprintf("Invalid season: %s", s))
		}
	}
	return nil
}

func ValidateSpecialRequirements(sr *SpecialRequirements) error {
	if sr == nil {
		return nil
	}
	fields := []struct {
		name, value string
	}{
		{"medical", sr.Medical},
		{"dietary", sr.Dietary},
		{"accessibility", sr.Accessibility},
		{"other", sr.Other},
	}
	for _, f := range fields {
		if err := checkFreeText("specialRequirements."+f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func checkFreeText(field, value string) error {
	if utf8.RuneCountInString(value) > MaxFreeTextLength {
		return invalid(field, fmt.Sprintf("%s must be at most %d characters", field, MaxFreeTextLength))
	}
	return nil
}

func isFalse(b *bool) bool { return b != nil && !*b }
