package preferences

// Defaults returns the starting template offered to new users. Every section
// is present and the template passes Validate.
func Defaults() Document {
	interests := make(Interests, len(InterestCategories))
	for _, c := range InterestCategories {
		interests[c] = (SliderMin + SliderMax) / 2
	}
	return Document{
		Dietary: &Dietary{
			Restrictions: []DietaryRestriction{},
			Allergies:    []string{},
			Preferences:  &DiningPreferences{Spicy: SpiceMild, LocalCuisine: true},
		},
		Mobility: &Mobility{
			Level:        MobilityFullyAble,
			Requirements: &MobilityRequirements{},
			Assistance:   &MobilityAssistance{},
		},
		Interests: interests,
		Budget: &Budget{
			Accommodation: BudgetModerate,
			Activities:    BudgetModerate,
			Dining:        BudgetModerate,
			Flexibility:   FlexibilityModerate,
			Currency:      "USD",
		},
		Accommodation: &Accommodation{},
		ActivityComfort: &ActivityComfort{
			MaxDuration:        "3-5",
			PreferredIntensity: IntensityModerate,
			RestDayFrequency:   "1-2",
		},
		Transportation:      &Transportation{},
		TravelStyle:         &TravelStyle{Pace: PaceModerate},
		SpecialRequirements: &SpecialRequirements{},
	}
}
