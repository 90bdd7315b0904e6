package preferences

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

// validDocument has every section present and mutually compatible.
func validDocument() Document {
	return Document{
		Dietary: &Dietary{
			Restrictions: []DietaryRestriction{DietVegetarian},
			Allergies:    []string{"peanuts"},
			Preferences: &DiningPreferences{
				Spicy:        SpiceMild,
				LocalCuisine: true,
				StreetFood:   true,
			},
			ImportanceLevel: intPtr(3),
		},
		Mobility: &Mobility{
			Level:        MobilityFullyAble,
			Requirements: &MobilityRequirements{RestAreas: true},
			Limitations: &MobilityLimitations{
				MaxWalkingDistance: 5000,
				MaxStandingTime:    60,
				RestFrequency:      30,
			},
		},
		Interests: Interests{
			InterestCulture: 80,
			InterestFood:    100,
			InterestHistory: 0,
		},
		Budget: &Budget{
			Accommodation: BudgetModerate,
			Activities:    BudgetModerate,
			Dining:        BudgetLow,
			Flexibility:   FlexibilityModerate,
			Currency:      "EUR",
		},
		Accommodation: &Accommodation{
			Types:         []AccommodationType{StayHotel, StayBedAndBreakfast},
			Amenities:     []Amenity{"wifi", "breakfast-included"},
			Locations:     []LocationPreference{"city-center"},
			MinStarRating: intPtr(3),
		},
		ActivityComfort: &ActivityComfort{
			MaxDuration:         "3-5",
			PreferredIntensity:  IntensityModerate,
			RestDayFrequency:    "1-2",
			PreferredActivities: []string{"museums", "walking tours"},
			Limitations: &ActivityLimitations{
				MaxDailyActivities: intPtr(3),
				PreferredTimeOfDay: "morning",
				Weather:            &WeatherAvoidance{AvoidRain: true},
			},
			Levels: &ComfortLevels{
				MaxPhysicalIntensity:     IntensityVigorous,
				WeatherPreferences:       []WeatherPreference{"warm", "sunny"},
				CrowdPreferences:         []CrowdLevel{"uncrowded"},
				TimingPreferences:        []ActivityTiming{"morning"},
				ComfortableWithHeights:   boolPtr(false),
				MaxActivityDuration:      intPtr(4),
				MinRestBetweenActivities: intPtr(1),
			},
		},
		Transportation: &Transportation{
			Modes:        []TransportMode{"train", "walking"},
			Requirements: &TransportRequirements{DirectRoutes: true},
		},
		TravelStyle: &TravelStyle{
			Pace:      PaceModerate,
			GroupSize: "couple",
			Interests: map[string]bool{"museums": true},
			Styles:    []StyleTag{"cultural"},
			Seasons:   []Season{"spring"},
		},
		SpecialRequirements: &SpecialRequirements{
			Medical: "Carries an epipen",
		},
	}
}
